package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress tracks a user's completion of a single lesson.
// At most one row per (user, lesson) pair; writes go through an
// upsert on the composite unique index, last write wins.
type LessonProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	LessonID    string     `json:"lesson_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	PathSlug    string     `json:"path_slug" gorm:"index"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	Score       *int       `json:"score"`
	CompletedAt *time.Time `json:"completed_at"`
}

// QuizAttempt records one graded submission of a lesson quiz
type QuizAttempt struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	LessonID      string `json:"lesson_id" gorm:"index;not null"`
	Answers       string `json:"answers" gorm:"type:text"` // JSON array of per-question answers
	Score         int    `json:"score"`
	MaxScore      int    `json:"max_score"`
	Passed        bool   `json:"passed" gorm:"default:false"`
	AttemptNumber int    `json:"attempt_number" gorm:"default:1"`
}
