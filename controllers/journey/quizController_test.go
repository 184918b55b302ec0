package journeyController

import (
	"encoding/json"
	"testing"

	"finlit/database"
	"finlit/models"
	journeyModels "finlit/models/journey"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quizResponse struct {
	Results    []journeyModels.QuestionResult `json:"results"`
	TotalScore int                            `json:"total_score"`
	MaxScore   int                            `json:"max_score"`
	Passed     bool                           `json:"passed"`
	Attempt    int                            `json:"attempt"`
}

func TestSubmitQuizPassAndRetake(t *testing.T) {
	app, user := setupJourneyTest(t)
	stubContent(t, bankingPath())
	db := database.Database.Db

	// A perfect submission passes and completes the lesson
	status, env := doJSON(t, app, "POST", "/quiz/submit", fiber.Map{
		"path_slug":   "banking-basics",
		"lesson_slug": "banking-quiz",
		"answers": []fiber.Map{
			{"bool_answer": true},
			{"option_index": 1},
		},
	})
	require.Equal(t, fiber.StatusOK, status)

	var result quizResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 2, result.TotalScore)
	assert.Equal(t, 2, result.MaxScore)
	assert.True(t, result.Passed)
	assert.Equal(t, 1, result.Attempt)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].Correct)
	assert.Contains(t, result.Results[0].Feedback, "FDIC")

	var progress models.LessonProgress
	require.NoError(t, db.
		Where("user_id = ? AND lesson_id = ?", user.ID, "lesson-banking-quiz").
		First(&progress).Error)
	assert.True(t, progress.Completed)
	require.NotNil(t, progress.Score)
	assert.Equal(t, 2, *progress.Score)

	// A later failing retake records attempt 2 and clears completion
	status, env = doJSON(t, app, "POST", "/quiz/submit", fiber.Map{
		"path_slug":   "banking-basics",
		"lesson_slug": "banking-quiz",
		"answers": []fiber.Map{
			{"bool_answer": false},
			{"option_index": 0},
		},
	})
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 0, result.TotalScore)
	assert.False(t, result.Passed)
	assert.Equal(t, 2, result.Attempt)

	require.NoError(t, db.
		Where("user_id = ? AND lesson_id = ?", user.ID, "lesson-banking-quiz").
		First(&progress).Error)
	assert.False(t, progress.Completed)
	require.NotNil(t, progress.Score)
	assert.Equal(t, 0, *progress.Score)

	var attempts []models.QuizAttempt
	require.NoError(t, db.
		Where("user_id = ? AND lesson_id = ?", user.ID, "lesson-banking-quiz").
		Order("attempt_number asc").
		Find(&attempts).Error)
	require.Len(t, attempts, 2)
	assert.True(t, attempts[0].Passed)
	assert.False(t, attempts[1].Passed)
}

func TestSubmitQuizRejectsIncompleteAnswers(t *testing.T) {
	app, user := setupJourneyTest(t)
	stubContent(t, bankingPath())

	// The first question is unanswered
	status, _ := doJSON(t, app, "POST", "/quiz/submit", fiber.Map{
		"path_slug":   "banking-basics",
		"lesson_slug": "banking-quiz",
		"answers": []fiber.Map{
			{},
			{"option_index": 1},
		},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	// A blocked submission is not recorded
	var count int64
	database.Database.Db.Model(&models.QuizAttempt{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitQuizWrongAnswerCount(t *testing.T) {
	app, _ := setupJourneyTest(t)
	stubContent(t, bankingPath())

	status, _ := doJSON(t, app, "POST", "/quiz/submit", fiber.Map{
		"path_slug":   "banking-basics",
		"lesson_slug": "banking-quiz",
		"answers":     []fiber.Map{{"bool_answer": true}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSubmitQuizLessonWithoutQuiz(t *testing.T) {
	app, _ := setupJourneyTest(t)
	stubContent(t, bankingPath())

	status, _ := doJSON(t, app, "POST", "/quiz/submit", fiber.Map{
		"path_slug":   "banking-basics",
		"lesson_slug": "open-account",
		"answers":     []fiber.Map{{"bool_answer": true}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
