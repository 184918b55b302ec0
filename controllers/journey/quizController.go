package journeyController

import (
	"encoding/json"
	"finlit/database"
	"finlit/middleware"
	"finlit/models"
	journeyModels "finlit/models/journey"
	journeyValidator "finlit/validators/journey"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuiz grades a full quiz submission and records the attempt.
// Submission is rejected while any question is unanswered; a retake
// is simply a later submission with a fresh answer set.
func SubmitQuiz(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedSubmitQuiz").(*journeyValidator.SubmitQuizRequest)
	variant := journeyModels.AudienceTag(user.UserType)

	path, err := Content.FetchPath(c.Context(), reqData.PathSlug, variant)
	if err != nil {
		log.Printf("[QUIZ] Failed to fetch path %q: %v", reqData.PathSlug, err)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Journey path not found!", nil)
	}

	if lockedForUser(path, user) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This journey path requires a premium subscription!", nil)
	}

	lesson, found := path.FindLesson(reqData.LessonSlug)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if len(lesson.Questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This lesson has no quiz!", nil)
	}

	result, err := journeyModels.GradeQuiz(lesson.Questions, reqData.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer all questions before submitting!", fiber.Map{
			"detail": err.Error(),
		})
	}

	passed := result.TotalScore == result.MaxScore

	var attemptCount int64
	database.Database.Db.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).
		Count(&attemptCount)

	answersJSON, _ := json.Marshal(reqData.Answers)

	attempt := models.QuizAttempt{
		UserID:        user.ID,
		LessonID:      lesson.ID,
		Answers:       string(answersJSON),
		Score:         result.TotalScore,
		MaxScore:      result.MaxScore,
		Passed:        passed,
		AttemptNumber: int(attemptCount) + 1,
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		log.Printf("[QUIZ] Failed to store attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	// A passing score marks the lesson complete; a failing one still
	// records the latest score.
	score := result.TotalScore
	var completedAt *time.Time
	if passed {
		now := time.Now()
		completedAt = &now
	}
	if _, err := upsertProgress(user.ID, lesson.ID, reqData.PathSlug, passed, &score, completedAt); err != nil {
		log.Printf("[QUIZ] Failed to update progress: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"results":     result.Results,
		"total_score": result.TotalScore,
		"max_score":   result.MaxScore,
		"passed":      passed,
		"attempt":     attempt.AttemptNumber,
	})
}

// GetQuizAttempts lists the viewer's graded attempts for a lesson
func GetQuizAttempts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Params("lesson_id")
	if lessonID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson id is required!", nil)
	}

	var attempts []models.QuizAttempt
	if err := database.Database.Db.
		Where("user_id = ? AND lesson_id = ?", user.ID, lessonID).
		Order("attempt_number asc").
		Find(&attempts).Error; err != nil {
		log.Printf("[QUIZ] Failed to fetch attempts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
	})
}
