package journeyController

import (
	"finlit/database"
	"finlit/middleware"
	"finlit/models"
	journeyModels "finlit/models/journey"
	journeyValidator "finlit/validators/journey"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadCompletionMap reads completion state for a set of lessons.
// Lessons without a row read as not completed.
func loadCompletionMap(userID uint, lessonIDs []string) journeyModels.CompletionMap {
	completion := make(journeyModels.CompletionMap, len(lessonIDs))
	if len(lessonIDs) == 0 {
		return completion
	}

	var rows []models.LessonProgress
	if err := database.Database.Db.
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&rows).Error; err != nil {
		log.Printf("[PROGRESS] Failed to load completion map: %v", err)
		return completion
	}

	for _, row := range rows {
		completion[row.LessonID] = row.Completed
	}
	return completion
}

// upsertProgress writes the completion state for one (user, lesson)
// pair. The composite unique index guarantees at most one row; last
// write wins, there is no version check.
func upsertProgress(userID uint, lessonID, pathSlug string, completed bool, score *int, completedAt *time.Time) (models.LessonProgress, error) {
	db := database.Database.Db

	var progress models.LessonProgress
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return models.LessonProgress{}, err
		}
		progress = models.LessonProgress{
			UserID:      userID,
			LessonID:    lessonID,
			PathSlug:    pathSlug,
			Completed:   completed,
			Score:       score,
			CompletedAt: completedAt,
		}
		return progress, db.Create(&progress).Error
	}

	progress.Completed = completed
	if pathSlug != "" {
		progress.PathSlug = pathSlug
	}
	if score != nil {
		progress.Score = score
	}
	progress.CompletedAt = completedAt
	return progress, db.Save(&progress).Error
}

// ToggleLessonProgress flips the completion flag for a lesson
func ToggleLessonProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedToggle").(*journeyValidator.ToggleProgressRequest)

	db := database.Database.Db

	var progress models.LessonProgress
	err := db.Where("user_id = ? AND lesson_id = ?", user.ID, reqData.LessonID).First(&progress).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("[PROGRESS] Failed to read progress: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		now := time.Now()
		progress = models.LessonProgress{
			UserID:      user.ID,
			LessonID:    reqData.LessonID,
			PathSlug:    reqData.PathSlug,
			Completed:   true,
			CompletedAt: &now,
		}
		if err := db.Create(&progress).Error; err != nil {
			log.Printf("[PROGRESS] Failed to create progress: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", progress)
	}

	progress.Completed = !progress.Completed
	if progress.Completed {
		now := time.Now()
		progress.CompletedAt = &now
	} else {
		progress.CompletedAt = nil
	}

	if err := db.Save(&progress).Error; err != nil {
		log.Printf("[PROGRESS] Failed to save progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", progress)
}

// GetPathProgress returns the viewer's completion map and aggregate
// percentages for one path.
func GetPathProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("pathSlug").(string)
	variant := journeyModels.AudienceTag(user.UserType)

	path, err := Content.FetchPath(c.Context(), slug, variant)
	if err != nil {
		log.Printf("[PROGRESS] Failed to fetch path %q: %v", slug, err)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Journey path not found!", nil)
	}

	path.Modules = journeyModels.FilterModules(path.Modules, variant)

	lessonIDs := path.LessonIDs()
	completion := loadCompletionMap(user.ID, lessonIDs)

	completedCount := 0
	for _, id := range lessonIDs {
		if completion[id] {
			completedCount++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"path_slug":        path.Slug,
		"completion":       completion,
		"total_lessons":    len(lessonIDs),
		"completed_count":  completedCount,
		"progress_percent": journeyModels.AggregatePercent(lessonIDs, completion),
	})
}
