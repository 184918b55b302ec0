package journeyController

import (
	"finlit/database"
	"finlit/middleware"
	"finlit/models"
	journeyModels "finlit/models/journey"
	"finlit/utils"
	journeyValidator "finlit/validators/journey"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Content is the shared content-store client, wired in main
var Content *utils.ContentClient

// DefaultPathSlugs is the published catalog shown when no explicit
// slugs are requested.
var DefaultPathSlugs = []string{
	"new-to-america",
	"banking-basics",
	"building-credit",
	"taxes-101",
	"investing-foundations",
}

func currentUser(c *fiber.Ctx) (models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return models.User{}, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return models.User{}, false
	}
	return user, true
}

func lockedForUser(path journeyModels.Path, user models.User) bool {
	if !path.IsPremium {
		return false
	}
	return !user.IsPremium && !user.LifetimeAccess
}

// hideAnswerKeys strips grading data from quiz questions before a
// lesson is sent to the viewer. Grading happens server-side on submit.
func hideAnswerKeys(lesson journeyModels.Lesson) journeyModels.Lesson {
	questions := make([]journeyModels.QuizQuestion, len(lesson.Questions))
	for i, q := range lesson.Questions {
		options := make([]journeyModels.QuizOption, len(q.Options))
		for j, opt := range q.Options {
			options[j] = journeyModels.QuizOption{Text: opt.Text}
		}
		q.Options = options
		q.CorrectAnswer = false
		q.Feedback = ""
		questions[i] = q
	}
	lesson.Questions = questions
	return lesson
}

// GetJourneyPaths lists the paths visible to the viewer's audience,
// with completion percentages attached.
func GetJourneyPaths(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedPathList").(*journeyValidator.PathListRequest)
	slugs := reqData.Slugs
	if len(slugs) == 0 {
		slugs = DefaultPathSlugs
	}

	variant := journeyModels.AudienceTag(user.UserType)

	paths, err := Content.FetchPaths(c.Context(), slugs, variant)
	if err != nil {
		log.Printf("[JOURNEY] Failed to fetch paths: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to fetch journey paths!", nil)
	}

	// Re-apply the audience rule locally; the query already filtered
	// but the local predicate is the source of truth.
	paths = journeyModels.FilterPaths(paths, variant)

	var allLessonIDs []string
	for _, p := range paths {
		allLessonIDs = append(allLessonIDs, p.LessonIDs()...)
	}
	completion := loadCompletionMap(user.ID, allLessonIDs)

	type PathSummary struct {
		journeyModels.Path
		Locked          bool `json:"locked"`
		ProgressPercent int  `json:"progress_percent"`
	}

	result := make([]PathSummary, len(paths))
	for i, p := range paths {
		summary := PathSummary{
			Path:            p,
			Locked:          lockedForUser(p, user),
			ProgressPercent: journeyModels.AggregatePercent(p.LessonIDs(), completion),
		}
		if summary.Locked {
			// Premium paths stay listed but their content is withheld
			summary.Path.Modules = nil
		}
		result[i] = summary
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Journey paths fetched successfully!", fiber.Map{
		"paths": result,
	})
}

// GetJourneyPath returns one path with modules, lessons, the viewer's
// completion map and per-module progress.
func GetJourneyPath(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("pathSlug").(string)
	variant := journeyModels.AudienceTag(user.UserType)

	path, err := Content.FetchPath(c.Context(), slug, variant)
	if err != nil {
		log.Printf("[JOURNEY] Failed to fetch path %q: %v", slug, err)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Journey path not found!", nil)
	}

	filtered := journeyModels.FilterPaths([]journeyModels.Path{path}, variant)
	if len(filtered) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Journey path not found!", nil)
	}
	path = filtered[0]

	if lockedForUser(path, user) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This journey path requires a premium subscription!", nil)
	}

	lessonIDs := path.LessonIDs()
	completion := loadCompletionMap(user.ID, lessonIDs)

	type ModuleProgress struct {
		ModuleID        string `json:"module_id"`
		ModuleTitle     string `json:"module_title"`
		TotalLessons    int    `json:"total_lessons"`
		CompletedCount  int    `json:"completed_count"`
		ProgressPercent int    `json:"progress_percent"`
	}

	moduleProgress := make([]ModuleProgress, len(path.Modules))
	for i, mod := range path.Modules {
		var ids []string
		completed := 0
		for _, l := range mod.Lessons {
			ids = append(ids, l.ID)
			if completion[l.ID] {
				completed++
			}
		}
		moduleProgress[i] = ModuleProgress{
			ModuleID:        mod.ID,
			ModuleTitle:     mod.Title,
			TotalLessons:    len(ids),
			CompletedCount:  completed,
			ProgressPercent: journeyModels.AggregatePercent(ids, completion),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Journey path fetched successfully!", fiber.Map{
		"path":             path,
		"completion":       completion,
		"module_progress":  moduleProgress,
		"progress_percent": journeyModels.AggregatePercent(lessonIDs, completion),
	})
}

// GetLesson returns one lesson with its viewer scaffold: the active
// page subset and the task keys that gate completion. Quiz answer
// keys are withheld.
func GetLesson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pathSlug := c.Locals("pathSlug").(string)
	lessonSlug := c.Locals("lessonSlug").(string)
	variant := journeyModels.AudienceTag(user.UserType)

	path, err := Content.FetchPath(c.Context(), pathSlug, variant)
	if err != nil {
		log.Printf("[JOURNEY] Failed to fetch path %q: %v", pathSlug, err)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Journey path not found!", nil)
	}

	if lockedForUser(path, user) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This journey path requires a premium subscription!", nil)
	}

	path.Modules = journeyModels.FilterModules(path.Modules, variant)

	lesson, found := path.FindLesson(lessonSlug)
	if !found || !journeyModels.ShouldShow(lesson.UserType, variant) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	session := journeyModels.NewSession(lesson)

	var progress models.LessonProgress
	completed := database.Database.Db.
		Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).
		First(&progress).Error == nil && progress.Completed

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":         hideAnswerKeys(lesson),
		"active_pages":   session.ActivePages,
		"required_tasks": lesson.RequiredTaskKeys(),
		"is_completed":   completed,
	})
}

// MarkLessonComplete marks a lesson done once every non-optional task
// key is in the submitted completed set. Optional tasks never gate.
func MarkLessonComplete(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedMarkComplete").(*journeyValidator.MarkCompleteRequest)
	variant := journeyModels.AudienceTag(user.UserType)

	path, err := Content.FetchPath(c.Context(), reqData.PathSlug, variant)
	if err != nil {
		log.Printf("[JOURNEY] Failed to fetch path %q: %v", reqData.PathSlug, err)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Journey path not found!", nil)
	}

	if lockedForUser(path, user) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This journey path requires a premium subscription!", nil)
	}

	lesson, found := path.FindLesson(reqData.LessonSlug)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	completedSet := make(map[string]bool, len(reqData.CompletedTasks))
	for _, key := range reqData.CompletedTasks {
		completedSet[key] = true
	}

	if missing := journeyModels.MissingRequiredTasks(lesson, completedSet); len(missing) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete all required tasks first!", fiber.Map{
			"missing_tasks": missing,
		})
	}

	now := time.Now()
	progress, err := upsertProgress(user.ID, lesson.ID, reqData.PathSlug, true, nil, &now)
	if err != nil {
		log.Printf("[JOURNEY] Failed to mark lesson complete: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson complete!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", progress)
}
