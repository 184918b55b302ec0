package journeyRoutes

import (
	controllers "finlit/controllers/journey"
	"finlit/middleware"
	validators "finlit/validators/journey"

	"github.com/gofiber/fiber/v2"
)

// SetupJourneyRoutes sets up all journey path, lesson and progress routes
func SetupJourneyRoutes(app *fiber.App) {
	journeyGroup := app.Group("/journeys")

	// Path listing and details
	journeyGroup.Get("/", middleware.JWTMiddleware, validators.PathList(), controllers.GetJourneyPaths)
	journeyGroup.Get("/:slug", middleware.JWTMiddleware, validators.PathDetail(), controllers.GetJourneyPath)
	journeyGroup.Get("/:slug/lessons/:lesson_slug", middleware.JWTMiddleware, validators.LessonDetail(), controllers.GetLesson)

	// Progress tracking
	journeyGroup.Get("/:slug/progress", middleware.JWTMiddleware, validators.PathDetail(), controllers.GetPathProgress)

	progressGroup := app.Group("/progress")
	progressGroup.Post("/toggle", middleware.JWTMiddleware, validators.ToggleProgress(), controllers.ToggleLessonProgress)
	progressGroup.Post("/complete", middleware.JWTMiddleware, validators.MarkComplete(), controllers.MarkLessonComplete)

	// Quiz submission and history
	quizGroup := app.Group("/quiz")
	quizGroup.Post("/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuiz)
	quizGroup.Get("/:lesson_id/attempts", middleware.JWTMiddleware, controllers.GetQuizAttempts)
}
