package authRoutes

import (
	controllers "finlit/controllers/auth"
	"finlit/middleware"
	validators "finlit/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up authentication and onboarding routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", validators.Login(), controllers.Login)

	userGroup := app.Group("/user")
	userGroup.Get("/profile", middleware.JWTMiddleware, controllers.GetProfile)
	userGroup.Post("/onboarding", middleware.JWTMiddleware, validators.Onboarding(), controllers.CompleteOnboarding)
}
