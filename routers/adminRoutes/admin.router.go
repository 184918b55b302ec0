package adminRoutes

import (
	controllers "finlit/controllers/admin"
	"finlit/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the admin dashboard routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")

	adminGroup.Get("/dashboard", middleware.JWTMiddleware, middleware.RequireAdmin, controllers.GetDashboardStats)
	adminGroup.Get("/events", middleware.JWTMiddleware, middleware.RequireAdmin, controllers.GetRecentEvents)
}
