package chatRoutes

import (
	controllers "finlit/controllers/chat"
	"finlit/middleware"
	validators "finlit/validators/chat"

	"github.com/gofiber/fiber/v2"
)

// SetupChatRoutes sets up the assistant chat proxy route
func SetupChatRoutes(app *fiber.App) {
	chatGroup := app.Group("/chat")

	chatGroup.Post("/", middleware.JWTMiddleware, validators.Message(), controllers.SendMessage)
}
