package billingRoutes

import (
	controllers "finlit/controllers/billing"

	"github.com/gofiber/fiber/v2"
)

// SetupBillingRoutes sets up the payment provider webhook route.
// The webhook authenticates with its signature header, not a JWT.
func SetupBillingRoutes(app *fiber.App) {
	billingGroup := app.Group("/billing")

	billingGroup.Post("/webhook", controllers.HandleWebhook)
}
