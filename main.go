package main

import (
	"finlit/config"
	chatController "finlit/controllers/chat"
	journeyController "finlit/controllers/journey"
	"finlit/database"
	adminRoutes "finlit/routers/adminRoutes"
	authRoutes "finlit/routers/authRoutes"
	billingRoutes "finlit/routers/billingRoutes"
	chatRoutes "finlit/routers/chatRoutes"
	journeyRoutes "finlit/routers/journeyRoutes"
	"finlit/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// External service clients; missing credentials are fatal here
	// rather than on the first request.
	contentClient, err := utils.NewContentClient()
	if err != nil {
		log.Fatalf("Failed to create content client: %v", err)
	}
	journeyController.Content = contentClient
	chatController.Content = contentClient

	assistantClient, err := utils.NewAssistantClient()
	if err != nil {
		log.Fatalf("Failed to create assistant client: %v", err)
	}
	chatController.Assistant = assistantClient

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,Stripe-Signature",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	journeyRoutes.SetupJourneyRoutes(app)
	chatRoutes.SetupChatRoutes(app)
	billingRoutes.SetupBillingRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializeSubscriptionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
