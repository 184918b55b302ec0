package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	// Headless content store (journey paths, modules, lessons)
	ContentProjectID  string
	ContentDataset    string
	ContentAPIVersion string
	ContentToken      string

	// AI assistant
	AssistantAPIKey string
	AssistantID     string
	AssistantAPIURL string

	// Payment provider
	PaymentWebhookSecret string

	// Transactional email
	SendgridAPIKey string
	EmailSender    string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		ContentProjectID:  getEnv("CONTENT_PROJECT_ID", ""),
		ContentDataset:    getEnv("CONTENT_DATASET", "production"),
		ContentAPIVersion: getEnv("CONTENT_API_VERSION", "2024-01-01"),
		ContentToken:      getEnv("CONTENT_TOKEN", ""),

		AssistantAPIKey: getEnv("ASSISTANT_API_KEY", ""),
		AssistantID:     getEnv("ASSISTANT_ID", ""),
		AssistantAPIURL: getEnv("ASSISTANT_API_URL", "https://api.openai.com/v1"),

		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@finlit.app"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.ContentProjectID == "" {
		log.Println("Warning: CONTENT_PROJECT_ID is not set. Content fetches will fail.")
	}
	if AppConfig.PaymentWebhookSecret == "" {
		log.Println("Warning: PAYMENT_WEBHOOK_SECRET is not set. Webhook verification will reject all events.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
