package authController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"finlit/config"
	"finlit/database"
	"finlit/middleware"
	"finlit/models"
	authValidator "finlit/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/signup", authValidator.Signup(), Signup)
	app.Post("/auth/login", authValidator.Login(), Login)
	app.Post("/user/onboarding", middleware.JWTMiddleware, authValidator.Onboarding(), CompleteOnboarding)
	app.Get("/user/profile", middleware.JWTMiddleware, GetProfile)
	return app
}

func request(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestSignupAndLogin(t *testing.T) {
	app := setupAuthTest(t)

	signup := fiber.Map{"name": "Ana", "email": "ana@example.com", "password": "hunter2hunter2"}

	status, resp := request(t, app, "POST", "/auth/signup", "", signup)
	require.Equal(t, fiber.StatusCreated, status)

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", data["email"])
	assert.Empty(t, data["password"], "password is never echoed back")

	// Stored password is hashed
	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "ana@example.com").First(&user).Error)
	assert.NotEqual(t, "hunter2hunter2", user.Password)
	assert.False(t, user.OnboardingDone)

	// Duplicate email is rejected
	status, _ = request(t, app, "POST", "/auth/signup", "", signup)
	assert.Equal(t, fiber.StatusConflict, status)

	// Wrong password
	status, _ = request(t, app, "POST", "/auth/login", "", fiber.Map{
		"email": "ana@example.com", "password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// Successful login returns a usable token
	status, resp = request(t, app, "POST", "/auth/login", "", fiber.Map{
		"email": "ana@example.com", "password": "hunter2hunter2",
	})
	require.Equal(t, fiber.StatusOK, status)
	token := resp["data"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)

	status, resp = request(t, app, "GET", "/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ana@example.com", resp["data"].(map[string]interface{})["email"])
}

func TestSignupValidation(t *testing.T) {
	app := setupAuthTest(t)

	status, _ := request(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name": "A", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestOnboardingSetsAudience(t *testing.T) {
	app := setupAuthTest(t)

	status, _ := request(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name": "Ana", "email": "ana@example.com", "password": "hunter2hunter2",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, resp := request(t, app, "POST", "/auth/login", "", fiber.Map{
		"email": "ana@example.com", "password": "hunter2hunter2",
	})
	require.Equal(t, fiber.StatusOK, status)
	token := resp["data"].(map[string]interface{})["token"].(string)

	// "all" is a content tag, not a viewer identity
	status, _ = request(t, app, "POST", "/user/onboarding", token, fiber.Map{"user_type": "all"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, resp = request(t, app, "POST", "/user/onboarding", token, fiber.Map{
		"user_type":          "immigrant",
		"preferred_language": "es",
	})
	require.Equal(t, fiber.StatusOK, status)

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "ana@example.com").First(&user).Error)
	assert.Equal(t, "immigrant", user.UserType)
	assert.Equal(t, "es", user.PreferredLanguage)
	assert.True(t, user.OnboardingDone)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupAuthTest(t)

	status, _ := request(t, app, "GET", "/user/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = request(t, app, "GET", "/user/profile", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
