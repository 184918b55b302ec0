package authValidator

import (
	"finlit/middleware"
	journeyModels "finlit/models/journey"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, e := range err.(validator.ValidationErrors) {
				switch e.Field() {
				case "Name":
					errors["name"] = "Name must be at least 2 characters long!"
				case "Email":
					errors["email"] = "A valid email address is required!"
				case "Password":
					errors["password"] = "Password must be at least 8 characters long!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, e := range err.(validator.ValidationErrors) {
				switch e.Field() {
				case "Email":
					errors["email"] = "A valid email address is required!"
				case "Password":
					errors["password"] = "Password is required!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

type OnboardingRequest struct {
	UserType          string `json:"user_type"`
	PreferredLanguage string `json:"preferred_language"`
}

// Onboarding validates the audience-selection step. The user type is
// a closed set; "all" is a content tag, not a viewer identity.
func Onboarding() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(OnboardingRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		userType := journeyModels.AudienceTag(strings.TrimSpace(reqData.UserType))
		if userType != journeyModels.AudienceImmigrant && userType != journeyModels.AudienceNonImmigrant {
			errors["user_type"] = "User type must be either 'immigrant' or 'nonImmigrant'!"
		}

		if reqData.PreferredLanguage != "" && (len(reqData.PreferredLanguage) < 2 || len(reqData.PreferredLanguage) > 5) {
			errors["preferred_language"] = "Preferred language must be a valid language code!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOnboarding", reqData)
		return c.Next()
	}
}
