package chatValidator

import (
	"finlit/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type MessageRequest struct {
	Message  string `json:"message" validate:"required,max=4000"`
	Language string `json:"language" validate:"omitempty,min=2,max=5"`
	ThreadID string `json:"threadId"`
}

func Message() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MessageRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, e := range err.(validator.ValidationErrors) {
				switch e.Field() {
				case "Message":
					errors["message"] = "Message is required and must be under 4000 characters!"
				case "Language":
					errors["language"] = "Language must be a valid language code!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Language == "" {
			reqData.Language = "en"
		}

		c.Locals("validatedMessage", reqData)
		return c.Next()
	}
}
