package journeyValidator

import (
	"finlit/middleware"
	journeyModels "finlit/models/journey"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type PathListRequest struct {
	Slugs []string
}

// PathList parses the optional comma-separated slugs query parameter.
// An empty list falls back to the published catalog in the controller.
func PathList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PathListRequest)

		raw := strings.TrimSpace(c.Query("slugs"))
		if raw != "" {
			for _, s := range strings.Split(raw, ",") {
				s = strings.TrimSpace(s)
				if s != "" {
					reqData.Slugs = append(reqData.Slugs, s)
				}
			}
			if len(reqData.Slugs) == 0 {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"slugs": "Slugs must be a comma-separated list of path slugs!",
				})
			}
		}

		c.Locals("validatedPathList", reqData)
		return c.Next()
	}
}

func PathDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"slug": "Path slug is required!",
			})
		}

		c.Locals("pathSlug", slug)
		return c.Next()
	}
}

func LessonDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		pathSlug := strings.TrimSpace(c.Params("slug"))
		if pathSlug == "" {
			errors["slug"] = "Path slug is required!"
		}

		lessonSlug := strings.TrimSpace(c.Params("lesson_slug"))
		if lessonSlug == "" {
			errors["lesson_slug"] = "Lesson slug is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("pathSlug", pathSlug)
		c.Locals("lessonSlug", lessonSlug)
		return c.Next()
	}
}

type ToggleProgressRequest struct {
	LessonID string `json:"lesson_id"`
	PathSlug string `json:"path_slug"`
}

func ToggleProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ToggleProgressRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.LessonID) == "" {
			errors["lesson_id"] = "Lesson id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedToggle", reqData)
		return c.Next()
	}
}

type MarkCompleteRequest struct {
	PathSlug       string   `json:"path_slug"`
	LessonSlug     string   `json:"lesson_slug"`
	CompletedTasks []string `json:"completed_tasks"`
}

func MarkComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MarkCompleteRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.PathSlug) == "" {
			errors["path_slug"] = "Path slug is required!"
		}
		if strings.TrimSpace(reqData.LessonSlug) == "" {
			errors["lesson_slug"] = "Lesson slug is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMarkComplete", reqData)
		return c.Next()
	}
}

type SubmitQuizRequest struct {
	PathSlug   string                    `json:"path_slug"`
	LessonSlug string                    `json:"lesson_slug"`
	Answers    []journeyModels.QuizAnswer `json:"answers"`
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitQuizRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.PathSlug) == "" {
			errors["path_slug"] = "Path slug is required!"
		}
		if strings.TrimSpace(reqData.LessonSlug) == "" {
			errors["lesson_slug"] = "Lesson slug is required!"
		}
		if len(reqData.Answers) == 0 {
			errors["answers"] = "Answers are required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmitQuiz", reqData)
		return c.Next()
	}
}
