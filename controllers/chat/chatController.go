package chatController

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"finlit/database"
	"finlit/models"
	journeyModels "finlit/models/journey"
	"finlit/utils"
	chatValidator "finlit/validators/chat"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assistant is the shared assistant-API client, wired in main
var Assistant *utils.AssistantClient

// Content backs the assistant's journey-path tool calls, wired in main
var Content *utils.ContentClient

// SendMessage proxies one chat turn to the assistant API. The thread
// is created on first contact and reused afterwards; the run loop
// dispatches tool calls for progress and path lookups. The response
// shape is the chat contract, not the standard envelope:
// {message, threadId} on success, {error, details} otherwise.
func SendMessage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"details": "Missing or invalid token",
		})
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"details": "User not found",
		})
	}

	reqData := c.Locals("validatedMessage").(*chatValidator.MessageRequest)

	// Correlation id for tracing one chat turn through the logs
	turnID := uuid.NewString()[:8]

	threadID, err := resolveThread(c, user, reqData)
	if err != nil {
		log.Printf("[CHAT %s] Failed to resolve thread: %v", turnID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "thread_error",
			"details": err.Error(),
		})
	}

	if err := Assistant.AddMessage(c.Context(), threadID, reqData.Message); err != nil {
		log.Printf("[CHAT %s] Failed to add message: %v", turnID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "message_error",
			"details": err.Error(),
		})
	}

	tools := toolHandler(c, user)
	if err := Assistant.RunAndWait(c.Context(), threadID, reqData.Language, tools); err != nil {
		log.Printf("[CHAT %s] Run failed: %v", turnID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "run_error",
			"details": err.Error(),
		})
	}

	reply, err := Assistant.LatestAssistantMessage(c.Context(), threadID)
	if err != nil {
		log.Printf("[CHAT %s] Failed to read reply: %v", turnID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "reply_error",
			"details": err.Error(),
		})
	}

	database.Database.Db.Model(&models.ChatThread{}).
		Where("thread_id = ?", threadID).
		Update("last_message_at", time.Now())

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  reply,
		"threadId": threadID,
	})
}

// resolveThread returns the thread to use for this turn: the one the
// client sent, the user's stored open thread, or a newly created one.
func resolveThread(c *fiber.Ctx, user models.User, reqData *chatValidator.MessageRequest) (string, error) {
	db := database.Database.Db

	if reqData.ThreadID != "" {
		var thread models.ChatThread
		if err := db.Where("thread_id = ? AND user_id = ? AND is_deleted = ?", reqData.ThreadID, user.ID, false).
			First(&thread).Error; err != nil {
			return "", fmt.Errorf("thread %q does not belong to this user", reqData.ThreadID)
		}
		return thread.ThreadID, nil
	}

	var thread models.ChatThread
	err := db.Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Order("last_message_at desc").
		First(&thread).Error
	if err == nil {
		return thread.ThreadID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	threadID, err := Assistant.CreateThread(c.Context())
	if err != nil {
		return "", err
	}

	record := models.ChatThread{
		UserID:        user.ID,
		ThreadID:      threadID,
		Language:      reqData.Language,
		LastMessageAt: time.Now(),
	}
	if err := db.Create(&record).Error; err != nil {
		return "", err
	}
	return threadID, nil
}

// toolHandler wires the assistant's tool calls to the progress store
// and the content client. One level of dispatch only; tools never call
// further tools.
func toolHandler(c *fiber.Ctx, user models.User) utils.ToolHandler {
	return func(name string, args json.RawMessage) (string, error) {
		switch name {
		case "get_user_progress":
			var params struct {
				PathSlug string `json:"path_slug"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
			}

			var rows []models.LessonProgress
			query := database.Database.Db.Where("user_id = ? AND completed = ?", user.ID, true)
			if params.PathSlug != "" {
				query = query.Where("path_slug = ?", params.PathSlug)
			}
			if err := query.Find(&rows).Error; err != nil {
				return "", err
			}

			out, _ := json.Marshal(fiber.Map{
				"completed_lessons": len(rows),
				"path_slug":         params.PathSlug,
			})
			return string(out), nil

		case "list_journey_paths":
			variant := journeyModels.AudienceTag(user.UserType)
			paths, err := Content.FetchPaths(c.Context(), journeyPathCatalog(), variant)
			if err != nil {
				return "", err
			}
			paths = journeyModels.FilterPaths(paths, variant)

			type pathInfo struct {
				Title string `json:"title"`
				Slug  string `json:"slug"`
				Level string `json:"level"`
			}
			infos := make([]pathInfo, len(paths))
			for i, p := range paths {
				infos[i] = pathInfo{Title: p.Title, Slug: p.Slug, Level: p.Level}
			}
			out, _ := json.Marshal(infos)
			return string(out), nil

		default:
			return "", fmt.Errorf("unknown tool %q", name)
		}
	}
}

// journeyPathCatalog mirrors the published catalog used by the
// journey endpoints.
func journeyPathCatalog() []string {
	return []string{
		"new-to-america",
		"banking-basics",
		"building-credit",
		"taxes-101",
		"investing-foundations",
	}
}
