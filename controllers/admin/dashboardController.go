package adminController

import (
	"finlit/database"
	"finlit/middleware"
	"finlit/models"
	journeyModels "finlit/models/journey"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats returns aggregate platform numbers for the admin
// dashboard: user counts by audience, premium counts, learning
// activity and billing totals.
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, immigrantUsers, nonImmigrantUsers, onboardedUsers int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_deleted = ? AND user_type = ?", false, string(journeyModels.AudienceImmigrant)).Count(&immigrantUsers)
	db.Model(&models.User{}).Where("is_deleted = ? AND user_type = ?", false, string(journeyModels.AudienceNonImmigrant)).Count(&nonImmigrantUsers)
	db.Model(&models.User{}).Where("is_deleted = ? AND onboarding_done = ?", false, true).Count(&onboardedUsers)

	var premiumUsers, lifetimeUsers int64
	db.Model(&models.User{}).Where("is_deleted = ? AND is_premium = ?", false, true).Count(&premiumUsers)
	db.Model(&models.User{}).Where("is_deleted = ? AND lifetime_access = ?", false, true).Count(&lifetimeUsers)

	var completedLessons, quizAttempts, passedQuizzes int64
	db.Model(&models.LessonProgress{}).Where("completed = ?", true).Count(&completedLessons)
	db.Model(&models.QuizAttempt{}).Count(&quizAttempts)
	db.Model(&models.QuizAttempt{}).Where("passed = ?", true).Count(&passedQuizzes)

	var totalRevenueCents int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).
		Select("COALESCE(SUM(total_spent_cents), 0)").Scan(&totalRevenueCents)

	var signupsLastWeek int64
	weekAgo := time.Now().AddDate(0, 0, -7)
	db.Model(&models.User{}).Where("is_deleted = ? AND created_at > ?", false, weekAgo).Count(&signupsLastWeek)

	var webhookEvents int64
	db.Model(&models.PaymentEvent{}).Count(&webhookEvents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total":         totalUsers,
			"immigrant":     immigrantUsers,
			"non_immigrant": nonImmigrantUsers,
			"onboarded":     onboardedUsers,
			"premium":       premiumUsers,
			"lifetime":      lifetimeUsers,
			"new_this_week": signupsLastWeek,
		},
		"learning": fiber.Map{
			"completed_lessons": completedLessons,
			"quiz_attempts":     quizAttempts,
			"passed_quizzes":    passedQuizzes,
		},
		"billing": fiber.Map{
			"total_revenue_cents": totalRevenueCents,
			"webhook_events":      webhookEvents,
		},
	})
}

// GetRecentEvents lists the latest entries in the payment event
// ledger for debugging webhook deliveries.
func GetRecentEvents(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.PaymentEvent{})

	var total int64
	db.Count(&total)

	var events []models.PaymentEvent
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched successfully!", fiber.Map{
		"events": events,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
