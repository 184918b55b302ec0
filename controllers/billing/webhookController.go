package billingController

import (
	"encoding/json"
	"log"
	"time"

	"finlit/config"
	"finlit/database"
	"finlit/middleware"
	"finlit/models"
	"finlit/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const signatureHeader = "Stripe-Signature"

// webhookEvent is the provider's event envelope
type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID               string `json:"id"`
			Customer         string `json:"customer"`
			Mode             string `json:"mode"` // subscription, payment
			Status           string `json:"status"`
			AmountTotal      int64  `json:"amount_total"`
			AmountPaid       int64  `json:"amount_paid"`
			CurrentPeriodEnd int64  `json:"current_period_end"`
		} `json:"object"`
	} `json:"data"`
}

// HandleWebhook receives payment provider events. The signature is
// verified against the raw body before anything is parsed; verified
// events pass through the idempotency ledger so a redelivered event id
// is acknowledged without re-applying its update.
func HandleWebhook(c *fiber.Ctx) error {
	secret := config.AppConfig.PaymentWebhookSecret
	if secret == "" {
		log.Println("[BILLING] PAYMENT_WEBHOOK_SECRET is not configured")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Webhook is not configured!", nil)
	}

	payload := c.Body()
	if err := utils.VerifyWebhookSignature(payload, c.Get(signatureHeader), secret, time.Now()); err != nil {
		log.Printf("[BILLING] Signature verification failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook signature!", nil)
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("[BILLING] Failed to parse event payload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event payload!", nil)
	}
	if event.ID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Event id is missing!", nil)
	}

	db := database.Database.Db

	// Idempotency ledger: a replayed delivery is acknowledged and skipped
	var existing models.PaymentEvent
	if err := db.Where("event_id = ?", event.ID).First(&existing).Error; err == nil {
		log.Printf("[BILLING] Event %s already processed, skipping", event.ID)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event already processed.", nil)
	}

	if err := dispatchEvent(db, event); err != nil {
		log.Printf("[BILLING] Failed to process event %s (%s): %v", event.ID, event.Type, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process event!", nil)
	}

	ledgerEntry := models.PaymentEvent{
		EventID:    event.ID,
		EventType:  event.Type,
		CustomerID: event.Data.Object.Customer,
		Payload:    string(payload),
	}
	if err := db.Create(&ledgerEntry).Error; err != nil {
		// The update already applied; a failed ledger write only risks
		// one redundant reprocess on redelivery.
		log.Printf("[BILLING] Failed to record event %s in ledger: %v", event.ID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event processed.", nil)
}

// dispatchEvent routes one verified event to its handler
func dispatchEvent(db *gorm.DB, event webhookEvent) error {
	customerID := event.Data.Object.Customer

	var user models.User
	if customerID != "" {
		if err := db.Where("payment_customer_id = ? AND is_deleted = ?", customerID, false).First(&user).Error; err != nil {
			// No local user for this customer; acknowledge so the
			// provider stops retrying.
			log.Printf("[BILLING] No user for customer %s, ignoring event %s", customerID, event.ID)
			return nil
		}
	}

	switch event.Type {
	case models.EventCheckoutCompleted:
		return handleCheckoutCompleted(db, user, event)
	case models.EventSubscriptionUpdated:
		return handleSubscriptionUpdated(db, user, event)
	case models.EventSubscriptionDeleted:
		return db.Model(&user).Updates(map[string]interface{}{
			"is_premium":          false,
			"subscription_status": models.SubscriptionCanceled,
		}).Error
	case models.EventInvoicePaid:
		return handleInvoicePaid(db, user, event)
	default:
		log.Printf("[BILLING] Ignoring unhandled event type %s", event.Type)
		return nil
	}
}

func handleCheckoutCompleted(db *gorm.DB, user models.User, event webhookEvent) error {
	obj := event.Data.Object

	updates := map[string]interface{}{
		"is_premium":           true,
		"subscription_status":  models.SubscriptionActive,
		"total_spent_cents":    user.TotalSpentCents + obj.AmountTotal,
		"expiry_reminder_sent": false,
	}
	if obj.Mode == "payment" {
		// One-time purchase grants lifetime access
		updates["lifetime_access"] = true
		updates["premium_expires_at"] = nil
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return err
	}

	go utils.SendPaymentReceiptEmail(user.Email, user.Name, obj.AmountTotal)
	return nil
}

func handleSubscriptionUpdated(db *gorm.DB, user models.User, event webhookEvent) error {
	obj := event.Data.Object

	status := obj.Status
	switch status {
	case "active", "trialing":
		status = models.SubscriptionActive
	case "past_due", "unpaid":
		status = models.SubscriptionPastDue
	case "canceled", "incomplete_expired":
		status = models.SubscriptionCanceled
	}

	updates := map[string]interface{}{
		"subscription_status": status,
		"is_premium":          status == models.SubscriptionActive || user.LifetimeAccess,
	}
	if obj.CurrentPeriodEnd > 0 {
		updates["premium_expires_at"] = time.Unix(obj.CurrentPeriodEnd, 0)
		updates["expiry_reminder_sent"] = false
	}

	return db.Model(&user).Updates(updates).Error
}

func handleInvoicePaid(db *gorm.DB, user models.User, event webhookEvent) error {
	obj := event.Data.Object

	updates := map[string]interface{}{
		"total_spent_cents":    user.TotalSpentCents + obj.AmountPaid,
		"is_premium":           true,
		"subscription_status":  models.SubscriptionActive,
		"expiry_reminder_sent": false,
	}
	return db.Model(&user).Updates(updates).Error
}
