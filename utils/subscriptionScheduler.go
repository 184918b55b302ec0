package utils

import (
	"finlit/database"
	"finlit/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeSubscriptionScheduler sets up the premium expiry scheduler
func InitializeSubscriptionScheduler() {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Run daily at 9 AM to check expiring premium access
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily premium check...")
		ProcessExpiringPremium()
		ExpirePremium()
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 9 AM")
}

// ProcessExpiringPremium sends reminder emails for premium access expiring in 2 days
func ProcessExpiringPremium() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var expiringUsers []models.User
	if err := db.
		Where("is_premium = ? AND lifetime_access = ? AND expiry_reminder_sent = ? AND premium_expires_at IS NOT NULL", true, false, false).
		Where("premium_expires_at BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&expiringUsers).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expiring users: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Found %d users with premium expiring soon", len(expiringUsers))

	for _, user := range expiringUsers {
		SendPremiumExpiryReminder(user.Email, user.Name, user.PremiumExpiresAt)

		db.Model(&user).Update("expiry_reminder_sent", true)
		log.Printf("[SUBSCRIPTION-SCHEDULER] Sent expiry reminder to %s", user.Email)
	}
}

// ExpirePremium downgrades users whose premium access has lapsed
func ExpirePremium() {
	db := database.Database.Db
	now := time.Now()

	var expiredUsers []models.User
	if err := db.
		Where("is_premium = ? AND lifetime_access = ? AND premium_expires_at IS NOT NULL AND premium_expires_at < ?", true, false, now).
		Find(&expiredUsers).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expired users: %v", err)
		return
	}

	if len(expiredUsers) == 0 {
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Expiring premium for %d users", len(expiredUsers))

	for _, user := range expiredUsers {
		updates := map[string]interface{}{
			"is_premium":           false,
			"subscription_status":  models.SubscriptionCanceled,
			"expiry_reminder_sent": false,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring user %d: %v", user.ID, err)
			continue
		}
		SendPremiumExpiredEmail(user.Email, user.Name)
	}
}
