package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"default:''"`
	Email    string `json:"email" gorm:"unique;not null"`
	Role     string `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	Password string `json:"password,omitempty" gorm:"not null"`

	// Audience resolved during onboarding. Content visibility keys off this,
	// not off anything in the request.
	UserType string `json:"user_type" gorm:"default:''"` // immigrant, nonImmigrant

	PreferredLanguage string `json:"preferred_language" gorm:"default:'en'"`
	OnboardingDone    bool   `json:"onboarding_done" gorm:"default:false"`

	// Billing state, written only by the payment webhook
	PaymentCustomerID  string     `json:"payment_customer_id" gorm:"index;default:''"`
	IsPremium          bool       `json:"is_premium" gorm:"default:false"`
	SubscriptionStatus string     `json:"subscription_status" gorm:"default:''"` // active, past_due, canceled
	PremiumExpiresAt   *time.Time `json:"premium_expires_at"`
	LifetimeAccess     bool       `json:"lifetime_access" gorm:"default:false"`
	TotalSpentCents    int64      `json:"total_spent_cents" gorm:"default:0"`
	ExpiryReminderSent bool       `json:"-" gorm:"default:false"`

	LastLogin time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted bool      `json:"-" gorm:"default:false"`
}
