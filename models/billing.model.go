package models

import "gorm.io/gorm"

// Subscription status values mirrored from the payment provider
const (
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Webhook event types the billing dispatcher handles
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventInvoicePaid         = "invoice.paid"
)

// PaymentEvent is the idempotency ledger for webhook deliveries.
// The provider retries deliveries, so every processed event id is
// recorded here and replays are acknowledged without re-applying.
type PaymentEvent struct {
	gorm.Model
	EventID    string `json:"event_id" gorm:"uniqueIndex;not null"`
	EventType  string `json:"event_type" gorm:"index"`
	CustomerID string `json:"customer_id" gorm:"index"`
	Payload    string `json:"payload" gorm:"type:text"`
}
