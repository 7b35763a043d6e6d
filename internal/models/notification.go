package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is a persisted counterparty event. Rows double as the outbox
// for email delivery: the worker picks rows with DeliveredAt = NULL and
// retries until sent.
type Notification struct {
	BaseModel
	NotifierProfileID string  `gorm:"not null;index"` // recipient
	SenderProfileID   *string // actor, empty for system events
	EntityType        string  `gorm:"not null"` // "job" | "order" | "message" | "payout"
	EntityID          string  `gorm:"not null"`
	Action            string  `gorm:"not null"`
	Data              datatypes.JSON `gorm:"type:jsonb"`
	IsRead            bool           `gorm:"not null;default:false"`
	ReadAt            *time.Time
	DeliveredAt       *time.Time
	DeliveryAttempts  int `gorm:"not null;default:0"`

	Notifier Profile  `gorm:"foreignKey:NotifierProfileID"`
	Sender   *Profile `gorm:"foreignKey:SenderProfileID"`
}

// Notification actions.
const (
	ActionJobApplicationReceived = "application_received"
	ActionApplicantAccepted      = "applicant_accepted"
	ActionApplicantRejected      = "applicant_rejected"
	ActionOrderCreated           = "order_created"
	ActionOrderAccepted          = "order_accepted"
	ActionOrderRejected          = "order_rejected"
	ActionOrderCanceled          = "order_canceled"
	ActionOrderPaymentPending    = "order_payment_pending"
	ActionOrderInProgress        = "order_in_progress"
	ActionOrderDelivered         = "order_delivered"
	ActionOrderConfirmed         = "order_confirmed"
	ActionOrderDisputed          = "order_disputed"
	ActionOrderOnHold            = "order_on_hold"
	ActionOrderReviewed          = "order_reviewed"
	ActionNewMessage             = "new_message"
	ActionPayoutPaid             = "payout_paid"
)
