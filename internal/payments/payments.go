package payments

import (
	"github.com/google/uuid"

	"github.com/relense/influencer-markt-sub001/internal/logger"
)

// IntentCreator opens a payment intent with the processor when a buyer moves
// an order into processing-payment.
type IntentCreator interface {
	CreateIntent(orderID string, amountCents int64) (string, error)
}

// PayoutSender transfers settled earnings to an influencer.
type PayoutSender interface {
	SendPayout(profileID string, amountCents int64) error
}

// LoggingGateway is the stand-in processor used outside production: it mints
// intent ids locally and records every call. The webhook endpoint closes the
// loop the same way a real processor callback would.
type LoggingGateway struct{}

func NewLoggingGateway() *LoggingGateway {
	return &LoggingGateway{}
}

func (g *LoggingGateway) CreateIntent(orderID string, amountCents int64) (string, error) {
	intentID := "pi_" + uuid.NewString()
	logger.Info("payment intent created", "intent_id", intentID, "order_id", orderID, "amount_cents", amountCents)
	return intentID, nil
}

func (g *LoggingGateway) SendPayout(profileID string, amountCents int64) error {
	logger.Info("payout sent", "profile_id", profileID, "amount_cents", amountCents)
	return nil
}
