package workers

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/email"
	"github.com/relense/influencer-markt-sub001/internal/logger"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
)

const (
	deliveryBatchSize   = 100
	maxDeliveryAttempts = 5
)

// NotificationWorker drains the notification outbox. Rows are written inside
// the same transaction as the event they describe, so draining them here
// gives at-least-once email delivery: a crash between send and mark simply
// means one more attempt.
type NotificationWorker struct {
	db               *gorm.DB
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	sender           email.Sender
	interval         time.Duration
}

func NewNotificationWorker(db *gorm.DB, sender email.Sender) *NotificationWorker {
	return &NotificationWorker{
		db:               db,
		notificationRepo: repositories.NewNotificationRepository(),
		userRepo:         repositories.NewUserRepository(),
		sender:           sender,
		interval:         30 * time.Second,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	go w.deliverLoop(ctx)
}

func (w *NotificationWorker) deliverLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		case <-ticker.C:
			w.DeliverBatch()
		}
	}
}

// DeliverBatch sends one batch of undelivered notifications. Exported so the
// app can flush on demand and tests can drive the worker synchronously.
func (w *NotificationWorker) DeliverBatch() {
	notifications, err := w.notificationRepo.FindUndelivered(w.db, maxDeliveryAttempts, deliveryBatchSize)
	if err != nil {
		logger.Error("failed to load undelivered notifications", "error", err)
		return
	}

	for i := range notifications {
		w.deliver(&notifications[i])
	}
}

func (w *NotificationWorker) deliver(n *models.Notification) {
	// Count the attempt before sending so a poison row cannot loop forever.
	if err := w.notificationRepo.RecordDeliveryAttempt(w.db, n.ID); err != nil {
		logger.Error("failed to record delivery attempt", "notification_id", n.ID, "error", err)
		return
	}

	to, err := w.recipientEmail(n.NotifierProfileID)
	if err != nil {
		logger.Error("failed to resolve notification recipient", "notification_id", n.ID, "error", err)
		return
	}

	subject, body := renderNotificationEmail(n)
	if err := w.sender.Send(to, subject, body); err != nil {
		logger.Warn("notification delivery failed, will retry",
			"notification_id", n.ID, "attempt", n.DeliveryAttempts+1, "error", err)
		return
	}

	if err := w.notificationRepo.MarkDelivered(w.db, n.ID); err != nil {
		// The email went out but the mark failed; the next pass resends.
		logger.Error("failed to mark notification delivered", "notification_id", n.ID, "error", err)
	}
}

func (w *NotificationWorker) recipientEmail(profileID string) (string, error) {
	var result struct{ Email string }
	err := w.db.Table("users").
		Select("users.email").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.id = ?", profileID).
		Scan(&result).Error
	if err != nil {
		return "", err
	}
	if result.Email == "" {
		return "", fmt.Errorf("no user for profile %s", profileID)
	}
	return result.Email, nil
}

func renderNotificationEmail(n *models.Notification) (subject, body string) {
	switch n.Action {
	case models.ActionJobApplicationReceived:
		subject = "New application on your job"
	case models.ActionApplicantAccepted:
		subject = "Your application was accepted"
	case models.ActionApplicantRejected:
		subject = "Update on your application"
	case models.ActionOrderCreated:
		subject = "You have a new order"
	case models.ActionOrderDelivered:
		subject = "Your order was delivered"
	case models.ActionOrderConfirmed:
		subject = "Your order was confirmed"
	case models.ActionNewMessage:
		subject = "You have a new message"
	case models.ActionPayoutPaid:
		subject = "Your payout is on its way"
	default:
		subject = "Activity on your account"
	}
	body = fmt.Sprintf("<p>There is new activity on your %s.</p><p>Open the app to see the details.</p>", n.EntityType)
	return subject, body
}
