package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/logger"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/payments"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

const payoutBatchSize = 100

// PayoutWorker settles the "available" bucket: unpaid payout rows from
// months before the current one. The MarkPaid guard (paid = false) makes the
// run idempotent.
type PayoutWorker struct {
	db               *gorm.DB
	payoutRepo       *repositories.PayoutRepository
	notificationRepo *repositories.NotificationRepository
	sender           payments.PayoutSender
	interval         time.Duration
}

func NewPayoutWorker(db *gorm.DB, sender payments.PayoutSender) *PayoutWorker {
	return &PayoutWorker{
		db:               db,
		payoutRepo:       repositories.NewPayoutRepository(),
		notificationRepo: repositories.NewNotificationRepository(),
		sender:           sender,
		interval:         24 * time.Hour,
	}
}

func (w *PayoutWorker) Start(ctx context.Context) {
	go w.runLoop(ctx)
}

func (w *PayoutWorker) runLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("payout worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(time.Now())
		}
	}
}

// RunOnce settles every payout row older than the current month. Exported for
// tests and manual runs.
func (w *PayoutWorker) RunOnce(now time.Time) {
	now = now.UTC()
	cutoff := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for {
		payouts, err := w.payoutRepo.ListPayableBefore(w.db, cutoff, payoutBatchSize)
		if err != nil {
			logger.Error("failed to load payable payouts", "error", err)
			return
		}
		if len(payouts) == 0 {
			return
		}

		settled := 0
		for i := range payouts {
			if w.settle(&payouts[i], now) {
				settled++
			}
		}

		// A full batch of failures would refetch the same rows; stop and let
		// the next run retry.
		if len(payouts) < payoutBatchSize || settled == 0 {
			return
		}
	}
}

func (w *PayoutWorker) settle(payout *models.Payout, now time.Time) bool {
	if err := w.sender.SendPayout(payout.ProfileID, payout.AmountCents); err != nil {
		logger.Error("payout transfer failed", "payout_id", payout.ID, "error", err)
		return false
	}

	if err := w.payoutRepo.MarkPaid(w.db, payout.ID, now); err != nil {
		if apperrors.Is(err, apperrors.ErrPayoutAlreadyPaid) {
			logger.Warn("payout was settled by a concurrent run", "payout_id", payout.ID)
		} else {
			logger.Error("failed to mark payout paid", "payout_id", payout.ID, "error", err)
		}
		return false
	}

	notification := &models.Notification{
		NotifierProfileID: payout.ProfileID,
		EntityType:        "payout",
		EntityID:          payout.ID,
		Action:            models.ActionPayoutPaid,
	}
	if err := w.notificationRepo.Create(w.db, notification); err != nil {
		logger.Error("failed to emit payout notification", "payout_id", payout.ID, "error", err)
	}
	return true
}
