package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/models"
)

func seedNotification(t *testing.T, db *gorm.DB, profileID, action string) string {
	t.Helper()

	n := &models.Notification{
		NotifierProfileID: profileID,
		EntityType:        "order",
		EntityID:          "order-1",
		Action:            action,
	}
	require.NoError(t, db.Create(n).Error)
	return n.ID
}

func TestDeliverBatch_SendsAndMarksDelivered(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	profileID := createProfile(t, db, "dana@example.com", "Dana")
	seedNotification(t, db, profileID, models.ActionOrderConfirmed)
	seedNotification(t, db, profileID, models.ActionNewMessage)

	sender := &captureSender{}
	NewNotificationWorker(db, sender).DeliverBatch()

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "dana@example.com", sender.sent[0].to)
	assert.Equal(t, "Your order was confirmed", sender.sent[0].subject)

	var undelivered int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("delivered_at IS NULL").Count(&undelivered).Error)
	assert.Zero(t, undelivered)

	// A second pass finds nothing to send.
	NewNotificationWorker(db, sender).DeliverBatch()
	assert.Len(t, sender.sent, 2)
}

func TestDeliverBatch_RetriesFailuresUpToCap(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	profileID := createProfile(t, db, "dana@example.com", "Dana")
	id := seedNotification(t, db, profileID, models.ActionOrderCreated)

	sender := &captureSender{fail: true}
	worker := NewNotificationWorker(db, sender)

	// Each failing pass burns one attempt; after the cap the row is parked.
	for i := 0; i < 10; i++ {
		worker.DeliverBatch()
	}

	var n models.Notification
	require.NoError(t, db.First(&n, "id = ?", id).Error)
	assert.Equal(t, 5, n.DeliveryAttempts)
	assert.Nil(t, n.DeliveredAt)
	assert.Empty(t, sender.sent)
}

func TestDeliverBatch_RecoversAfterOutage(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	profileID := createProfile(t, db, "dana@example.com", "Dana")
	seedNotification(t, db, profileID, models.ActionPayoutPaid)

	sender := &captureSender{fail: true}
	worker := NewNotificationWorker(db, sender)
	worker.DeliverBatch()
	worker.DeliverBatch()

	sender.fail = false
	worker.DeliverBatch()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Your payout is on its way", sender.sent[0].subject)

	var n models.Notification
	require.NoError(t, db.First(&n, "notifier_profile_id = ?", profileID).Error)
	assert.NotNil(t, n.DeliveredAt)
	assert.Equal(t, 3, n.DeliveryAttempts)
}
