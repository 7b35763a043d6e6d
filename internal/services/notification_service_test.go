package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

func TestNotifications_ListAndUnreadCount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	// The fixture already produced order_created for the influencer.
	_, err := c.Order.AcceptOrder(db, f.order.ID, f.infUserID)
	require.NoError(t, err)

	rows, total, _, err := c.Notification.List(db, f.infProfile, "", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total) // applicant_accepted + order_created
	assert.Len(t, rows, 2)
	assert.False(t, rows[0].IsRead)

	unread, err := c.Notification.CountUnread(db, f.infProfile)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
}

func TestNotifications_MarkRead(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	rows, _, _, err := c.Notification.List(db, f.infProfile, "", 10)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	require.NoError(t, c.Notification.MarkRead(db, rows[0].ID, f.infProfile))

	rows, _, _, err = c.Notification.List(db, f.infProfile, "", 10)
	require.NoError(t, err)
	assert.True(t, rows[0].IsRead)
	assert.NotNil(t, rows[0].ReadAt)

	// Marking somebody else's notification is a not-found, not a silent no-op.
	err = c.Notification.MarkRead(db, rows[0].ID, f.brandProfile)
	assertErrorCode(t, err, apperrors.CodeNotFound)
}

func TestNotifications_MarkAllRead(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	_, err := c.Order.AcceptOrder(db, f.order.ID, f.infUserID)
	require.NoError(t, err)

	require.NoError(t, c.Notification.MarkAllRead(db, f.infProfile))

	unread, err := c.Notification.CountUnread(db, f.infProfile)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// Outbox delivery state is untouched by read state.
	var undelivered int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("notifier_profile_id = ? AND delivered_at IS NULL", f.infProfile).
		Count(&undelivered).Error)
	assert.Equal(t, int64(2), undelivered)
}
