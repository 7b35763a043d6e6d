package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

// seedPayout inserts an unpaid payout row and backdates it to createdAt.
func seedPayout(t *testing.T, db *gorm.DB, profileID, orderID string, amountCents int64, createdAt time.Time) string {
	t.Helper()

	payout := &models.Payout{
		OrderID:     orderID,
		InvoiceID:   "inv-" + orderID,
		ProfileID:   profileID,
		AmountCents: amountCents,
	}
	require.NoError(t, db.Create(payout).Error)
	require.NoError(t, db.Model(&models.Payout{}).
		Where("id = ?", payout.ID).
		Update("created_at", createdAt).Error)
	return payout.ID
}

func TestListMyPayouts_Buckets(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	infID, infProfileID := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	now := time.Now().UTC()
	thisMonth := monthStart(now).Add(48 * time.Hour)
	lastMonth := monthStart(now).AddDate(0, -1, 3)
	twoMonthsAgo := monthStart(now).AddDate(0, -2, 3)

	seedPayout(t, db, infProfileID, "order-1", 45_000, thisMonth)
	seedPayout(t, db, infProfileID, "order-2", 30_000, lastMonth)
	paidID := seedPayout(t, db, infProfileID, "order-3", 20_000, twoMonthsAgo)
	require.NoError(t, db.Model(&models.Payout{}).
		Where("id = ?", paidID).
		Updates(map[string]any{"paid": true, "paid_at": now}).Error)

	resp, err := c.Payout.ListMyPayouts(db, infID)
	require.NoError(t, err)

	assert.Equal(t, int64(45_000), resp.PendingCents)
	assert.Equal(t, int64(30_000), resp.AvailableCents)
	require.Len(t, resp.Pending, 1)
	require.Len(t, resp.Available, 1)
	require.Len(t, resp.Paid, 1)
	assert.Equal(t, "order-1", resp.Pending[0].OrderID)
	assert.Equal(t, "order-2", resp.Available[0].OrderID)
	assert.True(t, resp.Paid[0].Paid)
	assert.NotNil(t, resp.Paid[0].PaidAt)
}

func TestListMyPayouts_EmptyForFreshProfile(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	infID, _ := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	resp, err := c.Payout.ListMyPayouts(db, infID)
	require.NoError(t, err)
	assert.Zero(t, resp.PendingCents)
	assert.Zero(t, resp.AvailableCents)
	assert.Empty(t, resp.Pending)
	assert.Empty(t, resp.Available)
	assert.Empty(t, resp.Paid)
}

func TestListMyPayouts_RequiresProfile(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	user := &models.User{Email: "noprofile@example.com", PasswordHash: "x", Role: models.UserRoleInfluencer}
	require.NoError(t, db.Create(user).Error)

	_, err := c.Payout.ListMyPayouts(db, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfileRequired)
}

func TestListMyInvoices(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	driveToDelivered(t, db, c, f)
	_, err := c.Order.ConfirmOrder(db, f.order.ID, f.brandUserID)
	require.NoError(t, err)

	invoices, total, next, err := c.Payout.ListMyInvoices(db, f.infUserID, "", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, invoices, 1)
	assert.Equal(t, f.order.ID, invoices[0].OrderID)
	assert.Equal(t, int64(45_000), invoices[0].NetPayoutCents)
	assert.Empty(t, next)

	// The buyer side has no billing history.
	invoices, total, _, err = c.Payout.ListMyInvoices(db, f.brandUserID, "", 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, invoices)
}

func TestMonthStart(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 8, 17, 14, 3, 9, 0, time.FixedZone("CEST", 2*3600))
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), monthStart(in))
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), monthStart(in.UTC()))
}
