package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

func TestCreateReview_RequiresConfirmedOrder(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	_, err := c.Review.CreateReview(db, f.order.ID, f.brandUserID, &dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrOrderNotConfirmed)

	driveToDelivered(t, db, c, f)
	_, err = c.Review.CreateReview(db, f.order.ID, f.brandUserID, &dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrOrderNotConfirmed)
}

func TestCreateReview_ClosesOrderAndOpensPayout(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	driveToDelivered(t, db, c, f)
	_, err := c.Order.ConfirmOrder(db, f.order.ID, f.brandUserID)
	require.NoError(t, err)

	review, err := c.Review.CreateReview(db, f.order.ID, f.brandUserID, &dto.CreateReviewRequest{
		Rating:     4,
		ReviewText: "Posts went out on schedule, great reach",
	})
	require.NoError(t, err)
	assert.Equal(t, f.brandProfile, review.AuthorProfileID)
	assert.Equal(t, f.infProfile, review.TargetProfileID)
	assert.Equal(t, 4, review.Rating)

	order, err := c.Order.GetOrder(db, f.order.ID, f.brandUserID)
	require.NoError(t, err)
	assert.Equal(t, "reviewed", order.OrderStatus)

	// The payout row carries the invoice's net amount.
	var payout models.Payout
	require.NoError(t, db.First(&payout, "order_id = ?", f.order.ID).Error)
	assert.Equal(t, f.infProfile, payout.ProfileID)
	assert.Equal(t, int64(45_000), payout.AmountCents)
	assert.False(t, payout.Paid)

	assert.Equal(t, int64(1), countNotifications(t, db, f.infProfile, models.ActionOrderReviewed))
}

func TestCreateReview_OncePerOrder(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	driveToDelivered(t, db, c, f)
	_, err := c.Order.ConfirmOrder(db, f.order.ID, f.brandUserID)
	require.NoError(t, err)

	_, err = c.Review.CreateReview(db, f.order.ID, f.brandUserID, &dto.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	_, err = c.Review.CreateReview(db, f.order.ID, f.brandUserID, &dto.CreateReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, apperrors.ErrReviewAlreadyExists)
}

func TestCreateReview_OnlyBuyer(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	driveToDelivered(t, db, c, f)
	_, err := c.Order.ConfirmOrder(db, f.order.ID, f.brandUserID)
	require.NoError(t, err)

	_, err = c.Review.CreateReview(db, f.order.ID, f.infUserID, &dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrNotOrderParty)
}

func TestListForProfile_TotalsAndAverage(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	infID, infProfileID := createUserWithProfile(t, db, models.UserRoleInfluencer, "Dana")

	// Two separate buyers review the same influencer.
	ratings := []int{5, 2}
	names := []string{"Acme", "Globex"}
	for i, rating := range ratings {
		brandID, _ := createUserWithProfile(t, db, models.UserRoleBrand, names[i])
		job := createPublishedJob(t, db, c, brandID, 1)
		require.NoError(t, c.Job.Apply(db, job.ID, infID, nil))
		require.NoError(t, c.Job.AcceptApplicant(db, job.ID, infProfileID, brandID))

		order, err := c.Order.CreateOrder(db, brandID, &dto.CreateOrderRequest{
			InfluencerProfileID: infProfileID,
			JobID:               &job.ID,
			Platform:            "instagram",
			ContentQuantities:   map[string]int{"post": 1},
			BasePriceCents:      10_000,
		})
		require.NoError(t, err)

		g := &orderFixture{brandUserID: brandID, infUserID: infID, infProfile: infProfileID, order: order}
		driveToDelivered(t, db, c, g)
		_, err = c.Order.ConfirmOrder(db, order.ID, brandID)
		require.NoError(t, err)
		_, err = c.Review.CreateReview(db, order.ID, brandID, &dto.CreateReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	reviews, total, rating, next, err := c.Review.ListForProfile(db, infProfileID, "", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, reviews, 2)
	assert.InDelta(t, 3.5, rating, 0.001)
	assert.Empty(t, next)
}
