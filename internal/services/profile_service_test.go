package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

func TestCreateProfile_OncePerUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	reg, err := c.Auth.Register(db, &dto.RegisterRequest{Email: "dana@example.com", Password: "correct-horse", Role: "influencer"})
	require.NoError(t, err)

	created, err := c.Profile.CreateProfile(db, reg.UserID, &dto.CreateProfileRequest{
		Name:       "Dana",
		About:      "Travel and food content",
		City:       "Lisbon",
		Country:    "PT",
		Categories: []string{"travel", "food"},
		Platforms: []dto.PlatformHandle{
			{Platform: "instagram", Handle: "@dana", Followers: 12000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana", created.Name)
	assert.Equal(t, []string{"travel", "food"}, created.Categories)
	require.Len(t, created.Platforms, 1)
	assert.Equal(t, 12000, created.Platforms[0].Followers)

	_, err = c.Profile.CreateProfile(db, reg.UserID, &dto.CreateProfileRequest{Name: "Dana Again"})
	assertErrorCode(t, err, apperrors.CodeAlreadyExists)
}

func TestUpdateProfile_PartialMerge(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	reg, err := c.Auth.Register(db, &dto.RegisterRequest{Email: "dana@example.com", Password: "correct-horse", Role: "influencer"})
	require.NoError(t, err)
	_, err = c.Profile.CreateProfile(db, reg.UserID, &dto.CreateProfileRequest{
		Name:  "Dana",
		About: "Travel content",
		City:  "Lisbon",
	})
	require.NoError(t, err)

	newCity := "Porto"
	updated, err := c.Profile.UpdateProfile(db, reg.UserID, &dto.UpdateProfileRequest{City: &newCity})
	require.NoError(t, err)

	// Untouched fields survive the partial update.
	assert.Equal(t, "Porto", updated.City)
	assert.Equal(t, "Dana", updated.Name)
	assert.Equal(t, "Travel content", updated.About)
}

func TestUpdateProfile_RequiresProfile(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	reg, err := c.Auth.Register(db, &dto.RegisterRequest{Email: "dana@example.com", Password: "correct-horse", Role: "influencer"})
	require.NoError(t, err)

	name := "Dana"
	_, err = c.Profile.UpdateProfile(db, reg.UserID, &dto.UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrProfileRequired)
}

func TestGetProfile_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	_, err := c.Profile.GetProfile(db, "missing-id")
	assertErrorCode(t, err, apperrors.CodeNotFound)
}

func TestBrowseProfiles_Filters(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	seed := []struct {
		role     string
		city     string
		cats     []string
		platform string
	}{
		{"influencer", "Lisbon", []string{"travel"}, "instagram"},
		{"influencer", "Porto", []string{"fashion"}, "tiktok"},
		{"brand", "Lisbon", nil, ""},
	}
	for i, s := range seed {
		reg, err := c.Auth.Register(db, &dto.RegisterRequest{
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: "correct-horse",
			Role:     s.role,
		})
		require.NoError(t, err)

		req := &dto.CreateProfileRequest{Name: fmt.Sprintf("Profile %d", i), City: s.city, Categories: s.cats}
		if s.platform != "" {
			req.Platforms = []dto.PlatformHandle{{Platform: s.platform, Handle: "@h", Followers: 10}}
		}
		_, err = c.Profile.CreateProfile(db, reg.UserID, req)
		require.NoError(t, err)
	}

	influencers, total, _, err := c.Profile.Browse(db, &dto.BrowseProfilesRequest{Role: "influencer"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, influencers, 2)

	lisbon, total, _, err := c.Profile.Browse(db, &dto.BrowseProfilesRequest{City: "Lisbon"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, lisbon, 2)

	travel, total, _, err := c.Profile.Browse(db, &dto.BrowseProfilesRequest{Category: "travel"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, travel, 1)
	assert.Equal(t, "Profile 0", travel[0].Name)

	tiktok, _, _, err := c.Profile.Browse(db, &dto.BrowseProfilesRequest{Platform: "tiktok"})
	require.NoError(t, err)
	require.Len(t, tiktok, 1)
	assert.Equal(t, "Profile 1", tiktok[0].Name)
}

func TestProfileRating_FollowsReviews(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	before, err := c.Profile.GetProfile(db, f.infProfile)
	require.NoError(t, err)
	assert.Zero(t, before.Rating)

	driveToDelivered(t, db, c, f)
	_, err = c.Order.ConfirmOrder(db, f.order.ID, f.brandUserID)
	require.NoError(t, err)
	_, err = c.Review.CreateReview(db, f.order.ID, f.brandUserID, &dto.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	after, err := c.Profile.GetProfile(db, f.infProfile)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, after.Rating, 0.001)
}
