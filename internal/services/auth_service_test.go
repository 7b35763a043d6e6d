package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relense/influencer-markt-sub001/internal/auth"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

func TestMain(m *testing.M) {
	auth.InitJWT("test-secret", 60)
	os.Exit(m.Run())
}

func TestRegister_NormalizesEmailAndIssuesToken(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	resp, err := c.Auth.Register(db, &dto.RegisterRequest{
		Email:    "  Dana@Example.COM ",
		Password: "correct-horse",
		Role:     "influencer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "influencer", resp.Role)

	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)

	// The normalized address is what lands in the table.
	login, err := c.Auth.Login(db, &dto.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, login.UserID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	req := &dto.RegisterRequest{Email: "dana@example.com", Password: "correct-horse", Role: "influencer"}
	_, err := c.Auth.Register(db, req)
	require.NoError(t, err)

	_, err = c.Auth.Register(db, &dto.RegisterRequest{Email: "DANA@example.com", Password: "other-password", Role: "brand"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin_WrongCredentials(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	_, err := c.Auth.Register(db, &dto.RegisterRequest{Email: "dana@example.com", Password: "correct-horse", Role: "influencer"})
	require.NoError(t, err)

	_, err = c.Auth.Login(db, &dto.LoginRequest{Email: "dana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown address gets the same answer as a bad password.
	_, err = c.Auth.Login(db, &dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_IncludesProfileID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()

	reg, err := c.Auth.Register(db, &dto.RegisterRequest{Email: "dana@example.com", Password: "correct-horse", Role: "influencer"})
	require.NoError(t, err)

	// No profile yet.
	login, err := c.Auth.Login(db, &dto.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Empty(t, login.ProfileID)

	created, err := c.Profile.CreateProfile(db, reg.UserID, &dto.CreateProfileRequest{Name: "Dana"})
	require.NoError(t, err)

	login, err = c.Auth.Login(db, &dto.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, login.ProfileID)
}
