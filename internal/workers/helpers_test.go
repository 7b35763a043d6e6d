package workers

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/relense/influencer-markt-sub001/database"
	"github.com/relense/influencer-markt-sub001/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createProfile(t *testing.T, db *gorm.DB, email, name string) string {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "x", Role: models.UserRoleInfluencer}
	require.NoError(t, db.Create(user).Error)
	profile := &models.Profile{UserID: user.ID, Name: name}
	require.NoError(t, db.Create(profile).Error)
	return profile.ID
}

// captureSender records sent emails and can be flipped into failure mode.
type captureSender struct {
	sent []sentEmail
	fail bool
}

type sentEmail struct {
	to      string
	subject string
}

func (s *captureSender) Send(to, subject, _ string) error {
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, sentEmail{to: to, subject: subject})
	return nil
}

// capturePayoutSender records transfers and can be flipped into failure mode.
type capturePayoutSender struct {
	transfers map[string]int64
	fail      bool
}

func (s *capturePayoutSender) SendPayout(profileID string, amountCents int64) error {
	if s.fail {
		return errors.New("transfer refused")
	}
	if s.transfers == nil {
		s.transfers = make(map[string]int64)
	}
	s.transfers[profileID] += amountCents
	return nil
}
