package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/relense/influencer-markt-sub001/database"
	"github.com/relense/influencer-markt-sub001/internal/config"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/payments"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

// newTestDB opens an isolated in-memory sqlite database migrated to the full
// schema. The single-connection pool keeps the shared-cache db alive for the
// whole test.
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

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Billing.TaxRateBps = 2300
	cfg.Billing.ServiceFeeBps = 1000
	return cfg
}

func newTestContainer() *ServiceContainer {
	return NewServiceContainer(testConfig(), payments.NewLoggingGateway())
}

// createUserWithProfile seeds a user in the given role plus its profile and
// returns both ids.
func createUserWithProfile(t *testing.T, db *gorm.DB, role models.UserRole, name string) (userID, profileID string) {
	t.Helper()

	user := &models.User{
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "$2a$10$notaverysecrethash",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.Profile{
		UserID: user.ID,
		Name:   name,
	}
	require.NoError(t, db.Create(profile).Error)

	return user.ID, profile.ID
}

func createPublishedJob(t *testing.T, db *gorm.DB, c *ServiceContainer, brandUserID string, slots int) *dto.JobResponse {
	t.Helper()

	job, err := c.Job.CreateJob(db, brandUserID, &dto.CreateJobRequest{
		Summary:             "Instagram push for spring collection",
		Details:             "Three posts and a story over two weeks",
		Platform:            "instagram",
		ContentQuantities:   map[string]int{"post": 3, "story": 1},
		Categories:          []string{"fashion"},
		PriceCents:          50_000,
		NumberOfInfluencers: slots,
	})
	require.NoError(t, err)

	published, err := c.Job.PublishJob(db, job.ID, brandUserID)
	require.NoError(t, err)
	return published
}

// assertErrorCode unwraps the application error and checks its code. Used for
// errors built by factories rather than the predeclared sentinels.
func assertErrorCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func countNotifications(t *testing.T, db *gorm.DB, profileID, action string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("notifier_profile_id = ? AND action = ?", profileID, action).
		Count(&count).Error)
	return count
}
