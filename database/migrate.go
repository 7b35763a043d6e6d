package database

import (
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/models"
)

// AutoMigrate creates or updates the schema for every model. Order matters
// for the foreign keys.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Job{},
		&models.JobApplication{},
		&models.Order{},
		&models.Review{},
		&models.Invoice{},
		&models.Payout{},
		&models.Message{},
		&models.Notification{},
	)
}
