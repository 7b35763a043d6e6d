package repositories

import (
	"time"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"

	"gorm.io/gorm"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepository) ListByNotifier(db *gorm.DB, notifierProfileID string, cursor *pagination.Cursor, limit int) ([]models.Notification, int64, error) {
	query := db.Model(&models.Notification{}).Where("notifier_profile_id = ?", notifierProfileID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := query.
		Scopes(pagination.Scope(cursor), pagination.OrderNewestFirst).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *NotificationRepository) CountUnread(db *gorm.DB, notifierProfileID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("notifier_profile_id = ? AND is_read = ?", notifierProfileID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkRead(db *gorm.DB, id, notifierProfileID string) error {
	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("id = ? AND notifier_profile_id = ?", id, notifierProfileID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(db *gorm.DB, notifierProfileID string) error {
	now := time.Now()
	return db.Model(&models.Notification{}).
		Where("notifier_profile_id = ? AND is_read = ?", notifierProfileID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

// FindUndelivered returns outbox rows the worker still has to send.
func (r *NotificationRepository) FindUndelivered(db *gorm.DB, maxAttempts, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.
		Where("delivered_at IS NULL AND delivery_attempts < ?", maxAttempts).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) MarkDelivered(db *gorm.DB, id string) error {
	now := time.Now()
	return db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("delivered_at", now).Error
}

func (r *NotificationRepository) RecordDeliveryAttempt(db *gorm.DB, id string) error {
	return db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("delivery_attempts", gorm.Expr("delivery_attempts + 1")).Error
}
