package repositories

import (
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"

	"gorm.io/gorm"
)

type MessageRepository struct{}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

// ListByOrder pages backward from the most recent message.
func (r *MessageRepository) ListByOrder(db *gorm.DB, orderID string, cursor *pagination.Cursor, limit int) ([]models.Message, int64, error) {
	query := db.Model(&models.Message{}).Where("order_id = ?", orderID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := query.
		Scopes(pagination.Scope(cursor), pagination.OrderNewestFirst).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
