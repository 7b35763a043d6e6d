package repositories

import (
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"

	"gorm.io/gorm"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(db *gorm.DB, order *models.Order) error {
	return db.Create(order).Error
}

func (r *OrderRepository) Save(db *gorm.DB, order *models.Order) error {
	return db.Save(order).Error
}

func (r *OrderRepository) FindByID(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Buyer").Preload("Influencer").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByProfile pages over orders where the profile is either party,
// optionally filtered by status.
func (r *OrderRepository) ListByProfile(db *gorm.DB, profileID string, status models.OrderStatus, cursor *pagination.Cursor, limit int) ([]models.Order, int64, error) {
	query := db.Model(&models.Order{}).
		Where("buyer_profile_id = ? OR influencer_profile_id = ?", profileID, profileID)

	if status != 0 {
		query = query.Where("order_status_id = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.
		Preload("Buyer").
		Preload("Influencer").
		Scopes(pagination.Scope(cursor), pagination.OrderNewestFirst).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
