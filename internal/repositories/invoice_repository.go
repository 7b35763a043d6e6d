package repositories

import (
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"

	"gorm.io/gorm"
)

type InvoiceRepository struct{}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{}
}

func (r *InvoiceRepository) Create(db *gorm.DB, invoice *models.Invoice) error {
	return db.Create(invoice).Error
}

func (r *InvoiceRepository) FindByOrderID(db *gorm.DB, orderID string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := db.First(&invoice, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) ListByProfile(db *gorm.DB, profileID string, cursor *pagination.Cursor, limit int) ([]models.Invoice, int64, error) {
	query := db.Model(&models.Invoice{}).Where("profile_id = ?", profileID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []models.Invoice
	err := query.
		Scopes(pagination.Scope(cursor), pagination.OrderNewestFirst).
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}
