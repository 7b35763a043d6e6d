package repositories

import (
	"time"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"

	"gorm.io/gorm"
)

type PayoutRepository struct{}

func NewPayoutRepository() *PayoutRepository {
	return &PayoutRepository{}
}

func (r *PayoutRepository) Create(db *gorm.DB, payout *models.Payout) error {
	return db.Create(payout).Error
}

func (r *PayoutRepository) FindByID(db *gorm.DB, id string) (*models.Payout, error) {
	var payout models.Payout
	if err := db.First(&payout, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payout, nil
}

// ListUnpaidBefore returns a profile's unpaid payouts created before the
// cutoff ("available" bucket when cutoff is the start of the current month).
func (r *PayoutRepository) ListUnpaidBefore(db *gorm.DB, profileID string, cutoff time.Time) ([]models.Payout, error) {
	var payouts []models.Payout
	err := db.
		Where("profile_id = ? AND paid = ? AND created_at < ?", profileID, false, cutoff).
		Order("created_at DESC, id DESC").
		Find(&payouts).Error
	return payouts, err
}

// ListUnpaidSince returns a profile's unpaid payouts created at or after the
// cutoff (the current-month "pending" bucket).
func (r *PayoutRepository) ListUnpaidSince(db *gorm.DB, profileID string, cutoff time.Time) ([]models.Payout, error) {
	var payouts []models.Payout
	err := db.
		Where("profile_id = ? AND paid = ? AND created_at >= ?", profileID, false, cutoff).
		Order("created_at DESC, id DESC").
		Find(&payouts).Error
	return payouts, err
}

func (r *PayoutRepository) ListPaid(db *gorm.DB, profileID string) ([]models.Payout, error) {
	var payouts []models.Payout
	err := db.
		Where("profile_id = ? AND paid = ?", profileID, true).
		Order("created_at DESC, id DESC").
		Find(&payouts).Error
	return payouts, err
}

// MarkPaid settles a payout row exactly once; a row that is already paid is
// reported as such so a concurrent run does not emit a second notification.
func (r *PayoutRepository) MarkPaid(db *gorm.DB, id string, at time.Time) error {
	result := db.Model(&models.Payout{}).
		Where("id = ? AND paid = ?", id, false).
		Updates(map[string]interface{}{"paid": true, "paid_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPayoutAlreadyPaid
	}
	return nil
}

// ListPayableBefore feeds the monthly payout run across all profiles.
func (r *PayoutRepository) ListPayableBefore(db *gorm.DB, cutoff time.Time, limit int) ([]models.Payout, error) {
	var payouts []models.Payout
	err := db.
		Where("paid = ? AND created_at < ?", false, cutoff).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&payouts).Error
	return payouts, err
}
