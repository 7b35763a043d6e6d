package repositories

import (
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"

	"gorm.io/gorm"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *ReviewRepository) FindByOrderID(db *gorm.DB, orderID string) (*models.Review, error) {
	var review models.Review
	if err := db.First(&review, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ListByTarget(db *gorm.DB, targetProfileID string, cursor *pagination.Cursor, limit int) ([]models.Review, int64, error) {
	query := db.Model(&models.Review{}).Where("target_profile_id = ?", targetProfileID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.
		Preload("Author").
		Scopes(pagination.Scope(cursor), pagination.OrderNewestFirst).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// AverageRating returns the mean rating for a profile, 0 when unreviewed.
func (r *ReviewRepository) AverageRating(db *gorm.DB, targetProfileID string) (float64, error) {
	var avg *float64
	err := db.Model(&models.Review{}).
		Where("target_profile_id = ?", targetProfileID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
