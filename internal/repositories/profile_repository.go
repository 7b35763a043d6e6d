package repositories

import (
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"

	"gorm.io/gorm"
)

// ProfileBrowseCriteria filters the public profile listing.
type ProfileBrowseCriteria struct {
	Role     models.UserRole
	City     string
	Country  string
	Category string
	Platform string
}

type ProfileRepository struct{}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

func (r *ProfileRepository) Create(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepository) Update(db *gorm.DB, profile *models.Profile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepository) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Preload("User").First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Browse returns the total match count and one page, newest first.
func (r *ProfileRepository) Browse(db *gorm.DB, criteria ProfileBrowseCriteria, cursor *pagination.Cursor, limit int) ([]models.Profile, int64, error) {
	query := db.Model(&models.Profile{})

	if criteria.Role != "" {
		query = query.Where(
			"user_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&models.User{}).Select("id").Where("role = ?", criteria.Role),
		)
	}
	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}
	if criteria.Country != "" {
		query = query.Where("country = ?", criteria.Country)
	}
	if criteria.Category != "" {
		query = query.Where("categories LIKE ?", "%"+criteria.Category+"%")
	}
	if criteria.Platform != "" {
		query = query.Where("platforms LIKE ?", "%"+criteria.Platform+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.Profile
	err := query.
		Scopes(pagination.Scope(cursor), pagination.OrderNewestFirst).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}
