package repositories

import (
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"

	"gorm.io/gorm"
)

// JobBrowseCriteria filters the public posting listing.
type JobBrowseCriteria struct {
	Platform      string
	Category      string
	Country       string
	City          string
	Gender        string
	MinPriceCents int64
	MaxPriceCents int64
	ProfileID     string
}

type JobRepository struct{}

func NewJobRepository() *JobRepository {
	return &JobRepository{}
}

func (r *JobRepository) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepository) Update(db *gorm.DB, job *models.Job) error {
	return db.Save(job).Error
}

func (r *JobRepository) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	if err := db.Preload("Profile").First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteWithApplications soft-deletes the posting and removes its applicant
// rows in one transaction.
func (r *JobRepository) DeleteWithApplications(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, "id = ?", id).Error
	})
}

func (r *JobRepository) ListByProfile(db *gorm.DB, profileID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.
		Preload("Profile").
		Where("profile_id = ?", profileID).
		Scopes(pagination.OrderNewestFirst).
		Find(&jobs).Error
	return jobs, err
}

// Browse lists open, published postings matching the criteria, newest first.
func (r *JobRepository) Browse(db *gorm.DB, criteria JobBrowseCriteria, cursor *pagination.Cursor, limit int) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{}).
		Where("published = ? AND status_id = ?", true, models.JobStatusOpen)

	if criteria.Platform != "" {
		query = query.Where("platform = ?", criteria.Platform)
	}
	if criteria.Category != "" {
		query = query.Where("categories LIKE ?", "%"+criteria.Category+"%")
	}
	if criteria.Country != "" {
		query = query.Where("country = ?", criteria.Country)
	}
	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}
	if criteria.Gender != "" {
		query = query.Where("gender = ? OR gender = ''", criteria.Gender)
	}
	if criteria.MinPriceCents > 0 {
		query = query.Where("price_cents >= ?", criteria.MinPriceCents)
	}
	if criteria.MaxPriceCents > 0 {
		query = query.Where("price_cents <= ?", criteria.MaxPriceCents)
	}
	if criteria.ProfileID != "" {
		query = query.Where("profile_id = ?", criteria.ProfileID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.
		Preload("Profile").
		Scopes(pagination.Scope(cursor), pagination.OrderNewestFirst).
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}
