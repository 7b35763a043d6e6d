package repositories

import (
	"github.com/relense/influencer-markt-sub001/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository struct{}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

func (r *ApplicationRepository) Create(db *gorm.DB, application *models.JobApplication) error {
	return db.Create(application).Error
}

func (r *ApplicationRepository) Save(db *gorm.DB, application *models.JobApplication) error {
	return db.Save(application).Error
}

func (r *ApplicationRepository) Delete(db *gorm.DB, application *models.JobApplication) error {
	return db.Delete(application).Error
}

func (r *ApplicationRepository) FindByJobAndProfile(db *gorm.DB, jobID, profileID string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := db.First(&application, "job_id = ? AND profile_id = ?", jobID, profileID).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) ListByJobAndBucket(db *gorm.DB, jobID string, bucket models.ApplicationBucket) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := db.
		Preload("Profile").
		Where("job_id = ? AND bucket = ?", jobID, bucket).
		Order("created_at DESC, id DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepository) CountByJobAndBucket(db *gorm.DB, jobID string, bucket models.ApplicationBucket) (int64, error) {
	var count int64
	err := db.Model(&models.JobApplication{}).
		Where("job_id = ? AND bucket = ?", jobID, bucket).
		Count(&count).Error
	return count, err
}

// ListByProfile returns a candidate's applications across postings.
func (r *ApplicationRepository) ListByProfile(db *gorm.DB, profileID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := db.
		Preload("Job").
		Where("profile_id = ?", profileID).
		Order("created_at DESC, id DESC").
		Find(&applications).Error
	return applications, err
}
