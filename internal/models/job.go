package models

import (
	"gorm.io/datatypes"
)

// Job is a posting created by a brand profile. It starts unpublished with
// status open; only open, published postings accept applicants. Deleted
// postings are soft-deleted so orders that originated from them keep a
// resolvable job id.
type Job struct {
	BaseModelWithDeleted
	ProfileID           string `gorm:"not null;index"`
	Summary             string `gorm:"not null"`
	Details             string
	Platform            string         `gorm:"not null"`
	ContentQuantities   datatypes.JSON `gorm:"type:jsonb"` // {"post": 2, "story": 1}
	Categories          datatypes.JSON `gorm:"type:jsonb"`
	PriceCents          int64          `gorm:"not null"`
	NumberOfInfluencers int            `gorm:"not null;default:1"`
	Country             string
	City                string
	Gender              string
	MinFollowers        int
	Published           bool      `gorm:"not null;default:false"`
	StatusID            JobStatus `gorm:"not null;default:1"`

	Profile      Profile          `gorm:"foreignKey:ProfileID"`
	Applications []JobApplication `gorm:"foreignKey:JobID"`
}

// JobApplication is the join between a posting and a candidate profile. The
// unique index keeps a profile in at most one bucket per posting; sent rows
// carry the order the acceptance produced.
type JobApplication struct {
	BaseModel
	JobID     string            `gorm:"not null;uniqueIndex:idx_job_applicant"`
	ProfileID string            `gorm:"not null;uniqueIndex:idx_job_applicant"`
	Bucket    ApplicationBucket `gorm:"not null;default:'applied'"`
	OrderID   *string

	Job     Job     `gorm:"foreignKey:JobID"`
	Profile Profile `gorm:"foreignKey:ProfileID"`
	Order   *Order  `gorm:"foreignKey:OrderID"`
}
