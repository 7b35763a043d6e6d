package dto

import "time"

type CreateJobRequest struct {
	Summary             string         `json:"summary" validate:"required,min=3,max=200"`
	Details             string         `json:"details" validate:"max=5000"`
	Platform            string         `json:"platform" validate:"required,platform"`
	ContentQuantities   map[string]int `json:"content_quantities" validate:"required,min=1"`
	Categories          []string       `json:"categories"`
	PriceCents          int64          `json:"price_cents" validate:"required,min=1"`
	NumberOfInfluencers int            `json:"number_of_influencers" validate:"required,min=1"`
	Country             string         `json:"country"`
	City                string         `json:"city"`
	Gender              string         `json:"gender" validate:"omitempty,oneof=female male other"`
	MinFollowers        int            `json:"min_followers" validate:"min=0"`
}

type UpdateJobRequest struct {
	Summary             *string        `json:"summary" validate:"omitempty,min=3,max=200"`
	Details             *string        `json:"details" validate:"omitempty,max=5000"`
	Platform            *string        `json:"platform" validate:"omitempty,platform"`
	ContentQuantities   map[string]int `json:"content_quantities" validate:"omitempty,min=1"`
	Categories          []string       `json:"categories"`
	PriceCents          *int64         `json:"price_cents" validate:"omitempty,min=1"`
	NumberOfInfluencers *int           `json:"number_of_influencers" validate:"omitempty,min=1"`
	Country             *string        `json:"country"`
	City                *string        `json:"city"`
	Gender              *string        `json:"gender" validate:"omitempty,oneof=female male other"`
	MinFollowers        *int           `json:"min_followers" validate:"omitempty,min=0"`
}

type JobResponse struct {
	ID                  string         `json:"id"`
	ProfileID           string         `json:"profile_id"`
	ProfileName         string         `json:"profile_name,omitempty"`
	Summary             string         `json:"summary"`
	Details             string         `json:"details,omitempty"`
	Platform            string         `json:"platform"`
	ContentQuantities   map[string]int `json:"content_quantities"`
	Categories          []string       `json:"categories,omitempty"`
	PriceCents          int64          `json:"price_cents"`
	NumberOfInfluencers int            `json:"number_of_influencers"`
	Country             string         `json:"country,omitempty"`
	City                string         `json:"city,omitempty"`
	Gender              string         `json:"gender,omitempty"`
	MinFollowers        int            `json:"min_followers,omitempty"`
	Published           bool           `json:"published"`
	StatusID            int            `json:"status_id"`
	Status              string         `json:"status"`
	CreatedAt           time.Time      `json:"created_at"`

	Stats *JobStatsResponse `json:"stats,omitempty"`
}

type JobStatsResponse struct {
	Applied  int64 `json:"applied"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
	Sent     int64 `json:"sent"`
}

type BrowseJobsRequest struct {
	Platform      string `form:"platform" validate:"omitempty,platform"`
	Category      string `form:"category"`
	Country       string `form:"country"`
	City          string `form:"city"`
	Gender        string `form:"gender" validate:"omitempty,oneof=female male other"`
	MinPriceCents int64  `form:"min_price_cents"`
	MaxPriceCents int64  `form:"max_price_cents"`
	Cursor        string `form:"cursor"`
	Limit         int    `form:"limit"`
}

type ApplyRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

// MyApplicationResponse is one row of a candidate's own application history.
type MyApplicationResponse struct {
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	JobSummary    string    `json:"job_summary"`
	Bucket        string    `json:"bucket"`
	OrderID       *string   `json:"order_id,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
}

type ApplicantResponse struct {
	ApplicationID string    `json:"application_id"`
	ProfileID     string    `json:"profile_id"`
	ProfileName   string    `json:"profile_name"`
	Bucket        string    `json:"bucket"`
	OrderID       *string   `json:"order_id,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
}
