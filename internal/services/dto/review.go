package dto

import "time"

type CreateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" validate:"max=2000"`
}

type ReviewResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	AuthorProfileID string    `json:"author_profile_id"`
	AuthorName      string    `json:"author_name,omitempty"`
	TargetProfileID string    `json:"target_profile_id"`
	Rating          int       `json:"rating"`
	ReviewText      string    `json:"review_text,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
