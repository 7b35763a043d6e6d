package dto

import "time"

type PlatformHandle struct {
	Platform  string `json:"platform" validate:"required,platform"`
	Handle    string `json:"handle" validate:"required"`
	Followers int    `json:"followers" validate:"min=0"`
}

type CreateProfileRequest struct {
	Name       string           `json:"name" validate:"required,min=2,max=120"`
	About      string           `json:"about" validate:"max=2000"`
	City       string           `json:"city"`
	Country    string           `json:"country"`
	Website    string           `json:"website" validate:"omitempty,url"`
	PictureURL string           `json:"picture_url" validate:"omitempty,url"`
	Categories []string         `json:"categories"`
	Platforms  []PlatformHandle `json:"platforms" validate:"dive"`
}

type UpdateProfileRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=2,max=120"`
	About      *string          `json:"about" validate:"omitempty,max=2000"`
	City       *string          `json:"city"`
	Country    *string          `json:"country"`
	Website    *string          `json:"website" validate:"omitempty,url"`
	PictureURL *string          `json:"picture_url" validate:"omitempty,url"`
	Categories []string         `json:"categories"`
	Platforms  []PlatformHandle `json:"platforms" validate:"omitempty,dive"`
}

type ProfileResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	About      string           `json:"about,omitempty"`
	City       string           `json:"city,omitempty"`
	Country    string           `json:"country,omitempty"`
	Website    string           `json:"website,omitempty"`
	PictureURL string           `json:"picture_url,omitempty"`
	Categories []string         `json:"categories,omitempty"`
	Platforms  []PlatformHandle `json:"platforms,omitempty"`
	Rating     float64          `json:"rating"`
	CreatedAt  time.Time        `json:"created_at"`
}

type BrowseProfilesRequest struct {
	Role     string `form:"role" validate:"omitempty,oneof=brand influencer"`
	City     string `form:"city"`
	Country  string `form:"country"`
	Category string `form:"category"`
	Platform string `form:"platform" validate:"omitempty,platform"`
	Cursor   string `form:"cursor"`
	Limit    int    `form:"limit"`
}
