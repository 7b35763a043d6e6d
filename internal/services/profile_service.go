package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"
)

type ProfileService struct {
	profileRepo *repositories.ProfileRepository
	userRepo    *repositories.UserRepository
	reviewRepo  *repositories.ReviewRepository
}

func NewProfileService(profileRepo *repositories.ProfileRepository, userRepo *repositories.UserRepository, reviewRepo *repositories.ReviewRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo, reviewRepo: reviewRepo}
}

func (s *ProfileService) CreateProfile(db *gorm.DB, userID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if _, err := s.profileRepo.FindByUserID(db, userID); err == nil {
		return nil, apperrors.ErrAlreadyExists(errors.New("profile already exists for this user"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile := &models.Profile{
		UserID:     userID,
		Name:       req.Name,
		About:      req.About,
		City:       req.City,
		Country:    req.Country,
		Website:    req.Website,
		PictureURL: req.PictureURL,
	}
	var err error
	if profile.Categories, err = toJSON(req.Categories); err != nil {
		return nil, err
	}
	if profile.Platforms, err = toJSON(req.Platforms); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Create(db, profile); err != nil {
		return nil, err
	}
	return s.toResponse(db, profile)
}

func (s *ProfileService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.About != nil {
		profile.About = *req.About
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Country != nil {
		profile.Country = *req.Country
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.PictureURL != nil {
		profile.PictureURL = *req.PictureURL
	}
	if req.Categories != nil {
		if profile.Categories, err = toJSON(req.Categories); err != nil {
			return nil, err
		}
	}
	if req.Platforms != nil {
		if profile.Platforms, err = toJSON(req.Platforms); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Update(db, profile); err != nil {
		return nil, err
	}
	return s.toResponse(db, profile)
}

func (s *ProfileService) GetProfile(db *gorm.DB, profileID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(db, profileID)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return s.toResponse(db, profile)
}

func (s *ProfileService) GetMyProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(db, profile)
}

func (s *ProfileService) Browse(db *gorm.DB, req *dto.BrowseProfilesRequest) ([]dto.ProfileResponse, int64, string, error) {
	cursor, err := pagination.Decode(req.Cursor)
	if err != nil {
		return nil, 0, "", err
	}
	limit := pagination.ClampLimit(req.Limit)

	criteria := repositories.ProfileBrowseCriteria{
		Role:     models.UserRole(req.Role),
		City:     req.City,
		Country:  req.Country,
		Category: req.Category,
		Platform: req.Platform,
	}
	profiles, total, err := s.profileRepo.Browse(db, criteria, cursor, limit)
	if err != nil {
		return nil, 0, "", err
	}

	out := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp, err := s.toResponse(db, &profiles[i])
		if err != nil {
			return nil, 0, "", err
		}
		out = append(out, *resp)
	}

	next := ""
	if len(profiles) == limit {
		last := profiles[len(profiles)-1]
		next = pagination.Encode(last.CreatedAt, last.ID)
	}
	return out, total, next, nil
}

func (s *ProfileService) toResponse(db *gorm.DB, profile *models.Profile) (*dto.ProfileResponse, error) {
	resp := &dto.ProfileResponse{
		ID:         profile.ID,
		Name:       profile.Name,
		About:      profile.About,
		City:       profile.City,
		Country:    profile.Country,
		Website:    profile.Website,
		PictureURL: profile.PictureURL,
		CreatedAt:  profile.CreatedAt,
	}
	if err := fromJSON(profile.Categories, &resp.Categories); err != nil {
		return nil, err
	}
	if err := fromJSON(profile.Platforms, &resp.Platforms); err != nil {
		return nil, err
	}

	rating, err := s.reviewRepo.AverageRating(db, profile.ID)
	if err != nil {
		return nil, err
	}
	resp.Rating = rating
	return resp, nil
}

func toJSON(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func fromJSON(raw datatypes.JSON, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
