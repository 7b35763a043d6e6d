package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/auth"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

type AuthService struct {
	userRepo    *repositories.UserRepository
	profileRepo *repositories.ProfileRepository
}

func NewAuthService(userRepo *repositories.UserRepository, profileRepo *repositories.ProfileRepository) *AuthService {
	return &AuthService{userRepo: userRepo, profileRepo: profileRepo}
}

func (s *AuthService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.FindByEmail(db, email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		UserID:      user.ID,
		Role:        string(user.Role),
	}, nil
}

func (s *AuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	resp := &dto.AuthResponse{
		AccessToken: token,
		UserID:      user.ID,
		Role:        string(user.Role),
	}
	if user.Profile != nil {
		resp.ProfileID = user.Profile.ID
	}
	return resp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// requireProfile resolves the caller's profile; every marketplace operation
// beyond signup needs one.
func requireProfile(db *gorm.DB, profileRepo *repositories.ProfileRepository, userID string) (*models.Profile, error) {
	profile, err := profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileRequired
		}
		return nil, err
	}
	return profile, nil
}
