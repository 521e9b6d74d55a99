package services

import (
	"context"
	"errors"
	"fmt"

	"softbarter/internal/models"
	"softbarter/internal/repository"

	"gorm.io/gorm"
)

// UserService handles user profile lookups
type UserService struct {
	repo *repository.Repository
}

// NewUserService creates a new UserService
func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// GetProfile retrieves a user's public profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}
