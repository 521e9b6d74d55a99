package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"softbarter/internal/models"
	"softbarter/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration and login
type AuthService struct {
	repo *repository.Repository
}

// NewAuthService creates a new AuthService
func NewAuthService(repo *repository.Repository) *AuthService {
	return &AuthService{repo: repo}
}

// Register creates a new account with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already in use", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Bio:          req.Bio,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("New user registered: %s (ID: %d)", user.Email, user.ID)

	return user, nil
}

// Login verifies credentials and returns the user. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrValidation)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrValidation)
	}

	return user, nil
}
