package services

import (
	"context"
	"errors"
	"testing"

	"softbarter/internal/models"
	"softbarter/internal/repository"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(repository.NewRepository(db))
	ctx := context.Background()

	user, err := service.Register(ctx, &models.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected registered user to have an ID")
	}
	if user.PasswordHash == "password123" {
		t.Error("password stored in plain text")
	}

	logged, err := service.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, logged.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(repository.NewRepository(db))
	ctx := context.Background()

	createTestUser(t, db, "Alice", "alice@example.com")

	_, err := service.Register(ctx, &models.RegisterRequest{
		Name:     "Impostor",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(repository.NewRepository(db))
	ctx := context.Background()

	createTestUser(t, db, "Alice", "alice@example.com")

	_, err := service.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for wrong password, got %v", err)
	}

	// Unknown email must produce the same error category
	_, err = service.Login(ctx, &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown email, got %v", err)
	}
}
