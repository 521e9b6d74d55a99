package services

import (
	"testing"

	"softbarter/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// :memory: is unique per connection unless using cache=shared, and
	// gorm pools connections, so the shared cache keeps every handle on
	// the same database.
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Trade{},
		&models.Offer{},
		&models.Transaction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	// Clean all tables, children first
	db.Exec("DELETE FROM transactions")
	db.Exec("DELETE FROM offers")
	db.Exec("DELETE FROM trades")
	db.Exec("DELETE FROM users")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestTrade(t *testing.T, db *gorm.DB, userID uint, title string) *models.Trade {
	trade := &models.Trade{
		Title:       title,
		Description: "A test listing",
		ItemOffered: "Guitar",
		ItemSought:  "Keyboard",
		Status:      models.TradeStatusActive,
		Version:     1,
		UserID:      userID,
	}
	if err := db.Create(trade).Error; err != nil {
		t.Fatalf("failed to create trade: %v", err)
	}
	return trade
}

func createTestOffer(t *testing.T, db *gorm.DB, tradeID, offerorID uint, message string) *models.Offer {
	offer := &models.Offer{
		Message:   message,
		Status:    models.OfferStatusPending,
		TradeID:   tradeID,
		OfferorID: offerorID,
	}
	if err := db.Create(offer).Error; err != nil {
		t.Fatalf("failed to create offer: %v", err)
	}
	return offer
}
