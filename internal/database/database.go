package database

import (
	"fmt"
	"log"

	"softbarter/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	coreModels := []interface{}{
		&models.User{},
		&models.Trade{},
		&models.Offer{},
		&models.Transaction{},
	}

	for _, model := range coreModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Seed inserts two sample users and two active trades when the users
// table is empty. Seed users share the password "password123".
func Seed() error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	johnBio := "Avid trader looking for interesting exchanges."
	janeBio := "Collector and trader of vintage items."

	users := []models.User{
		{Name: "John Doe", Email: "john.doe@example.com", PasswordHash: string(hash), Bio: &johnBio},
		{Name: "Jane Smith", Email: "jane.smith@example.com", PasswordHash: string(hash), Bio: &janeBio},
	}
	if err := DB.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	trades := []models.Trade{
		{
			Title:       "Vintage Book for Rare Coin",
			Description: "Trading a first edition vintage book for a rare coin from the 1800s.",
			ItemOffered: "Vintage Book",
			ItemSought:  "Rare Coin",
			Status:      models.TradeStatusActive,
			UserID:      users[0].ID,
		},
		{
			Title:       "Handmade Pottery for Art Supplies",
			Description: "Beautiful handmade pottery in exchange for professional art supplies.",
			ItemOffered: "Handmade Pottery",
			ItemSought:  "Art Supplies",
			Status:      models.TradeStatusActive,
			UserID:      users[1].ID,
		},
	}
	if err := DB.Create(&trades).Error; err != nil {
		return fmt.Errorf("failed to seed trades: %w", err)
	}

	log.Println("Seed data inserted")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
