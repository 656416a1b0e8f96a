package database

import (
	"fmt"
	"log"

	"dma/config"
	"dma/models"
	"dma/models/billing"
	courseModels "dma/models/course"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect establishes a connection to PostgreSQL and returns the handle.
// The handle is passed explicitly into every controller; there is no
// package-level instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	return db, nil
}

// Migrate performs database migrations
func Migrate(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyInvite{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Enrollment{},
		&courseModels.LessonProgress{},
		&billing.PromoCode{},
		&billing.Subscription{},
		&billing.Invoice{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Migrations completed successfully.")
	return nil
}
