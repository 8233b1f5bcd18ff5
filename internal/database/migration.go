package database

import (
	"fmt"

	"github.com/Aarbaz/perfect-management/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
