package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/JAOCruz/nayib/internal/models"
)

// MigrateSchema creates or updates the tables.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Inquiry{}); err != nil {
		return fmt.Errorf("failed to migrate inquiries table: %w", err)
	}
	return nil
}

func (d *Database) RunMigrations() error {
	return MigrateSchema(d.db)
}
