package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/JAOCruz/nayib/internal/models"
)

// Database stores recorded contact inquiries.
type Database struct {
	db *gorm.DB
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	return db, nil
}

// NewDatabase opens the sqlite file at dbPath, creating its directory.
func NewDatabase(dbPath string) (*Database, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Database{db: db}, nil
}

// NewTestDB opens a private in-memory database.
func NewTestDB() (*gorm.DB, error) {
	return open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

// Wrap exposes an open connection through the Database helpers.
func Wrap(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UpsertInquiries writes a batch of inquiries, replacing rows with the same
// ID. Run it inside a transaction.
func UpsertInquiries(tx *gorm.DB, batch []*models.Inquiry) error {
	if len(batch) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&batch).Error
}

// InquiriesBySubject returns the inquiries about one listing or parcel,
// newest first.
func (d *Database) InquiriesBySubject(subjectID string) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := d.db.Where("subject_id = ?", subjectID).Order("created_at DESC").Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	return inquiries, nil
}

// RecentInquiries returns the latest inquiries.
func (d *Database) RecentInquiries(limit int) ([]models.Inquiry, error) {
	if limit <= 0 {
		limit = 10
	}
	var inquiries []models.Inquiry
	if err := d.db.Order("created_at DESC").Limit(limit).Find(&inquiries).Error; err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	return inquiries, nil
}

// CountInquiries returns how many inquiries have a relay status, or all of
// them when status is empty.
func (d *Database) CountInquiries(status string) (int64, error) {
	query := d.db.Model(&models.Inquiry{})
	if status != "" {
		query = query.Where("relay_status = ?", status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count inquiries: %w", err)
	}
	return count, nil
}
