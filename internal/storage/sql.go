// internal/storage/sql.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/your-org/storefront-client/internal/config"
)

// Entry is one persisted key-value pair
type Entry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "client_state"
}

// SQLStore is a postgres-backed Store for deployments where client state
// should live next to the rest of the shop's data.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore opens the database connection and migrates the state table
func NewSQLStore(cfg *config.Config) (*SQLStore, error) {
	gormLogLevel := logger.Silent
	if cfg.App.Debug {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Storage.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Storage.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Storage.Database.MaxLifetime)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state table: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Get retrieves a value by key
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return entry.Value, nil
}

// Set stores a value under key, overwriting any previous value
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
