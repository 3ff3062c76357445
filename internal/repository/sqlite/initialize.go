package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/isaacphi/awsdocs/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens (creating if needed) the SQLite invocation history at dbPath
func Initialize(dbPath string) (repository.InvocationRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&domain.Invocation{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewInvocationRepository(db), nil
}
