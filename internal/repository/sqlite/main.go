package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alphadiscovery/alpha/internal/domain"
	"github.com/alphadiscovery/alpha/internal/repository"
)

// Initialize opens the SQLite database at dbPath and returns a thread
// repository backed by it.
func Initialize(dbPath string) (repository.ThreadRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Thread{}, &domain.Message{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewThreadRepository(db), nil
}
