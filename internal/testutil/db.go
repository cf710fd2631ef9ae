package testutil

import (
	"testing"

	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory sqlite database with the schema migrated.
func NewTestDB(t *testing.T) (*gorm.DB, repository.Repositories) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), repository.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	return db, repository.NewRepositories(db)
}
