package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vdtri/toeicmate/database"
	"github.com/vdtri/toeicmate/internal/store"
)

// testDB opens a throwaway SQLite file with the full schema applied.
func testDB(t *testing.T) (*gorm.DB, *store.Bus) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db, store.NewBus()
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, _ := testDB(t)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db))
}
