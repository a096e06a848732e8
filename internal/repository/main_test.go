package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Levuisha/parfumerie/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test and migrates the
// full schema. The database name is derived from the test name so parallel
// tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Shared-cache in-memory databases vanish when the last conn closes.
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}
