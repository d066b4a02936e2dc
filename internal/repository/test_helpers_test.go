package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// createTestDB opens a migrated database in a temp dir.
func createTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "hamster.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { closeDB(db) })
	return db
}

// createRawDB opens a database without creating any schema.
func createRawDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "hamster.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { closeDB(db) })
	return db
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func mustExec(t *testing.T, db *gorm.DB, statement string, args ...any) {
	t.Helper()
	require.NoError(t, db.Exec(statement, args...).Error, statement)
}

// changes returns the number of rows modified on the connection so far.
func changes(t *testing.T, db *gorm.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Raw("SELECT total_changes()").Row().Scan(&n))
	return n
}

func at(day, hour, minute, second int) time.Time {
	return time.Date(2024, time.March, day, hour, minute, second, 0, time.Local)
}
