package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"hamster/internal/repository"
)

type testServices struct {
	facts      *FactService
	categories *CategoryService
	factRepo   *repository.FactRepository
	activities *repository.ActivityRepository
	categoryDB *repository.CategoryRepository
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	db, err := repository.NewDB(context.Background(), filepath.Join(t.TempDir(), "hamster.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	factRepo := repository.NewFactRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	return testServices{
		facts:      NewFactService(factRepo, activityRepo),
		categories: NewCategoryService(categoryRepo, activityRepo),
		factRepo:   factRepo,
		activities: activityRepo,
		categoryDB: categoryRepo,
	}
}

var t0 = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)
