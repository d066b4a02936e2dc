package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hamster/internal/model"
)

// createVersion1DB builds the schema of the first applet release.
func createVersion1DB(t *testing.T) *gorm.DB {
	t.Helper()
	db := createRawDB(t)
	mustExec(t, db, `CREATE TABLE version (version integer)`)
	mustExec(t, db, `INSERT INTO version (version) VALUES (1)`)
	mustExec(t, db, `CREATE TABLE activities (
		id integer primary key,
		name varchar2(500),
		activity_order integer,
		deleted integer,
		work integer
	)`)
	mustExec(t, db, `CREATE TABLE facts (
		id integer primary key,
		activity_id integer,
		fact_date varchar2(8),
		fact_time varchar2(4)
	)`)
	return db
}

func addLegacyActivity(t *testing.T, db *gorm.DB, id int, name string, deleted, work any) {
	t.Helper()
	mustExec(t, db, `INSERT INTO activities (id, name, activity_order, deleted, work) VALUES (?, ?, ?, ?, ?)`,
		id, name, id, deleted, work)
}

func addLegacyFact(t *testing.T, db *gorm.DB, id, activityID int, date, clock string) {
	t.Helper()
	mustExec(t, db, `INSERT INTO facts (id, activity_id, fact_date, fact_time) VALUES (?, ?, ?, ?)`,
		id, activityID, date, clock)
}

func storedVersion(t *testing.T, db *gorm.DB) int {
	t.Helper()
	version, ok, err := NewMigrator(db).Version(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	return version
}

func TestMigrate_FreshDatabase(t *testing.T) {
	db := createRawDB(t)

	version, err := NewMigrator(db).Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
	assert.Equal(t, CurrentSchemaVersion, storedVersion(t, db))

	for _, table := range []string{"categories", "activities", "facts"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasColumn("activities", "category_id"))
	assert.True(t, db.Migrator().HasColumn("categories", "color_code"))
}

func TestMigrate_CurrentVersionIsUntouched(t *testing.T) {
	db := createTestDB(t)
	migrator := NewMigrator(db)

	before := changes(t, db)
	version, err := migrator.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)

	version, err = migrator.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
	assert.Equal(t, before, changes(t, db))
}

func TestMigrate_NewerVersionIsRejected(t *testing.T) {
	db := createRawDB(t)
	mustExec(t, db, `CREATE TABLE version (version integer)`)
	mustExec(t, db, `INSERT INTO version (version) VALUES (5)`)

	_, err := NewMigrator(db).Migrate(context.Background())
	require.Error(t, err)
	assert.Equal(t, 5, storedVersion(t, db))
}

func TestMigrate_FromVersion1(t *testing.T) {
	db := createVersion1DB(t)

	addLegacyActivity(t, db, 1, "Writing", nil, 1)
	addLegacyActivity(t, db, 2, "Reading", nil, 0)
	addLegacyActivity(t, db, 3, "Gaming", 1, 0)
	addLegacyActivity(t, db, 4, "Chess", 1, 1)
	addLegacyActivity(t, db, 5, "Nap", nil, nil)

	addLegacyFact(t, db, 1, 1, "20240304", "0900")
	addLegacyFact(t, db, 2, 4, "20240304", "1000")
	addLegacyFact(t, db, 3, 2, "20240304", "1130")
	addLegacyFact(t, db, 4, 1, "20240305", "0800")

	version, err := NewMigrator(db).Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, version)
	assert.Equal(t, 4, storedVersion(t, db))

	t.Run("facts", func(t *testing.T) {
		var facts []model.Fact
		require.NoError(t, db.Order("id").Find(&facts).Error)
		require.Len(t, facts, 3)

		assert.Equal(t, 1, facts[0].ID)
		assert.Equal(t, "2024-03-04 09:00:00", facts[0].StartTime.String())
		require.NotNil(t, facts[0].EndTime)
		assert.Equal(t, "2024-03-04 10:00:00", facts[0].EndTime.String())

		assert.Equal(t, 2, facts[1].ID)
		require.NotNil(t, facts[1].EndTime)
		assert.Equal(t, "2024-03-04 11:30:00", facts[1].EndTime.String())

		// the last fact of the 4th had no end and is gone, the last fact
		// overall is still running
		assert.Equal(t, 4, facts[2].ID)
		assert.Equal(t, "2024-03-05 08:00:00", facts[2].StartTime.String())
		assert.Nil(t, facts[2].EndTime)
	})

	t.Run("categories", func(t *testing.T) {
		categories, err := NewCategoryRepository(db).List(context.Background())
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, model.Category{ID: workCategoryID, Name: "Work", Order: 1}, categories[0])
		assert.Equal(t, model.Category{ID: dayToDayCategoryID, Name: "Day to day activities", Order: 2}, categories[1])
	})

	t.Run("activities", func(t *testing.T) {
		assert.False(t, db.Migrator().HasColumn("activities", "work"))

		var activities []model.Activity
		require.NoError(t, db.Order("id").Find(&activities).Error)

		byID := make(map[int]model.Activity)
		for _, a := range activities {
			byID[a.ID] = a
		}
		assert.Len(t, byID, 4)
		assert.NotContains(t, byID, 3, "deleted activity without facts is purged")

		assert.Equal(t, workCategoryID, byID[1].CategoryID)
		assert.Equal(t, dayToDayCategoryID, byID[2].CategoryID)
		assert.Equal(t, model.UnsortedCategoryID, byID[4].CategoryID)
		assert.False(t, byID[4].Deleted, "deleted flag is reset")
		assert.Equal(t, model.UnsortedCategoryID, byID[5].CategoryID)
	})
}

func TestMigrate_FromVersion3WithoutWork(t *testing.T) {
	db := createRawDB(t)
	mustExec(t, db, `CREATE TABLE version (version integer)`)
	mustExec(t, db, `INSERT INTO version (version) VALUES (3)`)
	mustExec(t, db, `CREATE TABLE activities (
		id integer primary key,
		name varchar2(500),
		activity_order integer,
		deleted integer,
		work integer
	)`)
	mustExec(t, db, `CREATE TABLE facts (
		id integer primary key,
		activity_id integer,
		start_time timestamp,
		end_time timestamp
	)`)
	addLegacyActivity(t, db, 1, "Reading", nil, 0)
	addLegacyActivity(t, db, 2, "Coding", 1, 1)
	mustExec(t, db, `INSERT INTO facts (id, activity_id, start_time, end_time) VALUES (1, 1, '2024-03-04 09:00:00', '2024-03-04 09:00:00')`)

	_, err := NewMigrator(db).Migrate(context.Background())
	require.NoError(t, err)

	categories, err := NewCategoryRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Day to day activities", categories[0].Name)

	activity, err := NewActivityRepository(db).Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, dayToDayCategoryID, activity.CategoryID)

	_, err = NewActivityRepository(db).Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMigrate_FailureLeavesVersion(t *testing.T) {
	db := createRawDB(t)
	mustExec(t, db, `CREATE TABLE version (version integer)`)
	mustExec(t, db, `INSERT INTO version (version) VALUES (1)`)

	_, err := NewMigrator(db).Migrate(context.Background())
	require.Error(t, err)

	var migrationErr *MigrationError
	require.True(t, errors.As(err, &migrationErr))
	assert.Equal(t, "split fact date and time", migrationErr.Step)
	assert.Equal(t, 1, migrationErr.Version)
	assert.Equal(t, 1, storedVersion(t, db))
}
