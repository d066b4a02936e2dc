package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"hamster/internal/model"
)

// Categories created when upgrading a version 3 database. Legacy activities
// carried a work flag instead of a category.
const (
	dayToDayCategoryID   = 1
	dayToDayCategoryName = "Day to day activities"
	workCategoryID       = 2
	workCategoryName     = "Work"
)

// legacyCategories maps the legacy work flag (stored as 0/1) to a category id.
var legacyCategories = []struct {
	work       int
	categoryID int
}{
	{work: 0, categoryID: dayToDayCategoryID},
	{work: 1, categoryID: workCategoryID},
}

// MigrationError reports the step that stopped a migration run. Statements
// before the failing one stay applied and the stored version is unchanged.
type MigrationError struct {
	Step    string
	Version int
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migrate schema from version %d: %s: %v", e.Version, e.Step, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

type migrationStep struct {
	target int
	name   string
	apply  func(ctx context.Context, db *gorm.DB) error
}

var migrationSteps = []migrationStep{
	{target: 2, name: "split fact date and time", apply: migrateToV2},
	{target: 3, name: "canonical fact timestamps", apply: migrateToV3},
	{target: 4, name: "activity categories", apply: migrateToV4},
}

// Migrator upgrades the schema in place.
type Migrator struct {
	db *gorm.DB
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{db: db}
}

// Version returns the stored schema version. ok is false when the database
// has no version table yet.
func (m *Migrator) Version(ctx context.Context) (version int, ok bool, err error) {
	db := m.db.WithContext(ctx)
	if !db.Migrator().HasTable("version") {
		return 0, false, nil
	}
	if err := db.Raw(queryVersion).Row().Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, fmt.Errorf("read schema version: version table is empty")
		}
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, true, nil
}

// Migrate brings the schema to CurrentSchemaVersion and returns it. Steps run
// in order from the stored version and every statement commits on its own.
// A current database is left untouched.
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	version, ok, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}

	if !ok {
		if err := execStatements(ctx, m.db, bootstrapStatements...); err != nil {
			return 0, &MigrationError{Step: "create schema", Err: err}
		}
		if err := m.db.WithContext(ctx).Exec(insertVersion, CurrentSchemaVersion).Error; err != nil {
			return 0, &MigrationError{Step: "create schema", Err: err}
		}
		log.Printf("[info] created schema version %d", CurrentSchemaVersion)
		return CurrentSchemaVersion, nil
	}

	if version > CurrentSchemaVersion {
		return version, fmt.Errorf("schema version %d is newer than supported version %d", version, CurrentSchemaVersion)
	}
	if version == CurrentSchemaVersion {
		return version, nil
	}

	for _, step := range migrationSteps {
		if version >= step.target {
			continue
		}
		log.Printf("[info] migrating schema: %s", step.name)
		if err := step.apply(ctx, m.db); err != nil {
			return version, &MigrationError{Step: step.name, Version: version, Err: err}
		}
	}

	res := m.db.WithContext(ctx).Exec(updateVersion, CurrentSchemaVersion)
	if res.Error != nil {
		return version, &MigrationError{Step: "store version", Version: version, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		if err := m.db.WithContext(ctx).Exec(insertVersion, CurrentSchemaVersion).Error; err != nil {
			return version, &MigrationError{Step: "store version", Version: version, Err: err}
		}
	}

	log.Printf("[info] schema migrated from version %d to %d", version, CurrentSchemaVersion)
	return CurrentSchemaVersion, nil
}

func execStatements(ctx context.Context, db *gorm.DB, statements ...string) error {
	for _, statement := range statements {
		if err := db.WithContext(ctx).Exec(statement).Error; err != nil {
			return err
		}
	}
	return nil
}

type legacyFact struct {
	ID        int
	StartTime string
	StartDate string
}

// migrateToV2 closes every fact with the start of the next fact of the same
// day. The last fact of a day has no known end and is removed, except the very
// last fact, which is still running.
func migrateToV2(ctx context.Context, db *gorm.DB) error {
	if err := execStatements(ctx, db, splitFactTimeStatements...); err != nil {
		return err
	}

	var facts []legacyFact
	if err := db.WithContext(ctx).Raw(queryLegacyFacts).Scan(&facts).Error; err != nil {
		return fmt.Errorf("list facts: %w", err)
	}

	for i := 1; i < len(facts); i++ {
		prev, fact := facts[i-1], facts[i]
		if prev.StartDate == fact.StartDate {
			if err := db.WithContext(ctx).Exec(touchFact, fact.StartTime, prev.ID).Error; err != nil {
				return fmt.Errorf("close fact %d: %w", prev.ID, err)
			}
			continue
		}
		if err := db.WithContext(ctx).Exec(deleteFact, prev.ID).Error; err != nil {
			return fmt.Errorf("delete fact %d: %w", prev.ID, err)
		}
	}
	return nil
}

func migrateToV3(ctx context.Context, db *gorm.DB) error {
	return execStatements(ctx, db, canonicalFactTimeStatements...)
}

// migrateToV4 moves activities into categories. Rebuilding the activities
// table drops the deleted flag, so previously deleted activities that still
// have facts come back as unsorted ones.
func migrateToV4(ctx context.Context, db *gorm.DB) error {
	conn := db.WithContext(ctx)

	if err := conn.Exec(createCategoriesTable).Error; err != nil {
		return err
	}
	if err := conn.Exec(insertLegacyCategory, dayToDayCategoryID, dayToDayCategoryName, 2).Error; err != nil {
		return err
	}

	var workActivities int
	if err := conn.Raw(queryActiveWorkActivities).Row().Scan(&workActivities); err != nil {
		return fmt.Errorf("count work activities: %w", err)
	}
	if workActivities > 0 {
		if err := conn.Exec(insertLegacyCategory, workCategoryID, workCategoryName, 1).Error; err != nil {
			return err
		}
	}

	if err := conn.Exec(addActivityCategoryColumn).Error; err != nil {
		return err
	}
	if err := conn.Exec(purgeUnusedDeletedActivities).Error; err != nil {
		return err
	}
	for _, c := range legacyCategories {
		if err := conn.Exec(assignLegacyCategory, c.categoryID, c.work).Error; err != nil {
			return err
		}
	}
	if err := conn.Exec(unsortUncategorizedActivities, model.UnsortedCategoryID).Error; err != nil {
		return err
	}

	return execStatements(ctx, db, rebuildActivitiesStatements...)
}
