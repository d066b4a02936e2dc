package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hamster/internal/model"
)

const activeActivity = "coalesce(deleted, 0) = 0"

// ActivityRepository manages activities and their manual order.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// List returns every activity that is not deleted, by name.
func (r *ActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).Where(activeActivity).Order("lower(name)").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// ListInCategory returns the activities of one category. The unsorted bucket
// is ordered by name, real categories by their manual order.
func (r *ActivityRepository) ListInCategory(ctx context.Context, categoryID int) ([]model.Activity, error) {
	order := "activity_order"
	if categoryID == model.UnsortedCategoryID {
		order = "lower(name)"
	}

	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Where(activeActivity).
		Order(order).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list category activities: %w", err)
	}
	return activities, nil
}

// ListSorted returns categorized activities in display order: by category
// order, then by activity order.
func (r *ActivityRepository) ListSorted(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).Raw(querySortedActivities).Scan(&activities).Error; err != nil {
		return nil, fmt.Errorf("list sorted activities: %w", err)
	}
	return activities, nil
}

func (r *ActivityRepository) Get(ctx context.Context, id int) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error
	switch {
	case err == nil:
		return &activity, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("activity %d: %w", id, ErrNotFound)
	default:
		return nil, fmt.Errorf("find activity: %w", err)
	}
}

// FindByName returns the id of the activity with the given name, ignoring
// case. Active activities win over deleted ones, newer over older.
func (r *ActivityRepository) FindByName(ctx context.Context, name string) (int, bool, error) {
	var id int
	err := r.db.WithContext(ctx).Raw(queryActivityByName, name).Row().Scan(&id)
	switch {
	case err == nil:
		return id, true, nil
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("find activity by name: %w", err)
	}
}

// Insert creates an activity after all others and returns its id.
func (r *ActivityRepository) Insert(ctx context.Context, name string, categoryID int) (int, error) {
	id, order, err := nextIDAndOrder(ctx, r.db, queryNextActivity)
	if err != nil {
		return 0, fmt.Errorf("allocate activity: %w", err)
	}
	if err := r.db.WithContext(ctx).Exec(insertActivity, id, name, categoryID, order).Error; err != nil {
		return 0, fmt.Errorf("create activity: %w", err)
	}
	return id, nil
}

// Update overwrites name and category, keeping the order.
func (r *ActivityRepository) Update(ctx context.Context, id int, name string, categoryID int) error {
	if err := r.db.WithContext(ctx).Exec(updateActivity, name, categoryID, id).Error; err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return nil
}

// ChangeCategory moves an activity to the end of another category.
func (r *ActivityRepository) ChangeCategory(ctx context.Context, id, categoryID int) error {
	db := r.db.WithContext(ctx)

	var order int
	if err := db.Raw(queryNextOrderInCategory, categoryID).Row().Scan(&order); err != nil {
		return fmt.Errorf("allocate activity order: %w", err)
	}
	if err := db.Exec(updateActivityCategory, categoryID, order, id).Error; err != nil {
		return fmt.Errorf("change activity category: %w", err)
	}
	return nil
}

// Swap exchanges the order of two activities. Callers pass neighbours.
func (r *ActivityRepository) Swap(ctx context.Context, id1, id2 int) error {
	order1, err := r.order(ctx, id1)
	if err != nil {
		return err
	}
	order2, err := r.order(ctx, id2)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Exec(updateActivityOrder, order1, id2).Error; err != nil {
		return fmt.Errorf("swap activities: %w", err)
	}
	if err := db.Exec(updateActivityOrder, order2, id1).Error; err != nil {
		return fmt.Errorf("swap activities: %w", err)
	}
	return nil
}

// MoveTo places the source activity at targetOrder, or right after it when
// insertAfter is set, shifting the activities behind it down by one.
func (r *ActivityRepository) MoveTo(ctx context.Context, sourceID, targetOrder int, insertAfter bool) error {
	db := r.db.WithContext(ctx)

	shift, order := shiftActivitiesFrom, targetOrder
	if insertAfter {
		shift, order = shiftActivitiesAfter, targetOrder+1
	}

	if err := db.Exec(shift, targetOrder).Error; err != nil {
		return fmt.Errorf("shift activities: %w", err)
	}
	if err := db.Exec(updateActivityOrder, order, sourceID).Error; err != nil {
		return fmt.Errorf("move activity: %w", err)
	}
	return nil
}

// Remove deletes an activity. Activities referenced by facts are only
// flagged as deleted so the facts keep their name.
func (r *ActivityRepository) Remove(ctx context.Context, id int) error {
	facts, err := r.FactCount(ctx, id)
	if err != nil {
		return err
	}

	statement := deleteActivity
	if facts > 0 {
		statement = markActivityDeleted
	}
	if err := r.db.WithContext(ctx).Exec(statement, id).Error; err != nil {
		return fmt.Errorf("remove activity: %w", err)
	}
	return nil
}

// FactCount returns how many facts reference the activity.
func (r *ActivityRepository) FactCount(ctx context.Context, id int) (int, error) {
	var count int
	if err := r.db.WithContext(ctx).Raw(queryActivityFactCount, id).Row().Scan(&count); err != nil {
		return 0, fmt.Errorf("count activity facts: %w", err)
	}
	return count, nil
}

func (r *ActivityRepository) order(ctx context.Context, id int) (int, error) {
	var order sql.NullInt64
	err := r.db.WithContext(ctx).Raw(queryActivityOrder, id).Row().Scan(&order)
	switch {
	case err == nil:
		return int(order.Int64), nil
	case errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("activity %d: %w", id, ErrNotFound)
	default:
		return 0, fmt.Errorf("read activity order: %w", err)
	}
}
