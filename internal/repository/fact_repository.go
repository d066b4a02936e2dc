package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hamster/internal/model"
)

// FactRepository stores the recorded time intervals.
type FactRepository struct {
	db *gorm.DB
}

func NewFactRepository(db *gorm.DB) *FactRepository {
	return &FactRepository{db: db}
}

// Get returns a fact joined with its activity and category names.
func (r *FactRepository) Get(ctx context.Context, id int) (*model.FactEntry, error) {
	var entries []model.FactEntry
	if err := r.db.WithContext(ctx).Raw(queryFactByID, model.UncategorizedName, id).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("find fact: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("fact %d: %w", id, ErrNotFound)
	}
	return &entries[0], nil
}

// Last returns the most recently created fact, or nil when there are none.
func (r *FactRepository) Last(ctx context.Context) (*model.FactEntry, error) {
	var entries []model.FactEntry
	if err := r.db.WithContext(ctx).Raw(queryLastFact, model.UncategorizedName).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("find last fact: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// ListByDate returns the facts started on the given day, earliest first.
func (r *FactRepository) ListByDate(ctx context.Context, date time.Time) ([]model.FactEntry, error) {
	from := model.NewTimestamp(model.StartOfDay(date))
	to := model.NewTimestamp(model.StartOfDay(date).AddDate(0, 0, 1))

	var entries []model.FactEntry
	if err := r.db.WithContext(ctx).Raw(queryFactsInRange, model.UncategorizedName, from, to).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("list facts: %w", err)
	}
	return entries, nil
}

// Insert records an open fact starting (and ending) at start.
func (r *FactRepository) Insert(ctx context.Context, activityID int, start time.Time) (int, error) {
	ts := model.NewTimestamp(start)
	fact := model.Fact{
		ActivityID: activityID,
		StartTime:  ts,
		EndTime:    &ts,
	}
	if err := r.db.WithContext(ctx).Create(&fact).Error; err != nil {
		return 0, fmt.Errorf("create fact: %w", err)
	}
	return fact.ID, nil
}

// Touch sets the end time of a fact.
func (r *FactRepository) Touch(ctx context.Context, id int, end time.Time) error {
	if err := r.db.WithContext(ctx).Exec(touchFact, model.NewTimestamp(end), id).Error; err != nil {
		return fmt.Errorf("touch fact: %w", err)
	}
	return nil
}

func (r *FactRepository) Remove(ctx context.Context, id int) error {
	if err := r.db.WithContext(ctx).Exec(deleteFact, id).Error; err != nil {
		return fmt.Errorf("delete fact: %w", err)
	}
	return nil
}
