package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hamster/internal/model"
)

// CategoryRepository manages the ordered list of categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("category_order").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id int) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	switch {
	case err == nil:
		return &category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}

// FindByName looks a category up ignoring case.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).Order("id").First(&category).Error
	switch {
	case err == nil:
		return &category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("category %q: %w", name, ErrNotFound)
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}

// Insert appends a category after the last one and returns its id.
func (r *CategoryRepository) Insert(ctx context.Context, name string) (int, error) {
	id, order, err := nextIDAndOrder(ctx, r.db, queryNextCategory)
	if err != nil {
		return 0, fmt.Errorf("allocate category: %w", err)
	}
	if err := r.db.WithContext(ctx).Exec(insertCategory, id, name, order).Error; err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return id, nil
}

// Update renames a category. The unsorted bucket cannot be renamed and is
// silently ignored.
func (r *CategoryRepository) Update(ctx context.Context, id int, name string) error {
	if id == model.UnsortedCategoryID {
		return nil
	}
	if err := r.db.WithContext(ctx).Exec(updateCategoryName, name, id).Error; err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Remove moves the activities of a category to the unsorted bucket and
// deletes the category.
func (r *CategoryRepository) Remove(ctx context.Context, id int) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec(unsortCategoryActivities, model.UnsortedCategoryID, id).Error; err != nil {
		return fmt.Errorf("unsort category activities: %w", err)
	}
	if err := db.Exec(deleteCategory, id).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
