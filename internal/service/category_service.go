package service

import (
	"context"

	"hamster/internal/model"
	"hamster/internal/repository"
)

// UnsortedName labels the virtual bucket of activities without a category.
const UnsortedName = "Unsorted"

// CategoryGroup is a category with its activities in display order.
type CategoryGroup struct {
	Category   model.Category
	Activities []model.Activity
}

// CategoryService provides helpers around categories.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	activityRepo *repository.ActivityRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, activityRepo *repository.ActivityRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, activityRepo: activityRepo}
}

// Overview lists the categories in order with their activities, followed by
// the unsorted bucket.
func (s *CategoryService) Overview(ctx context.Context) ([]CategoryGroup, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories = append(categories, model.Category{ID: model.UnsortedCategoryID, Name: UnsortedName})

	groups := make([]CategoryGroup, 0, len(categories))
	for _, category := range categories {
		activities, err := s.activityRepo.ListInCategory(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, CategoryGroup{Category: category, Activities: activities})
	}
	return groups, nil
}
