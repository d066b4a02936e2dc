package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hamster/internal/model"
	"hamster/internal/repository"
)

// ReentryWindow is how soon after a fact starts that switching to another
// activity counts as a mistaken entry and replaces it.
const ReentryWindow = time.Minute

// FactService records what the user is working on.
type FactService struct {
	factRepo     *repository.FactRepository
	activityRepo *repository.ActivityRepository
}

func NewFactService(factRepo *repository.FactRepository, activityRepo *repository.ActivityRepository) *FactService {
	return &FactService{factRepo: factRepo, activityRepo: activityRepo}
}

// AddFact switches to the named activity at the given time, creating the
// activity when it does not exist yet. The previous fact of the day is closed
// at the new start time so the day stays contiguous.
//
// Repeating the running activity changes nothing and returns the running
// fact. Switching within ReentryWindow of the previous start replaces the
// previous fact, keeping its start time.
func (s *FactService) AddFact(ctx context.Context, activityName string, at time.Time) (*model.FactEntry, error) {
	activityName = strings.TrimSpace(activityName)
	if activityName == "" {
		return nil, fmt.Errorf("activity name is required")
	}

	activityID, found, err := s.activityRepo.FindByName(ctx, activityName)
	if err != nil {
		return nil, err
	}
	if !found {
		activityID, err = s.activityRepo.Insert(ctx, activityName, model.UnsortedCategoryID)
		if err != nil {
			return nil, err
		}
	}

	start := model.NewTimestamp(at).Time

	prev, err := s.factRepo.Last(ctx)
	if err != nil {
		return nil, err
	}

	if prev != nil && model.SameDate(prev.StartTime.Time, start) {
		if prev.ActivityID == activityID {
			return prev, nil
		}

		gap := start.Sub(prev.StartTime.Time)
		if gap > 0 && gap < ReentryWindow {
			if err := s.factRepo.Remove(ctx, prev.ID); err != nil {
				return nil, err
			}
			start = prev.StartTime.Time
			prev = nil
		}
	}

	if prev != nil {
		if err := s.factRepo.Touch(ctx, prev.ID, start); err != nil {
			return nil, err
		}
	}

	id, err := s.factRepo.Insert(ctx, activityID, start)
	if err != nil {
		return nil, err
	}
	return s.factRepo.Get(ctx, id)
}

// Facts returns the facts started on the day of date.
func (s *FactService) Facts(ctx context.Context, date time.Time) ([]model.FactEntry, error) {
	return s.factRepo.ListByDate(ctx, date)
}

// Current returns the running fact: the last one, when it started on the
// same day as now and is still open. It returns nil when nothing is running.
func (s *FactService) Current(ctx context.Context, now time.Time) (*model.FactEntry, error) {
	last, err := s.factRepo.Last(ctx)
	if err != nil || last == nil {
		return nil, err
	}
	if !last.Open() || !model.SameDate(last.StartTime.Time, now) {
		return nil, nil
	}
	return last, nil
}

// Stop closes the running fact at the given time. It returns the closed fact,
// or nil when nothing was running.
func (s *FactService) Stop(ctx context.Context, at time.Time) (*model.FactEntry, error) {
	current, err := s.Current(ctx, at)
	if err != nil || current == nil {
		return nil, err
	}
	if !at.After(current.StartTime.Time) {
		return nil, fmt.Errorf("stop time %s is not after fact start %s", model.NewTimestamp(at), current.StartTime)
	}
	if err := s.factRepo.Touch(ctx, current.ID, at); err != nil {
		return nil, err
	}
	return s.factRepo.Get(ctx, current.ID)
}

// Touch sets the end time of a fact.
func (s *FactService) Touch(ctx context.Context, factID int, end time.Time) error {
	return s.factRepo.Touch(ctx, factID, end)
}

// Fact returns the fact with the given id, or repository.ErrNotFound.
func (s *FactService) Fact(ctx context.Context, factID int) (*model.FactEntry, error) {
	return s.factRepo.Get(ctx, factID)
}

// RemoveFact deletes a fact. Removing an id that does not exist is not an
// error.
func (s *FactService) RemoveFact(ctx context.Context, factID int) error {
	return s.factRepo.Remove(ctx, factID)
}
