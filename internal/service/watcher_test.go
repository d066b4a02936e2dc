package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCloseDay(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	fact, err := s.facts.AddFact(ctx, "Writing", t0)
	require.NoError(t, err)

	w := NewWatcher(s.facts, NewSchedulerService(time.Local), Clock{Hour: 23, Minute: 59}, time.Minute)
	w.now = func() time.Time { return t0.Add(14*time.Hour + 59*time.Minute) }

	require.NoError(t, w.ReportStatus(ctx))
	require.NoError(t, w.CloseDay(ctx))

	closed, err := s.factRepo.Get(ctx, fact.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04 23:59:00", closed.EndTime.String())

	// nothing left to close
	require.NoError(t, w.CloseDay(ctx))
	require.NoError(t, w.ReportStatus(ctx))
}

func TestWatcherSchedule(t *testing.T) {
	s := newTestServices(t)
	scheduler := NewSchedulerService(time.Local)

	require.NoError(t, NewWatcher(s.facts, scheduler, Clock{Hour: 23, Minute: 59}, 0).Schedule())
	assert.Equal(t, 1, scheduler.Entries())

	require.NoError(t, NewWatcher(s.facts, scheduler, Clock{Hour: 23, Minute: 59}, time.Minute).Schedule())
	assert.Equal(t, 3, scheduler.Entries())
}
