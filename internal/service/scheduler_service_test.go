package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	clock, err := ParseClock(" 07:05 ")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 7, Minute: 5}, clock)
	assert.Equal(t, "07:05", clock.String())

	for _, bad := range []string{"", "7", "24:00", "12:60", "ab:10", "1:2:3"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestClockOn(t *testing.T) {
	day := time.Date(2024, time.March, 4, 15, 42, 10, 0, time.Local)
	assert.Equal(t, time.Date(2024, time.March, 4, 23, 59, 0, 0, time.Local), Clock{Hour: 23, Minute: 59}.On(day))
}

func TestCronSpecs(t *testing.T) {
	assert.Equal(t, "0 59 23 * * *", Clock{Hour: 23, Minute: 59}.dailySpec())
	assert.Equal(t, "0 0 7 * * *", Clock{Hour: 7}.dailySpec())
	assert.Equal(t, "@every 900s", everySpec(15*time.Minute))
	assert.Equal(t, "@every 1s", everySpec(200*time.Millisecond))
}

func TestSchedulerService_DailyFiresAtClock(t *testing.T) {
	s := NewSchedulerService(time.Local)

	_, err := s.ScheduleDaily(Clock{Hour: 23, Minute: 59}, func() {})
	require.NoError(t, err)
	entries := s.cron.Entries()
	require.Len(t, entries, 1)

	from := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.Local)
	next := entries[0].Schedule.Next(from)
	assert.True(t, next.Equal(time.Date(2024, time.March, 4, 23, 59, 0, 0, time.Local)), "next run %s", next)
}

func TestSchedulerService(t *testing.T) {
	s := NewSchedulerService(time.Local)

	_, err := s.ScheduleDaily(Clock{Hour: 23, Minute: 59}, func() {})
	require.NoError(t, err)
	_, err = s.ScheduleInterval(15*time.Minute, func() {})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries())

	_, err = s.ScheduleInterval(0, func() {})
	assert.Error(t, err)

	s.Start()
	s.Stop()
}
