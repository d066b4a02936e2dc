package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampScan(t *testing.T) {
	want := time.Date(2024, time.March, 4, 9, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		src  any
	}{
		{name: "canonical text", src: "2024-03-04 09:30:00"},
		{name: "bytes", src: []byte("2024-03-04 09:30:00")},
		{name: "minutes only", src: "2024-03-04 09:30"},
		{name: "driver time in UTC", src: time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, ts.Scan(tt.src))
			assert.True(t, ts.Equal(want), "got %s", ts)
		})
	}
}

func TestTimestampScanInvalid(t *testing.T) {
	var ts Timestamp
	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(42))

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestTimestampValue(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, time.March, 4, 9, 30, 15, 999, time.Local))
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04 09:30:15", v)
}

func TestSameDate(t *testing.T) {
	a := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local)
	assert.True(t, SameDate(a, a.Add(23*time.Hour+59*time.Minute)))
	assert.False(t, SameDate(a, a.Add(24*time.Hour)))
	assert.False(t, SameDate(a, a.Add(-time.Second)))
}

func TestFactOpenAndDuration(t *testing.T) {
	start := NewTimestamp(time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local))
	now := start.Add(90 * time.Minute)

	running := Fact{StartTime: start, EndTime: &start}
	assert.True(t, running.Open())
	assert.Equal(t, 90*time.Minute, running.Duration(now))

	legacy := Fact{StartTime: start}
	assert.True(t, legacy.Open())

	end := NewTimestamp(start.Add(time.Hour))
	closed := Fact{StartTime: start, EndTime: &end}
	assert.False(t, closed.Open())
	assert.Equal(t, time.Hour, closed.Duration(now))
}
