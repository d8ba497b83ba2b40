package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIncrementAccumulatesWithinDay(t *testing.T) {
	m := NewRequestCountMonitor(10)
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, m.Increment(at))
	assert.Equal(t, 2, m.Increment(at.Add(2*time.Hour)))
	assert.Equal(t, 3, m.Increment(at.Add(10*time.Hour)))
}

func TestIncrementResetsOnUTCDayRollover(t *testing.T) {
	m := NewRequestCountMonitor(10)

	lastUpdate := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	m.Increment(lastUpdate)
	m.Increment(lastUpdate)

	// Two minutes later but a new UTC calendar day: count restarts at the
	// new increment instead of accumulating.
	next := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, m.Increment(next))
}

func TestRolloverIsCalendarDayNotRollingWindow(t *testing.T) {
	m := NewRequestCountMonitor(10)

	// 23 hours apart but the same is false, different calendar days.
	m.Increment(time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, m.Increment(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))

	// 20 hours apart within one calendar day accumulates.
	m2 := NewRequestCountMonitor(10)
	m2.Increment(time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, m2.Increment(time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)))
}

func TestExceeded(t *testing.T) {
	m := NewRequestCountMonitor(2)
	at := time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC)

	assert.False(t, m.Exceeded(at))
	m.Increment(at)
	assert.False(t, m.Exceeded(at))
	m.Increment(at)
	assert.True(t, m.Exceeded(at))

	// The ceiling clears once the UTC day rolls over.
	assert.False(t, m.Exceeded(at.Add(24*time.Hour)))
}
