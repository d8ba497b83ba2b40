package monitor

import (
	"sync"
	"time"
)

// IRequestCountMonitor is the daily admission-control counter. Days are UTC
// calendar days, not rolling 24h windows. A single in-process instance guards
// the downstream processing API; it is not coordinated across instances.
type IRequestCountMonitor interface {
	// Increment records one successful terminal submission and returns the
	// running count for the day of `at`. Crossing a UTC day boundary since
	// the last update resets the count to this increment.
	Increment(at time.Time) int

	// Exceeded reports whether the count for the day of `at` has reached
	// the configured ceiling. A day rollover since the last update means
	// nothing has been counted yet today.
	Exceeded(at time.Time) bool
}

type requestCountMonitor struct {
	mu          sync.Mutex
	maxPerDay   int
	numForToday int
	lastUpdate  time.Time
}

func NewRequestCountMonitor(maxPerDay int) IRequestCountMonitor {
	return &requestCountMonitor{maxPerDay: maxPerDay}
}

func (m *requestCountMonitor) Increment(at time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !sameUTCDay(m.lastUpdate, at) {
		m.numForToday = 0
	}
	m.numForToday++
	m.lastUpdate = at
	return m.numForToday
}

func (m *requestCountMonitor) Exceeded(at time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !sameUTCDay(m.lastUpdate, at) {
		return m.maxPerDay <= 0
	}
	return m.numForToday >= m.maxPerDay
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
