package ranking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_LatestWins(t *testing.T) {
	tracker := NewTracker()

	first := tracker.Begin("session-a")
	second := tracker.Begin("session-a")

	assert.False(t, tracker.Latest("session-a", first), "superseded generation must be stale")
	assert.True(t, tracker.Latest("session-a", second))
}

func TestTracker_SessionsAreIndependent(t *testing.T) {
	tracker := NewTracker()

	a := tracker.Begin("session-a")
	b := tracker.Begin("session-b")

	assert.True(t, tracker.Latest("session-a", a))
	assert.True(t, tracker.Latest("session-b", b))
}

func TestTracker_UnknownGenerationIsStale(t *testing.T) {
	tracker := NewTracker()

	assert.False(t, tracker.Latest("session-a", 1))
}

func TestTracker_ConcurrentBegins(t *testing.T) {
	tracker := NewTracker()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			tracker.Begin("session-a")
		}()
	}
	wg.Wait()

	assert.True(t, tracker.Latest("session-a", n))
	assert.False(t, tracker.Latest("session-a", n-1))
}

func TestTracker_IdleSessionsAreEvicted(t *testing.T) {
	clock := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	tracker := NewTracker()
	tracker.now = func() time.Time { return clock }

	idle := tracker.Begin("session-idle")

	// Advance past the TTL; the next Begin sweeps the idle session.
	clock = clock.Add(sessionTTL + time.Minute)
	active := tracker.Begin("session-active")

	assert.False(t, tracker.Latest("session-idle", idle))
	assert.True(t, tracker.Latest("session-active", active))
	assert.Len(t, tracker.gens, 1)
}

func TestTracker_ActiveSessionSurvivesSweep(t *testing.T) {
	clock := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	tracker := NewTracker()
	tracker.now = func() time.Time { return clock }

	tracker.Begin("session-a")

	// Keep touching the session just inside the TTL across several sweeps.
	for i := 0; i < 3; i++ {
		clock = clock.Add(sessionTTL - time.Minute)
		tracker.Begin("session-a")
	}

	gen := tracker.Begin("session-a")
	assert.True(t, tracker.Latest("session-a", gen))
	assert.Equal(t, uint64(5), gen, "generations keep counting across sweeps")
}
