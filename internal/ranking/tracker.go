package ranking

import (
	"sync"
	"time"
)

// Idle sessions are evicted after this long without a Begin.
const sessionTTL = 30 * time.Minute

type generation struct {
	gen     uint64
	touched time.Time
}

// Tracker implements latest-wins request tagging for asynchronous ranking
// calls. Filters can change while a ranking request is in flight; a result
// whose generation has been superseded must be discarded rather than
// displayed. Sessions that stop ranking are swept out after sessionTTL so
// the map does not grow with every client that ever connected.
type Tracker struct {
	mu        sync.Mutex
	gens      map[string]generation
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		gens: make(map[string]generation),
		ttl:  sessionTTL,
		now:  time.Now,
	}
}

// Begin registers a new in-flight request for the given session and returns
// its generation tag. Any earlier generation for the session is superseded.
func (t *Tracker) Begin(session string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sweepLocked(now)

	entry := t.gens[session]
	entry.gen++
	entry.touched = now
	t.gens[session] = entry
	return entry.gen
}

// Latest reports whether gen is still the newest generation for the session.
// Evicted sessions report false for every tag, the same as a superseded one.
func (t *Tracker) Latest(session string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gens[session].gen == gen
}

// sweepLocked drops sessions idle longer than the TTL. It runs at most once
// per TTL so Begin stays cheap on busy trackers.
func (t *Tracker) sweepLocked(now time.Time) {
	if now.Sub(t.lastSweep) < t.ttl {
		return
	}
	t.lastSweep = now
	for session, entry := range t.gens {
		if now.Sub(entry.touched) >= t.ttl {
			delete(t.gens, session)
		}
	}
}
