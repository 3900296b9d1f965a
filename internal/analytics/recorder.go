// Package analytics aggregates the search events published after every
// hospital search into rolling counters. The counters feed the operations
// endpoint; they are process-local and reset on restart.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/synergyhealth/hospital-discovery/internal/adapters/events"
	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/observability"
)

// Stats is a point-in-time snapshot of the search counters.
type Stats struct {
	TotalSearches int            `json:"totalSearches"`
	EmptyResults  int            `json:"emptyResults"`
	ByOrgan       map[string]int `json:"byOrgan"`
	ByUrgency     map[string]int `json:"byUrgency"`
	BySortKey     map[string]int `json:"bySortKey"`
	LastEventAt   *time.Time     `json:"lastEventAt,omitempty"`
}

// Recorder consumes search events from the bus and keeps the counters.
type Recorder struct {
	mu    sync.RWMutex
	stats Stats
}

// NewRecorder creates a recorder with zeroed counters.
func NewRecorder() *Recorder {
	return &Recorder{
		stats: Stats{
			ByOrgan:   make(map[string]int),
			ByUrgency: make(map[string]int),
			BySortKey: make(map[string]int),
		},
	}
}

// Start subscribes to the analytics channel and consumes events until ctx
// is cancelled or the bus closes the subscription.
func (r *Recorder) Start(ctx context.Context, bus providers.EventBus) error {
	eventChan, err := bus.Subscribe(ctx, events.SearchAnalyticsChannel)
	if err != nil {
		return err
	}

	go r.consume(ctx, eventChan)
	return nil
}

func (r *Recorder) consume(ctx context.Context, eventChan <-chan *entities.SearchEvent) {
	log := observability.GetLogger()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				log.Info().Msg("search analytics subscription closed")
				return
			}
			if event == nil {
				continue
			}
			r.record(event)
		}
	}
}

func (r *Recorder) record(event *entities.SearchEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.TotalSearches++
	if event.ResultCount == 0 {
		r.stats.EmptyResults++
	}
	if event.Organ != "" {
		r.stats.ByOrgan[event.Organ]++
	}
	if event.Urgency != "" {
		r.stats.ByUrgency[string(event.Urgency)]++
	}
	if event.SortKey != "" {
		r.stats.BySortKey[event.SortKey]++
	}
	at := event.Timestamp
	r.stats.LastEventAt = &at
}

// Snapshot returns a copy of the counters safe to hand to encoders.
func (r *Recorder) Snapshot() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := Stats{
		TotalSearches: r.stats.TotalSearches,
		EmptyResults:  r.stats.EmptyResults,
		ByOrgan:       make(map[string]int, len(r.stats.ByOrgan)),
		ByUrgency:     make(map[string]int, len(r.stats.ByUrgency)),
		BySortKey:     make(map[string]int, len(r.stats.BySortKey)),
	}
	for k, v := range r.stats.ByOrgan {
		snapshot.ByOrgan[k] = v
	}
	for k, v := range r.stats.ByUrgency {
		snapshot.ByUrgency[k] = v
	}
	for k, v := range r.stats.BySortKey {
		snapshot.BySortKey[k] = v
	}
	if r.stats.LastEventAt != nil {
		at := *r.stats.LastEventAt
		snapshot.LastEventAt = &at
	}
	return snapshot
}
