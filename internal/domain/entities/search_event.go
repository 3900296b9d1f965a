package entities

import "time"

// SearchEvent is published to the analytics bus after each hospital search.
type SearchEvent struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	Organ       string    `json:"organ"`
	Budget      string    `json:"budget"`
	Urgency     Urgency   `json:"urgency"`
	SortKey     string    `json:"sortKey"`
	ResultCount int       `json:"resultCount"`
	Timestamp   time.Time `json:"timestamp"`
}
