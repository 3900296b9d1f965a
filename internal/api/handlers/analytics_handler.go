package handlers

import (
	"net/http"

	"github.com/synergyhealth/hospital-discovery/internal/analytics"
)

// AnalyticsHandler exposes the aggregated search counters
type AnalyticsHandler struct {
	recorder *analytics.Recorder
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(recorder *analytics.Recorder) *AnalyticsHandler {
	return &AnalyticsHandler{recorder: recorder}
}

// SearchStats handles GET /api/analytics/searches
func (h *AnalyticsHandler) SearchStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.recorder.Snapshot())
}
