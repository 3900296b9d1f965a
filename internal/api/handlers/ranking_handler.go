package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/synergyhealth/hospital-discovery/internal/catalog"
	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/query/services"
	"github.com/synergyhealth/hospital-discovery/internal/ranking"
)

// RankingHandler handles AI hospital ranking requests
type RankingHandler struct {
	queryService   *services.HospitalQueryService
	rankingService *ranking.Service
	tracker        *ranking.Tracker
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(queryService *services.HospitalQueryService, rankingService *ranking.Service, tracker *ranking.Tracker) *RankingHandler {
	return &RankingHandler{
		queryService:   queryService,
		rankingService: rankingService,
		tracker:        tracker,
	}
}

type rankRequest struct {
	Filters entities.SearchFilters `json:"filters"`
}

type rankResponse struct {
	Hospitals []entities.RankedHospital `json:"hospitals"`
	Count     int                       `json:"count"`
	Stale     bool                      `json:"stale"`
}

// RankHospitals handles POST /api/hospitals/rank. Clients that reuse a
// session id (X-Session-ID header) get latest-wins semantics: a response
// superseded by a newer request from the same session is flagged stale and
// carries no ranking, so outdated orderings are never displayed.
func (h *RankingHandler) RankHospitals(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Filters.Urgency == "" {
		req.Filters.Urgency = entities.UrgencyStandard
	}
	if !req.Filters.Urgency.Valid() {
		respondWithError(w, http.StatusBadRequest, "unknown urgency level")
		return
	}

	session := r.Header.Get("X-Session-ID")
	var gen uint64
	if session != "" {
		gen = h.tracker.Begin(session)
	}

	candidates, err := h.queryService.Search(r.Context(), req.Filters, catalog.SortByAI)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load hospitals")
		return
	}

	analyses := h.rankingService.Rank(r.Context(), req.Filters, candidates)

	if session != "" && !h.tracker.Latest(session, gen) {
		respondWithJSON(w, http.StatusOK, rankResponse{Stale: true})
		return
	}

	merged := catalog.MergeRanking(candidates, analyses)
	respondWithJSON(w, http.StatusOK, rankResponse{
		Hospitals: merged,
		Count:     len(merged),
	})
}
