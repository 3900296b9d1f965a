package handlers

import (
	"net/http"
	"strconv"

	"github.com/synergyhealth/hospital-discovery/internal/catalog"
	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/query/services"
	apperrors "github.com/synergyhealth/hospital-discovery/pkg/errors"
)

// HospitalHandler handles hospital catalog HTTP requests
type HospitalHandler struct {
	queryService *services.HospitalQueryService
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(queryService *services.HospitalQueryService) *HospitalHandler {
	return &HospitalHandler{queryService: queryService}
}

// filtersFromQuery builds SearchFilters from the request query string.
// Missing urgency defaults to Standard; an unknown value is rejected by the
// caller.
func filtersFromQuery(r *http.Request) entities.SearchFilters {
	q := r.URL.Query()
	urgency := entities.Urgency(q.Get("urgency"))
	if urgency == "" {
		urgency = entities.UrgencyStandard
	}
	organ := q.Get("organ")
	if organ == "" {
		organ = entities.OrganAny
	}
	return entities.SearchFilters{
		Location: q.Get("location"),
		Organ:    organ,
		Budget:   q.Get("budget"),
		Urgency:  urgency,
	}
}

// SearchHospitals handles GET /api/hospitals/search
func (h *HospitalHandler) SearchHospitals(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromQuery(r)
	if !filters.Urgency.Valid() {
		respondWithError(w, http.StatusBadRequest, "unknown urgency level")
		return
	}

	sortKey := catalog.SortKey(r.URL.Query().Get("sort"))
	if sortKey == "" {
		sortKey = catalog.SortByDistance
	}
	if !sortKey.Valid() {
		respondWithError(w, http.StatusBadRequest, "unknown sort key")
		return
	}

	hospitals, err := h.queryService.Search(r.Context(), filters, sortKey)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to search hospitals")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital handles GET /api/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "hospital id must be an integer")
		return
	}

	hospital, err := h.queryService.GetByID(r.Context(), id)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			respondWithError(w, http.StatusNotFound, "hospital not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}
