package handlers

import (
	"net/http"

	"github.com/synergyhealth/hospital-discovery/internal/assistant"
)

// PrescriptionHandler handles prescription image extraction requests
type PrescriptionHandler struct {
	service *assistant.Service
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(service *assistant.Service) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

// ExtractPrescription handles POST /api/prescriptions/extract. The response
// always has the prescription shape; unreadable uploads come back with
// empty fields rather than an error (the pharmacy flow lets the patient
// fill in the gaps).
func (h *PrescriptionHandler) ExtractPrescription(w http.ResponseWriter, r *http.Request) {
	image, ok := readImageUpload(w, r)
	if !ok {
		return
	}

	prescription := h.service.ExtractPrescription(r.Context(), image)
	respondWithJSON(w, http.StatusOK, prescription)
}
