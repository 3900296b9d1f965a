package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/synergyhealth/hospital-discovery/internal/assistant"
	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
)

// maxUploadBytes bounds document and prescription image uploads.
const maxUploadBytes = 8 << 20

// AssistantHandler handles conversational and document AI requests
type AssistantHandler struct {
	service *assistant.Service
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(service *assistant.Service) *AssistantHandler {
	return &AssistantHandler{service: service}
}

type chatRequest struct {
	Messages []entities.ChatMessage `json:"messages"`
}

// Chat handles POST /api/assistant/chat
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		respondWithError(w, http.StatusBadRequest, "messages are required")
		return
	}

	reply := h.service.Chat(r.Context(), req.Messages)
	respondWithJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// EmergencyGuidance handles POST /api/assistant/emergency-guidance
func (h *AssistantHandler) EmergencyGuidance(w http.ResponseWriter, r *http.Request) {
	var req entities.EmergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Nature == "" {
		respondWithError(w, http.StatusBadRequest, "nature of the emergency is required")
		return
	}

	guidance := h.service.EmergencyGuidance(r.Context(), req)
	respondWithJSON(w, http.StatusOK, map[string]string{"guidance": guidance})
}

// SummarizeDocument handles POST /api/assistant/summarize (multipart image)
func (h *AssistantHandler) SummarizeDocument(w http.ResponseWriter, r *http.Request) {
	image, ok := readImageUpload(w, r)
	if !ok {
		return
	}

	summary := h.service.SummarizeDocument(r.Context(), image)
	respondWithJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// readImageUpload extracts the "image" part of a multipart upload. It
// writes the error response itself and reports success via ok.
func readImageUpload(w http.ResponseWriter, r *http.Request) (providers.ImagePart, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart upload")
		return providers.ImagePart{}, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "image file is required")
		return providers.ImagePart{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read image")
		return providers.ImagePart{}, false
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return providers.ImagePart{MIMEType: mimeType, Data: data}, true
}
