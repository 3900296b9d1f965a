package routes

import (
	"net/http"

	"github.com/synergyhealth/hospital-discovery/internal/api/handlers"
	"github.com/synergyhealth/hospital-discovery/internal/api/middleware"
	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/observability"
)

// Router wires handlers into the HTTP mux
type Router struct {
	mux *http.ServeMux

	hospitalHandler     *handlers.HospitalHandler
	rankingHandler      *handlers.RankingHandler
	assistantHandler    *handlers.AssistantHandler
	prescriptionHandler *handlers.PrescriptionHandler
	analyticsHandler    *handlers.AnalyticsHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	rankingHandler *handlers.RankingHandler,
	assistantHandler *handlers.AssistantHandler,
	prescriptionHandler *handlers.PrescriptionHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	r := &Router{
		mux:                 http.NewServeMux(),
		hospitalHandler:     hospitalHandler,
		rankingHandler:      rankingHandler,
		assistantHandler:    assistantHandler,
		prescriptionHandler: prescriptionHandler,
		analyticsHandler:    analyticsHandler,
		cacheMiddleware:     cacheMiddleware,
		metrics:             metrics,
	}
	r.register()
	return r
}

func (r *Router) register() {
	r.mux.HandleFunc("GET /api/hospitals/search", r.hospitalHandler.SearchHospitals)
	r.mux.HandleFunc("GET /api/hospitals/{id}", r.hospitalHandler.GetHospital)
	r.mux.HandleFunc("POST /api/hospitals/rank", r.rankingHandler.RankHospitals)

	r.mux.HandleFunc("POST /api/assistant/chat", r.assistantHandler.Chat)
	r.mux.HandleFunc("POST /api/assistant/emergency-guidance", r.assistantHandler.EmergencyGuidance)
	r.mux.HandleFunc("POST /api/assistant/summarize", r.assistantHandler.SummarizeDocument)

	r.mux.HandleFunc("POST /api/prescriptions/extract", r.prescriptionHandler.ExtractPrescription)

	r.mux.HandleFunc("GET /api/analytics/searches", r.analyticsHandler.SearchStats)

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
}

// Handler returns the fully-wrapped HTTP handler
func (r *Router) Handler() http.Handler {
	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	handler = middleware.CORSMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.MetricsMiddleware(r.metrics)(handler)
	return handler
}
