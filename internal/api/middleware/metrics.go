package middleware

import (
	"net/http"
	"time"

	"github.com/synergyhealth/hospital-discovery/internal/infrastructure/observability"
)

// MetricsMiddleware records request count and duration. metrics may be
// nil, in which case the handler chain is returned untouched.
func MetricsMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if metrics == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			observability.RecordRequestMetric(r.Context(), metrics, r.Method, r.URL.Path, rw.statusCode, time.Since(start))
		})
	}
}
