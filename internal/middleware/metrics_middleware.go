package middleware

import (
	"net/http"
	"time"

	"github.com/bhutuklearning/The-Note-App/internal/metrics"

	"github.com/gorilla/mux"
)

// MetricsMiddleware records request counts and latency. The route template
// ("/api/v1/notes/{id}") is used as the path label so ids do not explode the
// cardinality.
func MetricsMiddleware(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}

			recorder.RecordRequest(r.Method, path, rw.statusCode, time.Since(start))
		})
	}
}
