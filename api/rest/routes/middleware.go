package routes

import (
	"net/http"

	"mvp-orchestrator/logging"

	"github.com/google/uuid"
)

// RequestID tags each request with a generated id, echoed in the response
// header and attached to the request log line.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		logging.Info("request", "requestId", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
