package handler

import (
	"log/slog"
	"net/http"

	"github.com/forgo/chapel/internal/middleware"
)

// ErrorHandlerFunc is an HTTP handler that reports failures by returning them
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.HandlerFunc. A returned error is logged and written
// as problem details; nothing else in the package writes error responses.
func Handle(fn ErrorHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		pd := MapServiceError(err)
		attrs := []interface{}{
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", pd.Status),
			slog.String("error", err.Error()),
		}
		if pd.Status >= http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "request failed", attrs...)
		} else {
			slog.DebugContext(r.Context(), "request rejected", attrs...)
		}

		pd.Instance = r.URL.Path
		WriteError(w, pd)
	}
}
