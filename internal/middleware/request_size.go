package middleware

import (
	"net/http"

	"github.com/forgo/chapel/internal/model"
)

// RequestSizeLimit caps request bodies at maxBytes. Declared oversize bodies are
// rejected up front; others fail when the handler reads past the limit.
func RequestSizeLimit(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				model.NewPayloadTooLargeError(maxBytes).WriteJSON(w)
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
