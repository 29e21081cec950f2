package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/forgo/chapel/internal/model"
)

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Requests int           // Requests per window per client IP (default 100)
	Window   time.Duration // Time window (default 1 minute)
}

// RateLimit limits requests per client IP using a sliding window counter.
// Rejected requests get a 429 problem document with Retry-After set.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.Requests <= 0 {
		cfg.Requests = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}

	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
			if err != nil || retryAfter <= 0 {
				retryAfter = int(cfg.Window.Seconds())
			}
			model.NewRateLimitError(retryAfter).WriteJSON(w)
		}),
	)
}
