// Package middleware provides HTTP middleware for the Chapel API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: structured access log via slog
//   - Recovery: converts panics into a 500 problem document
//   - CORS: origin allow list
//   - RateLimit: per-IP sliding window limit (go-chi/httprate)
//   - RequestSizeLimit: request body cap
//   - Compress: gzip responses
//
// # Composition
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	)
//
// Chain applies middleware so the first listed runs first.
//
// # Context Values
//
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
