// Package handler provides HTTP request handlers for the Chapel API.
//
// # Routes
//
// Every listable content type is described by one entry of a route table
// (entity, path, default limit, filter builder), and gets a GET and a POST:
//
//	GET  /api/sermons?series=Advent&limit=10
//	POST /api/sermons
//
// Contact messages are write only (POST /api/contact, 202). GET /test reports
// store diagnostics and always answers 200.
//
// # Error Handling
//
// Content handlers return an error instead of writing one. Handle adapts them
// to http.HandlerFunc, logs the failure and writes the RFC 9457 document built
// by MapServiceError:
//
//   - *model.ValidationError: 422 with the offending fields
//   - ErrInvalidBody: 400
//   - repository store errors: 500 with the driver message truncated
//
// # Example Usage
//
//	mux := handler.NewRouter(contentService, diagnosticsService)
//	http.ListenAndServe(":8000", mux)
package handler
