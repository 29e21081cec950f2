// Package service implements the business logic layer for the Chapel API.
//
// # Content
//
// ContentService turns validated payloads into stored records and stored
// records into transport documents:
//
//	svc := NewContentService(ContentServiceConfig{Store: store, Logger: logger})
//	id, err := svc.Create(ctx, model.EntitySermon, payload)
//	docs, err := svc.List(ctx, model.EntitySermon, model.Filter{"series": "Advent"}, 100)
//
// Create stamps created_at and updated_at on every record. List rejects limits
// outside 1..model.MaxListLimit and filters on fields the entity does not have.
//
// # Normalization
//
// Normalize converts one raw record: the "_id" identifier becomes a string and
// timestamps (time.Time or SurrealDB datetimes) become UTC text such as
// "2024-10-12T18:00:00". List applies it to every record it returns.
//
// # Diagnostics
//
// DiagnosticsService.Report never returns an error. Store failures and panics
// become degraded status strings.
//
// # Repository Interfaces
//
// Services define their own storage interfaces (DocumentRepository,
// StoreInspector), which every repository.DocumentStore satisfies.
package service
