// Package repository implements the document store adapter for the Chapel API.
//
// Every content type is persisted through the DocumentStore interface, which
// knows only collections, exact-match filters and result limits:
//
//	id, err := store.Insert(ctx, "sermon", doc)
//	docs, err := store.Query(ctx, "sermon", model.Filter{"series": "Advent"}, 100)
//
// # Implementations
//
//   - SurrealStore: SurrealQL over a database.Database (production default)
//   - RedisStore: JSON documents in Redis with a per-collection insertion index
//   - MemoryStore: in-process store for development and tests
//
// # Raw Records
//
// Query returns records in the store's native representation. The identifier
// is always found under "_id" (for SurrealDB a models.RecordID), and timestamps
// keep their native types. Converting them to transport-safe text is the job of
// the service layer.
//
// # Errors
//
// Failures are reported with three sentinel errors:
//
//   - ErrStoreUnavailable: the store cannot be reached
//   - ErrStoreRead: any other failure while querying
//   - ErrStoreWrite: any other failure while inserting
//
// Use errors.Is() to check them; the wrapped message carries the driver's description.
package repository
