// Package database provides the SurrealDB client used by the document store.
//
// This package defines the Database interface that abstracts SurrealDB operations,
// allowing the repository layer to be exercised against a real server or a stub.
//
// # Interface Design
//
// The Database interface provides three query methods:
//   - Query: Returns the raw statement responses ({status, result} maps)
//   - QueryOne: Returns the first record of the first statement
//   - Execute: No return value (for mutations)
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrConnection) {
//	    // Store unreachable
//	}
//
// # Usage Example
//
//	db := database.NewSurrealDB(cfg)
//	db.Connect(ctx)
//	defer db.Close()
//
//	result, err := db.Query(ctx, "SELECT * FROM type::table($tb) LIMIT 10", map[string]interface{}{"tb": "sermon"})
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error

	// Name returns the configured database name
	Name() string
}

// Config holds database configuration
type Config struct {
	URL       string
	User      string
	Password  string
	Namespace string
	Database  string
}
