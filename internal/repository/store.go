package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/chapel/internal/database"
	"github.com/forgo/chapel/internal/model"
)

// Store errors. Use errors.Is() to check them.
var (
	// ErrStoreUnavailable indicates the document store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreRead indicates a query failed for a reason other than connectivity.
	ErrStoreRead = errors.New("store read error")

	// ErrStoreWrite indicates an insert failed for a reason other than connectivity.
	ErrStoreWrite = errors.New("store write error")
)

// DocumentStore is the generic document access layer
type DocumentStore interface {
	// Insert persists doc in collection and returns the store-assigned identifier
	Insert(ctx context.Context, collection string, doc model.Document) (string, error)

	// Query returns at most limit records whose fields equal every filter entry
	Query(ctx context.Context, collection string, filter model.Filter, limit int) ([]model.Document, error)

	// Ping verifies the store is reachable
	Ping(ctx context.Context) error

	// Collections lists the known collection names in sorted order
	Collections(ctx context.Context) ([]string, error)

	// Name returns the configured store name
	Name() string
}

// classify wraps a database error in the matching store error
func classify(err error, fallback error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrStoreRead) || errors.Is(err, ErrStoreWrite) {
		return err
	}
	if errors.Is(err, database.ErrConnection) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%w: %v", fallback, err)
}

// checkQuery validates the parts of a query that are spliced into store keys or statements
func checkQuery(collection string, filter model.Filter, limit int) error {
	if !isIdentifier(collection) {
		return fmt.Errorf("%w: invalid collection name %q", ErrStoreRead, collection)
	}
	for field := range filter {
		if !isIdentifier(field) {
			return fmt.Errorf("%w: invalid filter field %q", ErrStoreRead, field)
		}
	}
	if limit < 1 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrStoreRead, limit)
	}
	return nil
}
