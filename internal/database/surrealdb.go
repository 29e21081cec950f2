package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/surrealdb/surrealdb.go"
)

// conn is the part of the SurrealDB client used by SurrealDB
type conn interface {
	Query(ctx context.Context, query string, vars map[string]interface{}) (*[]surrealdb.QueryResult[interface{}], error)
	Version(ctx context.Context) error
	Close(ctx context.Context) error
}

// dialFunc opens an authenticated connection scoped to the configured namespace and database
type dialFunc func(ctx context.Context, cfg Config) (conn, error)

// SurrealDB implements the Database interface for SurrealDB.
// The connection is opened on first use and reopened after transport failures.
type SurrealDB struct {
	mu     sync.Mutex
	db     conn
	dial   dialFunc
	config Config
}

// NewSurrealDB creates a new SurrealDB instance
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
		dial:   dialSurreal,
	}
}

// Connect establishes a connection to SurrealDB. It is a no-op when already connected.
func (s *SurrealDB) Connect(ctx context.Context) error {
	_, err := s.conn(ctx)
	return err
}

// conn returns the open connection, dialing when there is none
func (s *SurrealDB) conn(ctx context.Context) (conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}
	if s.config.URL == "" {
		return nil, fmt.Errorf("%w: no endpoint configured", ErrConnection)
	}

	db, err := s.dial(ctx, s.config)
	if err != nil {
		return nil, err
	}
	s.db = db
	return db, nil
}

// reset drops db if it is still the current connection so the next call redials
func (s *SurrealDB) reset(db conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == db {
		_ = db.Close(context.Background())
		s.db = nil
	}
}

// Close closes the database connection
func (s *SurrealDB) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close(context.Background())
	s.db = nil
	return err
}

// Name returns the configured database name
func (s *SurrealDB) Name() string {
	return s.config.Database
}

// Ping checks the database connection
func (s *SurrealDB) Ping(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Version(ctx); err != nil {
		s.reset(db)
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query executes a query and returns results
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	results, err := db.Query(ctx, query, vars)
	if err != nil {
		if isTransportError(err) {
			s.reset(db)
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

// QueryOne executes a query and returns a single result
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	// Unwrap the response wrapper {status: "OK", result: [...]}
	first := results[0]
	if resp, ok := first.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, ErrNotFound
				}
				return resultData[0], nil
			}
			// Result is not an array, return as-is (e.g. INFO FOR DB)
			return resp["result"], nil
		}
	}

	return first, nil
}

// Execute runs a query without returning results
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// isTransportError reports whether err means the connection itself failed,
// as opposed to the server rejecting the statement.
func isTransportError(err error) bool {
	var qerr *surrealdb.QueryError
	if errors.As(err, &qerr) {
		return false
	}

	var nerr net.Error
	if errors.As(err, &nerr) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// The websocket driver reports these as plain errors.
	msg := err.Error()
	return strings.Contains(msg, "connection is closed") ||
		strings.Contains(msg, "response channel closed") ||
		strings.Contains(msg, "websocket: close")
}

// surrealConn adapts *surrealdb.DB to conn
type surrealConn struct {
	db *surrealdb.DB
}

func (c surrealConn) Query(ctx context.Context, query string, vars map[string]interface{}) (*[]surrealdb.QueryResult[interface{}], error) {
	return surrealdb.Query[interface{}](ctx, c.db, query, vars)
}

func (c surrealConn) Version(ctx context.Context) error {
	_, err := c.db.Version(ctx)
	return err
}

func (c surrealConn) Close(ctx context.Context) error {
	return c.db.Close(ctx)
}

func dialSurreal(ctx context.Context, cfg Config) (conn, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if cfg.User != "" {
		_, err = db.SignIn(ctx, &surrealdb.Auth{
			Username: cfg.User,
			Password: cfg.Password,
		})
		if err != nil {
			_ = db.Close(ctx)
			return nil, fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
		}
	}

	// Use namespace and database
	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	return surrealConn{db: db}, nil
}
