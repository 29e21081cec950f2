package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgo/chapel/internal/database"
	"github.com/forgo/chapel/internal/model"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// SurrealStore implements DocumentStore on top of SurrealDB
type SurrealStore struct {
	db database.Database
}

// NewSurrealStore creates a new SurrealDB document store
func NewSurrealStore(db database.Database) *SurrealStore {
	return &SurrealStore{db: db}
}

// Name returns the configured database name
func (s *SurrealStore) Name() string {
	return s.db.Name()
}

// Ping checks the database connection
func (s *SurrealStore) Ping(ctx context.Context) error {
	return classify(s.db.Ping(ctx), ErrStoreRead)
}

// Insert creates a record in collection and returns its record ID
func (s *SurrealStore) Insert(ctx context.Context, collection string, doc model.Document) (string, error) {
	if !isIdentifier(collection) {
		return "", fmt.Errorf("%w: invalid collection name %q", ErrStoreWrite, collection)
	}

	content := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if k == model.FieldID || k == "id" {
			continue
		}
		content[k] = toSurrealValue(v)
	}

	query := `CREATE type::table($collection) CONTENT $content`
	vars := map[string]interface{}{
		"collection": collection,
		"content":    content,
	}

	result, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return "", classify(err, ErrStoreWrite)
	}

	records, ok := extractQueryResults(result)
	if !ok || len(records) == 0 {
		return "", fmt.Errorf("%w: no record returned", ErrStoreWrite)
	}
	created, ok := records[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%w: unexpected result format", ErrStoreWrite)
	}

	id := convertSurrealID(created["id"])
	if id == "" {
		return "", fmt.Errorf("%w: created record has no id", ErrStoreWrite)
	}
	return id, nil
}

// Query selects records from collection matching every filter entry
func (s *SurrealStore) Query(ctx context.Context, collection string, filter model.Filter, limit int) ([]model.Document, error) {
	if err := checkQuery(collection, filter, limit); err != nil {
		return nil, err
	}

	vars := map[string]interface{}{
		"collection": collection,
	}

	var conditions []string
	for i, field := range sortedKeys(filter) {
		param := fmt.Sprintf("f%d", i)
		conditions = append(conditions, fmt.Sprintf("%s = $%s", field, param))
		vars[param] = toSurrealValue(filter[field])
	}

	query := "SELECT * FROM type::table($collection)"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	result, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return nil, classify(err, ErrStoreRead)
	}

	records, ok := extractQueryResults(result)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result format", ErrStoreRead)
	}

	docs := make([]model.Document, 0, len(records))
	for _, r := range records {
		data, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		doc := make(model.Document, len(data))
		for k, v := range data {
			if k == "id" {
				doc[model.FieldID] = v
				continue
			}
			doc[k] = v
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Collections lists the tables defined in the database
func (s *SurrealStore) Collections(ctx context.Context) ([]string, error) {
	info, err := s.db.QueryOne(ctx, "INFO FOR DB", nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return []string{}, nil
		}
		return nil, classify(err, ErrStoreRead)
	}
	names := extractTableNames(info)
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// toSurrealValue converts Go values that SurrealDB would otherwise store as plain numbers or strings
func toSurrealValue(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return models.CustomDateTime{Time: t.UTC()}
	case *time.Time:
		if t == nil {
			return nil
		}
		return models.CustomDateTime{Time: t.UTC()}
	}
	return v
}
