package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/forgo/chapel/internal/model"
)

// DocumentRepository defines the document storage used by ContentService
type DocumentRepository interface {
	Insert(ctx context.Context, collection string, doc model.Document) (string, error)
	Query(ctx context.Context, collection string, filter model.Filter, limit int) ([]model.Document, error)
}

// ContentServiceConfig holds dependencies for ContentService
type ContentServiceConfig struct {
	Store  DocumentRepository
	Logger *slog.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

// ContentService validates, stores and lists content of every entity
type ContentService struct {
	store  DocumentRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewContentService creates a new content service
func NewContentService(cfg ContentServiceConfig) *ContentService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &ContentService{
		store:  cfg.Store,
		logger: logger,
		now:    now,
	}
}

// List returns at most limit normalized records of entity matching filter.
// Filter fields must belong to the entity's schema.
func (s *ContentService) List(ctx context.Context, entity model.Entity, filter model.Filter, limit int) ([]model.Document, error) {
	schema, ok := model.SchemaFor(entity)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownEntity, entity)
	}

	var fieldErrors []model.FieldError
	if limit < 1 || limit > model.MaxListLimit {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "limit",
			Message: fmt.Sprintf("must be between 1 and %d", model.MaxListLimit),
		})
	}
	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if _, ok := schema.Field(field); !ok {
			fieldErrors = append(fieldErrors, model.FieldError{Field: field, Message: "unknown filter field"})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, &model.ValidationError{Entity: entity, Fields: fieldErrors}
	}

	raw, err := s.store.Query(ctx, entity.Collection(), filter, limit)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(raw), nil
}

// Create validates payload against the entity's schema, stamps it and stores it
func (s *ContentService) Create(ctx context.Context, entity model.Entity, payload map[string]interface{}) (string, error) {
	schema, ok := model.SchemaFor(entity)
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnknownEntity, entity)
	}

	doc, err := schema.Validate(payload)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	doc[model.FieldCreatedAt] = now
	doc[model.FieldUpdatedAt] = now

	id, err := s.store.Insert(ctx, entity.Collection(), doc)
	if err != nil {
		return "", err
	}

	s.logger.DebugContext(ctx, "record created",
		slog.String("entity", entity.String()),
		slog.String("id", id),
	)
	return id, nil
}

// SubmitContact stores a contact form message
func (s *ContentService) SubmitContact(ctx context.Context, payload map[string]interface{}) error {
	_, err := s.Create(ctx, model.EntityContactMessage, payload)
	return err
}
