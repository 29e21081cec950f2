package handler

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/forgo/chapel/internal/model"
)

// ContentService defines the content operations the handlers need
type ContentService interface {
	List(ctx context.Context, entity model.Entity, filter model.Filter, limit int) ([]model.Document, error)
	Create(ctx context.Context, entity model.Entity, payload map[string]interface{}) (string, error)
	SubmitContact(ctx context.Context, payload map[string]interface{}) error
}

// filterBuilder turns list query parameters into a store filter
type filterBuilder func(q url.Values) (model.Filter, error)

// route describes one listable and creatable content collection
type route struct {
	entity       model.Entity
	path         string
	defaultLimit int
	filter       filterBuilder
}

var contentRoutes = []route{
	{entity: model.EntityEvent, path: "/api/events", defaultLimit: model.DefaultEventLimit},
	{entity: model.EntitySermon, path: "/api/sermons", defaultLimit: model.DefaultListLimit, filter: equalityFilter("series", "speaker")},
	{entity: model.EntityLifeGroup, path: "/api/life-groups", defaultLimit: model.DefaultListLimit},
	{entity: model.EntityGalleryItem, path: "/api/gallery", defaultLimit: model.DefaultListLimit, filter: equalityFilter("album")},
	{entity: model.EntityPrayerRequest, path: "/api/prayers", defaultLimit: model.DefaultListLimit, filter: publicOnlyFilter},
}

// ContentHandler serves list and create endpoints for every content type
type ContentHandler struct {
	svc ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(svc ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// RegisterRoutes registers content routes
func (h *ContentHandler) RegisterRoutes(mux *http.ServeMux) {
	for _, rt := range contentRoutes {
		mux.Handle("GET "+rt.path, Handle(h.list(rt)))
		mux.Handle("POST "+rt.path, Handle(h.create(rt)))
	}
	mux.Handle("POST /api/contact", Handle(h.SubmitContact))
}

// list handles GET on a content collection
func (h *ContentHandler) list(rt route) ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		q := r.URL.Query()

		limit, err := parseLimit(rt.entity, q, rt.defaultLimit)
		if err != nil {
			return err
		}

		var filter model.Filter
		if rt.filter != nil {
			if filter, err = rt.filter(q); err != nil {
				return err
			}
		}

		docs, err := h.svc.List(r.Context(), rt.entity, filter, limit)
		if err != nil {
			return err
		}

		WriteJSON(w, http.StatusOK, docs)
		return nil
	}
}

// create handles POST on a content collection
func (h *ContentHandler) create(rt route) ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		payload, err := DecodePayload(r)
		if err != nil {
			return err
		}

		id, err := h.svc.Create(r.Context(), rt.entity, payload)
		if err != nil {
			return err
		}

		w.Header().Set("Location", path.Join(rt.path, url.PathEscape(id)))
		WriteJSON(w, http.StatusCreated, model.CreatedResponse{ID: id})
		return nil
	}
}

// SubmitContact handles POST /api/contact
func (h *ContentHandler) SubmitContact(w http.ResponseWriter, r *http.Request) error {
	payload, err := DecodePayload(r)
	if err != nil {
		return err
	}

	if err := h.svc.SubmitContact(r.Context(), payload); err != nil {
		return err
	}

	WriteJSON(w, http.StatusAccepted, model.AcceptedResponse{Status: "received"})
	return nil
}

// parseLimit reads the limit query parameter, falling back to def when absent
func parseLimit(entity model.Entity, q url.Values, def int) (int, error) {
	raw := q.Get("limit")
	if raw == "" {
		return def, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > model.MaxListLimit {
		return 0, &model.ValidationError{
			Entity: entity,
			Fields: []model.FieldError{{
				Field:   "limit",
				Message: "must be an integer between 1 and " + strconv.Itoa(model.MaxListLimit),
			}},
		}
	}
	return limit, nil
}

// equalityFilter maps each non-empty query parameter in fields to an exact-match entry
func equalityFilter(fields ...string) filterBuilder {
	return func(q url.Values) (model.Filter, error) {
		filter := model.Filter{}
		for _, f := range fields {
			if v := q.Get(f); v != "" {
				filter[f] = v
			}
		}
		return filter, nil
	}
}

// publicOnlyFilter restricts prayer requests to public ones unless public_only is false
func publicOnlyFilter(q url.Values) (model.Filter, error) {
	publicOnly := true
	if raw := q.Get("public_only"); raw != "" {
		v, ok := model.ParseBoolParam(raw)
		if !ok {
			return nil, &model.ValidationError{
				Entity: model.EntityPrayerRequest,
				Fields: []model.FieldError{{Field: "public_only", Message: model.MsgMustBeBool}},
			}
		}
		publicOnly = v
	}

	if !publicOnly {
		return model.Filter{}, nil
	}
	return model.Filter{"is_public": true}, nil
}
