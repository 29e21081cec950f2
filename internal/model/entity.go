package model

import (
	"fmt"
	"time"
)

// Entity identifies one of the content types served by the API
type Entity int

const (
	EntityEvent Entity = iota + 1
	EntitySermon
	EntityLifeGroup
	EntityPrayerRequest
	EntityGalleryItem
	EntityContactMessage
)

// Entities lists every entity in registration order
var Entities = []Entity{
	EntityEvent,
	EntitySermon,
	EntityLifeGroup,
	EntityPrayerRequest,
	EntityGalleryItem,
	EntityContactMessage,
}

type entityInfo struct {
	name       string
	collection string
}

// Collection names are the lowercase type names.
var entityTable = map[Entity]entityInfo{
	EntityEvent:          {name: "Event", collection: "event"},
	EntitySermon:         {name: "Sermon", collection: "sermon"},
	EntityLifeGroup:      {name: "LifeGroup", collection: "lifegroup"},
	EntityPrayerRequest:  {name: "PrayerRequest", collection: "prayerrequest"},
	EntityGalleryItem:    {name: "GalleryItem", collection: "galleryitem"},
	EntityContactMessage: {name: "ContactMessage", collection: "contactmessage"},
}

// String returns the type name of the entity
func (e Entity) String() string {
	if info, ok := entityTable[e]; ok {
		return info.name
	}
	return fmt.Sprintf("Entity(%d)", int(e))
}

// Collection returns the document store collection holding records of this entity
func (e Entity) Collection() string {
	return entityTable[e].collection
}

// Valid reports whether e is a known entity
func (e Entity) Valid() bool {
	_, ok := entityTable[e]
	return ok
}

// Document is a single record as exchanged with the document store
type Document map[string]interface{}

// Filter maps field names to exact-match values
type Filter map[string]interface{}

// Fields stamped on every record at insert time
const (
	FieldID        = "_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// List limits
const (
	DefaultEventLimit = 50
	DefaultListLimit  = 100
	MaxListLimit      = 1000
)

// CreatedResponse is returned after a successful insert
type CreatedResponse struct {
	ID string `json:"id"`
}

// AcceptedResponse is returned for submissions that are stored without further processing
type AcceptedResponse struct {
	Status string `json:"status"`
}

// MessageResponse is a plain informational payload
type MessageResponse struct {
	Message string `json:"message"`
}

// Diagnostics describes store reachability for the /test endpoint
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Diagnostics presentation limits
const (
	MaxDiagnosticCollections = 10
	MaxDiagnosticErrorLength = 50
)

// Timestamp formats accepted for timestamp fields. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a timestamp in any of the accepted layouts
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// FormatTimestamp renders t in ISO-8601 form in UTC without a zone suffix.
// Microseconds are included only when non-zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 != 0 {
		return t.Format("2006-01-02T15:04:05.000000")
	}
	return t.Format("2006-01-02T15:04:05")
}
