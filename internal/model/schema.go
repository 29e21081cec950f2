package model

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

// FieldType is the semantic type of a schema field
type FieldType int

const (
	FieldString FieldType = iota
	FieldTimestamp
	FieldBool
	FieldURL
)

// String returns the name of the field type
func (t FieldType) String() string {
	switch t {
	case FieldString:
		return "string"
	case FieldTimestamp:
		return "timestamp"
	case FieldBool:
		return "boolean"
	case FieldURL:
		return "url"
	}
	return "unknown"
}

// FieldDef describes one field of a content type
type FieldDef struct {
	Name        string
	Type        FieldType
	Required    bool
	Default     interface{}
	Enum        []string
	Description string
}

// Schema is the ordered field list of one entity
type Schema struct {
	Entity Entity
	Fields []FieldDef
}

// Validation messages
const (
	MsgFieldRequired    = "field required"
	MsgMustBeString     = "must be a string"
	MsgMustBeBool       = "must be a boolean"
	MsgMustBeTimestamp  = "must be a timestamp"
	MsgInvalidTimestamp = "invalid timestamp"
	MsgInvalidURL       = "must be a valid absolute http(s) URL"
)

var schemas = map[Entity]*Schema{
	EntityEvent: {
		Entity: EntityEvent,
		Fields: []FieldDef{
			{Name: "title", Type: FieldString, Required: true, Description: "Event title"},
			{Name: "description", Type: FieldString, Required: true, Description: "Short description of the event"},
			{Name: "date", Type: FieldTimestamp, Required: true, Description: "Event date and time"},
			{Name: "image_url", Type: FieldURL, Description: "Image representing the event"},
			{Name: "category", Type: FieldString, Required: true, Description: "Type of event, e.g. Outreach, Youth, Worship"},
		},
	},
	EntitySermon: {
		Entity: EntitySermon,
		Fields: []FieldDef{
			{Name: "title", Type: FieldString, Required: true, Description: "Sermon title"},
			{Name: "speaker", Type: FieldString, Required: true, Description: "Speaker name"},
			{Name: "series", Type: FieldString, Description: "Series name if applicable"},
			{Name: "date", Type: FieldTimestamp, Required: true, Description: "Sermon date"},
			{Name: "video_url", Type: FieldURL, Description: "Link to video recording"},
			{Name: "audio_url", Type: FieldURL, Description: "Link to audio recording"},
			{Name: "notes", Type: FieldString, Description: "Written notes or link to transcript"},
		},
	},
	EntityLifeGroup: {
		Entity: EntityLifeGroup,
		Fields: []FieldDef{
			{Name: "name", Type: FieldString, Required: true, Description: "Group name"},
			{Name: "leader", Type: FieldString, Required: true, Description: "Leader name"},
			{Name: "meeting_day", Type: FieldString, Required: true, Description: "Day of week the group meets"},
			{Name: "meeting_time", Type: FieldString, Required: true, Description: "Time the group meets"},
			{Name: "location", Type: FieldString, Required: true, Description: "Location or area"},
			{Name: "description", Type: FieldString, Description: "Short overview of the group focus"},
			{Name: "signup_url", Type: FieldURL, Description: "External sign-up link if any"},
		},
	},
	EntityPrayerRequest: {
		Entity: EntityPrayerRequest,
		Fields: []FieldDef{
			{Name: "name", Type: FieldString, Description: "Name of the person requesting prayer"},
			{Name: "email", Type: FieldString, Description: "Contact email"},
			{Name: "request", Type: FieldString, Required: true, Description: "Prayer request details"},
			{Name: "is_public", Type: FieldBool, Default: false, Description: "If true, can be displayed to others"},
		},
	},
	EntityGalleryItem: {
		Entity: EntityGalleryItem,
		Fields: []FieldDef{
			{Name: "title", Type: FieldString, Required: true, Description: "Caption or title"},
			{Name: "media_type", Type: FieldString, Required: true, Enum: []string{MediaTypePhoto, MediaTypeVideo}, Description: "photo or video"},
			{Name: "url", Type: FieldURL, Required: true, Description: "Media URL"},
			{Name: "album", Type: FieldString, Description: "Album name: services, missions, events, etc."},
		},
	},
	EntityContactMessage: {
		Entity: EntityContactMessage,
		Fields: []FieldDef{
			{Name: "name", Type: FieldString, Required: true},
			{Name: "email", Type: FieldString, Required: true},
			{Name: "message", Type: FieldString, Required: true},
		},
	},
}

// Gallery media types
const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
)

// SchemaFor returns the schema registered for an entity
func SchemaFor(e Entity) (*Schema, bool) {
	s, ok := schemas[e]
	return s, ok
}

// Field returns the definition of the named field
func (s *Schema) Field(name string) (FieldDef, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Validate checks payload against the schema and returns the document to store.
// Fields not in the schema are dropped. Absent optional fields without a default are omitted.
func (s *Schema) Validate(payload map[string]interface{}) (Document, error) {
	doc := make(Document, len(s.Fields))
	var fieldErrors []FieldError

	for _, f := range s.Fields {
		raw, present := payload[f.Name]
		if !present || raw == nil {
			if f.Required {
				fieldErrors = append(fieldErrors, FieldError{Field: f.Name, Message: MsgFieldRequired})
			} else if f.Default != nil {
				doc[f.Name] = f.Default
			}
			continue
		}

		value, msg := coerce(f, raw)
		if msg != "" {
			fieldErrors = append(fieldErrors, FieldError{Field: f.Name, Message: msg})
			continue
		}
		doc[f.Name] = value
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Entity: s.Entity, Fields: fieldErrors}
	}
	return doc, nil
}

func coerce(f FieldDef, raw interface{}) (interface{}, string) {
	switch f.Type {
	case FieldString:
		s, ok := raw.(string)
		if !ok {
			return nil, MsgMustBeString
		}
		if len(f.Enum) > 0 && !contains(f.Enum, s) {
			return nil, "must be one of: " + strings.Join(f.Enum, ", ")
		}
		return s, ""

	case FieldURL:
		s, ok := raw.(string)
		if !ok {
			return nil, MsgMustBeString
		}
		if !isHTTPURL(s) {
			return nil, MsgInvalidURL
		}
		return s, ""

	case FieldBool:
		switch v := raw.(type) {
		case bool:
			return v, ""
		case string:
			if b, ok := ParseBoolParam(v); ok {
				return b, ""
			}
		case json.Number:
			if b, ok := ParseBoolParam(v.String()); ok {
				return b, ""
			}
		case float64:
			if v == 0 || v == 1 {
				return v == 1, ""
			}
		}
		return nil, MsgMustBeBool

	case FieldTimestamp:
		switch v := raw.(type) {
		case string:
			t, err := ParseTimestamp(v)
			if err != nil || !inTimestampRange(t) {
				return nil, MsgInvalidTimestamp
			}
			return t, ""
		case json.Number:
			secs, err := v.Float64()
			if err != nil {
				return nil, MsgInvalidTimestamp
			}
			t, ok := unixTime(secs)
			if !ok {
				return nil, MsgInvalidTimestamp
			}
			return t, ""
		case float64:
			t, ok := unixTime(v)
			if !ok {
				return nil, MsgInvalidTimestamp
			}
			return t, ""
		case time.Time:
			if !inTimestampRange(v) {
				return nil, MsgInvalidTimestamp
			}
			return v.UTC(), ""
		}
		return nil, MsgMustBeTimestamp
	}
	return nil, fmt.Sprintf("unsupported field type %s", f.Type)
}

// Timestamps must render as four-digit years.
var (
	minTimestamp = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxTimestamp = time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func inTimestampRange(t time.Time) bool {
	return !t.Before(minTimestamp) && t.Before(maxTimestamp)
}

// unixTime converts Unix seconds to a UTC time, reporting false for values
// that are not finite or fall outside years 0001..9999.
func unixTime(secs float64) (time.Time, bool) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return time.Time{}, false
	}
	if secs < float64(minTimestamp.Unix()) || secs >= float64(maxTimestamp.Unix()) {
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), true
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// ParseBoolParam parses the boolean spellings accepted in query strings and payloads
func ParseBoolParam(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on", "t", "y":
		return true, true
	case "false", "0", "no", "off", "f", "n":
		return false, true
	}
	return false, false
}
