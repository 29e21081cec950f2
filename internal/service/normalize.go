package service

import (
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/chapel/internal/model"
)

// Normalize converts a raw store record into its transport form.
// The identifier becomes a string and every timestamp becomes UTC ISO-8601 text.
// Other values pass through unchanged and no field is dropped.
func Normalize(raw model.Document) model.Document {
	if raw == nil {
		return nil
	}

	out := make(model.Document, len(raw))
	for k, v := range raw {
		if k == model.FieldID {
			out[k] = identifierString(v)
			continue
		}
		out[k] = normalizeValue(v)
	}
	return out
}

// NormalizeAll applies Normalize to every record, never returning nil
func NormalizeAll(raw []model.Document) []model.Document {
	out := make([]model.Document, 0, len(raw))
	for _, doc := range raw {
		out = append(out, Normalize(doc))
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return model.FormatTimestamp(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return model.FormatTimestamp(*t)
	case models.CustomDateTime:
		return model.FormatTimestamp(t.Time)
	case *models.CustomDateTime:
		if t == nil {
			return nil
		}
		return model.FormatTimestamp(t.Time)
	}
	return v
}

// identifierString renders a native store identifier as text
func identifierString(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(id)
}
