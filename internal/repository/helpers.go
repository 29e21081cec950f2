package repository

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/forgo/chapel/internal/model"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isIdentifier reports whether s is safe to use as a collection or field name
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// convertSurrealID renders a SurrealDB record ID as "table:id"
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		// Handle {"tb": "table", "id": "xxx"} format
		tb, _ := v["tb"].(string)
		if idPart, ok := v["id"]; ok && tb != "" {
			return fmt.Sprintf("%s:%v", tb, idPart)
		}
	}
	return ""
}

// extractQueryResults extracts the record array from a SurrealDB response
func extractQueryResults(result interface{}) ([]interface{}, bool) {
	results, ok := result.([]interface{})
	if !ok {
		return nil, false
	}
	if len(results) == 0 {
		return results, true
	}
	if firstResult, ok := results[0].(map[string]interface{}); ok {
		if _, wrapped := firstResult["status"]; wrapped {
			resultArray, ok := firstResult["result"].([]interface{})
			if !ok && firstResult["result"] == nil {
				return []interface{}{}, true
			}
			return resultArray, ok
		}
	}
	// Direct array format
	return results, true
}

// extractTableNames reads table names out of an INFO FOR DB result
func extractTableNames(info interface{}) []string {
	data, ok := info.(map[string]interface{})
	if !ok {
		return nil
	}

	tables, ok := data["tables"].(map[string]interface{})
	if !ok {
		// Older servers report tables under "tb"
		tables, ok = data["tb"].(map[string]interface{})
		if !ok {
			return nil
		}
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// matchesFilter reports whether every filter entry equals the document field
func matchesFilter(doc model.Document, filter model.Filter) bool {
	for field, want := range filter {
		got, ok := doc[field]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// valuesEqual compares stored and filter values, treating times by instant
func valuesEqual(a, b interface{}) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() || !ra.Type().Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// copyDocument returns a shallow copy of doc
func copyDocument(doc model.Document) model.Document {
	out := make(model.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// sortedKeys returns the filter fields in a stable order
func sortedKeys(filter model.Filter) []string {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
