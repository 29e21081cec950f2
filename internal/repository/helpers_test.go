package repository

import (
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/chapel/internal/database"
	"github.com/forgo/chapel/internal/model"
)

func TestIsIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"sermon", true},
		{"is_public", true},
		{"_id", true},
		{"field2", true},
		{"", false},
		{"2field", false},
		{"a-b", false},
		{"series = 'x' OR 1", false},
		{"a:b", false},
	}

	for _, tt := range tests {
		if got := isIdentifier(tt.in); got != tt.want {
			t.Errorf("isIdentifier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConvertSurrealID(t *testing.T) {
	t.Parallel()

	rid := models.RecordID{Table: "event", ID: "k3j2"}

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"string", "event:abc", "event:abc"},
		{"record id", rid, "event:k3j2"},
		{"record id pointer", &rid, "event:k3j2"},
		{"map", map[string]interface{}{"tb": "sermon", "id": "x"}, "sermon:x"},
		{"nil pointer", (*models.RecordID)(nil), ""},
		{"unknown", 42, ""},
	}

	for _, tt := range tests {
		if got := convertSurrealID(tt.in); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestExtractQueryResults(t *testing.T) {
	t.Parallel()

	wrapped := []interface{}{
		map[string]interface{}{"status": "OK", "result": []interface{}{"a", "b"}},
	}
	records, ok := extractQueryResults(wrapped)
	if !ok || len(records) != 2 {
		t.Errorf("expected 2 wrapped records, got %v (%v)", records, ok)
	}

	direct := []interface{}{map[string]interface{}{"title": "x"}}
	records, ok = extractQueryResults(direct)
	if !ok || len(records) != 1 {
		t.Errorf("expected direct array, got %v (%v)", records, ok)
	}

	if _, ok := extractQueryResults("nope"); ok {
		t.Error("expected non-array result to be rejected")
	}
}

func TestExtractTableNames(t *testing.T) {
	t.Parallel()

	legacy := map[string]interface{}{
		"tb": map[string]interface{}{"zeta": "", "alpha": ""},
	}
	names := extractTableNames(legacy)
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("expected [alpha zeta], got %v", names)
	}

	if names := extractTableNames(nil); names != nil {
		t.Errorf("expected nil for missing info, got %v", names)
	}
}

func TestValuesEqual(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, 10, 12, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b interface{}
		want bool
	}{
		{"equal strings", "Advent", "Advent", true},
		{"case differs", "Advent", "advent", false},
		{"bool", true, true, true},
		{"bool vs string", true, "true", false},
		{"same instant", when, when.In(time.FixedZone("X", 3600)), true},
		{"time vs string", when, "2024-10-12T18:00:00", false},
		{"nil both", nil, nil, true},
		{"nil one", nil, "x", false},
		{"slices", []interface{}{"a"}, []interface{}{"a"}, true},
	}

	for _, tt := range tests {
		if got := valuesEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	if err := classify(nil, ErrStoreRead); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := classify(fmt.Errorf("%w: refused", database.ErrConnection), ErrStoreRead); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
	if err := classify(database.ErrQuery, ErrStoreWrite); !errors.Is(err, ErrStoreWrite) {
		t.Errorf("expected ErrStoreWrite, got %v", err)
	}
}

func TestClassifyRedis(t *testing.T) {
	t.Parallel()

	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	if err := classifyRedis(dialErr, ErrStoreRead); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable for dial error, got %v", err)
	}
	if err := classifyRedis(redis.ErrClosed, ErrStoreRead); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable for closed client, got %v", err)
	}
	if err := classifyRedis(errors.New("WRONGTYPE"), ErrStoreWrite); !errors.Is(err, ErrStoreWrite) {
		t.Errorf("expected ErrStoreWrite, got %v", err)
	}
}

func TestRedisDocumentCodec_PreservesTimestamps(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, 10, 12, 18, 0, 0, 500000, time.UTC)
	data, err := encodeRedisDocument(model.Document{
		"title":      "Fall Festival",
		"start_time": when,
		"is_public":  true,
	})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	doc, err := decodeRedisDocument(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	got, ok := doc["start_time"].(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", doc["start_time"])
	}
	if !got.Equal(when) {
		t.Errorf("expected %v, got %v", when, got)
	}
	if doc["is_public"] != true || doc["title"] != "Fall Festival" {
		t.Errorf("unexpected document %v", doc)
	}
}

func TestDecodeRedisDocument_BadDate(t *testing.T) {
	t.Parallel()

	if _, err := decodeRedisDocument([]byte(`{"start_time":{"$date":"yesterday"}}`)); err == nil {
		t.Error("expected error for malformed date")
	}
}
