package service

import (
	"testing"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/chapel/internal/model"
)

func TestNormalize_ConvertsIdentifierAndTimestamps(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 10, 12, 18, 0, 0, 0, time.UTC)
	created := time.Date(2024, 10, 1, 9, 30, 15, 250000000, time.UTC)

	raw := model.Document{
		model.FieldID: models.RecordID{Table: "event", ID: "k3j2"},
		"title":       "Fall Festival",
		"date":        models.CustomDateTime{Time: date},
		"created_at":  created,
		"is_public":   true,
	}

	got := Normalize(raw)

	if got[model.FieldID] != "event:k3j2" {
		t.Errorf("expected id event:k3j2, got %v", got[model.FieldID])
	}
	if got["date"] != "2024-10-12T18:00:00" {
		t.Errorf("expected date 2024-10-12T18:00:00, got %v", got["date"])
	}
	if got["created_at"] != "2024-10-01T09:30:15.250000" {
		t.Errorf("expected microsecond precision, got %v", got["created_at"])
	}
	if got["title"] != "Fall Festival" || got["is_public"] != true {
		t.Errorf("expected other values unchanged, got %v", got)
	}
	if len(got) != len(raw) {
		t.Errorf("expected %d fields, got %d", len(raw), len(got))
	}
}

func TestNormalize_ConvertsToUTC(t *testing.T) {
	t.Parallel()

	local := time.Date(2024, 10, 12, 13, 0, 0, 0, time.FixedZone("EST", -5*3600))
	got := Normalize(model.Document{"date": &local})

	if got["date"] != "2024-10-12T18:00:00" {
		t.Errorf("expected UTC rendering, got %v", got["date"])
	}
}

func TestNormalize_LeavesOriginalUntouched(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 10, 12, 18, 0, 0, 0, time.UTC)
	raw := model.Document{model.FieldID: "abc", "date": date}

	_ = Normalize(raw)

	if _, ok := raw["date"].(time.Time); !ok {
		t.Error("raw record was modified")
	}
}

func TestIdentifierString(t *testing.T) {
	t.Parallel()

	rid := &models.RecordID{Table: "sermon", ID: "x"}

	tests := []struct {
		in   interface{}
		want string
	}{
		{"9f1c", "9f1c"},
		{rid, "sermon:x"},
		{(*models.RecordID)(nil), ""},
		{nil, ""},
		{42, "42"},
	}

	for _, tt := range tests {
		if got := identifierString(tt.in); got != tt.want {
			t.Errorf("identifierString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAll_EmptyIsNonNil(t *testing.T) {
	t.Parallel()

	got := NormalizeAll(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}
