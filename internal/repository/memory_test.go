package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/forgo/chapel/internal/model"
)

func TestMemoryStore_InsertAndQuery(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("church")
	ctx := context.Background()

	id, err := store.Insert(ctx, "sermon", model.Document{"title": "Hope", "series": "Advent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty id")
	}

	docs, err := store.Query(ctx, "sermon", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0][model.FieldID] != id {
		t.Errorf("expected _id %q, got %v", id, docs[0][model.FieldID])
	}
}

func TestMemoryStore_Query_ExactMatchAndLimit(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("church")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = store.Insert(ctx, "sermon", model.Document{"title": fmt.Sprintf("A%d", i), "series": "Advent"})
	}
	_, _ = store.Insert(ctx, "sermon", model.Document{"title": "B", "series": "Advent 2024"})
	_, _ = store.Insert(ctx, "sermon", model.Document{"title": "C", "series": "advent"})

	docs, err := store.Query(ctx, "sermon", model.Filter{"series": "Advent"}, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 5 {
		t.Fatalf("expected 5 exact matches, got %d", len(docs))
	}
	for i, doc := range docs {
		if doc["title"] != fmt.Sprintf("A%d", i) {
			t.Errorf("expected insertion order, got %v at %d", doc["title"], i)
		}
	}

	limited, _ := store.Query(ctx, "sermon", nil, 3)
	if len(limited) != 3 {
		t.Errorf("expected 3 documents with limit, got %d", len(limited))
	}
}

func TestMemoryStore_Query_MissingFieldDoesNotMatch(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("church")
	ctx := context.Background()

	_, _ = store.Insert(ctx, "galleryitem", model.Document{"title": "Picnic"})
	_, _ = store.Insert(ctx, "galleryitem", model.Document{"title": "Choir", "album": "Summer"})

	docs, _ := store.Query(ctx, "galleryitem", model.Filter{"album": "Summer"}, 100)
	if len(docs) != 1 || docs[0]["title"] != "Choir" {
		t.Errorf("expected only Choir, got %v", docs)
	}
}

func TestMemoryStore_Query_BoolAndTimeFilters(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("church")
	ctx := context.Background()
	when := time.Date(2024, 10, 12, 18, 0, 0, 0, time.UTC)

	_, _ = store.Insert(ctx, "prayerrequest", model.Document{"name": "A", "is_public": true, "created_at": when})
	_, _ = store.Insert(ctx, "prayerrequest", model.Document{"name": "B", "is_public": false, "created_at": when})

	public, _ := store.Query(ctx, "prayerrequest", model.Filter{"is_public": true}, 100)
	if len(public) != 1 || public[0]["name"] != "A" {
		t.Errorf("expected only A, got %v", public)
	}

	local := when.In(time.FixedZone("EST", -5*3600))
	byTime, _ := store.Query(ctx, "prayerrequest", model.Filter{"created_at": local}, 100)
	if len(byTime) != 2 {
		t.Errorf("expected times to compare by instant, got %d matches", len(byTime))
	}
}

func TestMemoryStore_Query_ReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("church")
	ctx := context.Background()

	_, _ = store.Insert(ctx, "event", model.Document{"title": "Fall Festival"})

	docs, _ := store.Query(ctx, "event", nil, 10)
	docs[0]["title"] = "changed"

	again, _ := store.Query(ctx, "event", nil, 10)
	if again[0]["title"] != "Fall Festival" {
		t.Errorf("stored document was mutated through query result")
	}
}

func TestMemoryStore_Collections(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("church")
	ctx := context.Background()

	names, _ := store.Collections(ctx)
	if len(names) != 0 {
		t.Errorf("expected no collections, got %v", names)
	}

	_, _ = store.Insert(ctx, "sermon", model.Document{"title": "Hope"})
	_, _ = store.Insert(ctx, "event", model.Document{"title": "Picnic"})

	names, _ = store.Collections(ctx)
	if len(names) != 2 || names[0] != "event" || names[1] != "sermon" {
		t.Errorf("expected [event sermon], got %v", names)
	}
}

func TestMemoryStore_InvalidInput(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("church")
	ctx := context.Background()

	if _, err := store.Insert(ctx, "bad name", model.Document{}); !errors.Is(err, ErrStoreWrite) {
		t.Errorf("expected ErrStoreWrite, got %v", err)
	}
	if _, err := store.Query(ctx, "event", nil, 0); !errors.Is(err, ErrStoreRead) {
		t.Errorf("expected ErrStoreRead for zero limit, got %v", err)
	}
}

func TestMemoryStore_ConcurrentInserts(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore("church")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.Insert(ctx, "contactmessage", model.Document{"name": fmt.Sprintf("n%d", i)})
		}(i)
	}
	wg.Wait()

	docs, _ := store.Query(ctx, "contactmessage", nil, 1000)
	if len(docs) != 50 {
		t.Errorf("expected 50 documents, got %d", len(docs))
	}

	ids := make(map[interface{}]bool)
	for _, doc := range docs {
		ids[doc[model.FieldID]] = true
	}
	if len(ids) != 50 {
		t.Errorf("expected 50 unique ids, got %d", len(ids))
	}
}
