package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/openbasket/khoj/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestMemoryStore_AddAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.Add(ctx, &models.ProductInput{Title: "Basmati Rice", Price: floatPtr(450)})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if id != 1 {
		t.Errorf("first product ID = %d, want 1", id)
	}

	p, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if p.Title != "Basmati Rice" || p.Price != 450 {
		t.Errorf("unexpected product: %+v", p)
	}
	if p.MRP != 450 {
		t.Errorf("MRP should default to price, got %v", p.MRP)
	}
	if p.Currency != "Rupee" {
		t.Errorf("currency should default to Rupee, got %q", p.Currency)
	}
	if p.Metadata == nil || len(p.Metadata) != 0 {
		t.Errorf("metadata should default to an empty map, got %v", p.Metadata)
	}

	if _, err := store.Get(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(999) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_AutoIncrement(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for want := int64(1); want <= 3; want++ {
		id, err := store.Add(ctx, &models.ProductInput{Title: "x", Price: floatPtr(1)})
		if err != nil {
			t.Fatal(err)
		}
		if id != want {
			t.Errorf("ID = %d, want %d", id, want)
		}
	}
}

func TestMemoryStore_UpdateMetadata(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	id, _ := store.Add(ctx, &models.ProductInput{Title: "Tea", Price: floatPtr(100)})

	p, err := store.UpdateMetadata(ctx, &models.MetadataUpdate{
		ProductID: id,
		Metadata:  map[string]interface{}{"brand": "Tata", "grade": "A"},
	})
	if err != nil {
		t.Fatalf("UpdateMetadata() error: %v", err)
	}
	if p.Metadata["brand"] != "Tata" {
		t.Errorf("metadata not applied: %v", p.Metadata)
	}

	// Second update merges rather than replaces.
	p, err = store.UpdateMetadata(ctx, &models.MetadataUpdate{
		ProductID: id,
		Metadata:  map[string]interface{}{"origin": "Assam"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Metadata["brand"] != "Tata" || p.Metadata["origin"] != "Assam" {
		t.Errorf("metadata should merge: %v", p.Metadata)
	}

	if _, err := store.UpdateMetadata(ctx, &models.MetadataUpdate{ProductID: 999}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ListAll_SortedSnapshot(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		if _, err := store.Add(ctx, &models.ProductInput{Title: title, Price: floatPtr(10)}); err != nil {
			t.Fatal(err)
		}
	}

	products, err := store.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 3 {
		t.Fatalf("ListAll() returned %d products", len(products))
	}
	for i, p := range products {
		if p.ProductID != int64(i+1) {
			t.Errorf("position %d: ID %d, want %d", i, p.ProductID, i+1)
		}
	}

	// Mutating the returned snapshot must not leak back into the store.
	products[0].Title = "mutated"
	products[0].Metadata["injected"] = true
	fresh, _ := store.Get(ctx, 1)
	if fresh.Title == "mutated" || fresh.Metadata["injected"] != nil {
		t.Error("ListAll() snapshot shares state with the store")
	}
}

func TestMemoryStore_CountAndReset(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_, _ = store.Add(ctx, &models.ProductInput{Title: "a", Price: floatPtr(1)})
	_, _ = store.Add(ctx, &models.ProductInput{Title: "b", Price: floatPtr(2)})

	if n, _ := store.Count(ctx); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("Count() after Reset = %d, want 0", n)
	}
	// IDs restart after reset.
	id, _ := store.Add(ctx, &models.ProductInput{Title: "c", Price: floatPtr(3)})
	if id != 1 {
		t.Errorf("ID after Reset = %d, want 1", id)
	}
}
