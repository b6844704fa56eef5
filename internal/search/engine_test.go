package search

import (
	"context"
	"errors"
	"testing"

	"github.com/openbasket/khoj/internal/catalog"
	"github.com/openbasket/khoj/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func seedCatalog(t *testing.T, inputs []*models.ProductInput) catalog.Store {
	t.Helper()
	store := catalog.NewMemoryStore()
	for _, in := range inputs {
		if _, err := store.Add(context.Background(), in); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func TestEngine_Search_EmptyCatalog(t *testing.T) {
	engine := NewEngine(catalog.NewMemoryStore(), nil, nil)
	for _, query := range []string{"", "iphone", "sasta phone"} {
		resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: query, Limit: 10})
		if err != nil {
			t.Fatalf("Search(%q) error: %v", query, err)
		}
		if len(resp.Data) != 0 {
			t.Errorf("Search(%q) on empty catalog = %d results, want 0", query, len(resp.Data))
		}
	}
}

func TestEngine_Search_LimitCapsResults(t *testing.T) {
	store := seedCatalog(t, []*models.ProductInput{
		{Title: "Rice 1kg", Price: floatPtr(80)},
		{Title: "Rice 5kg", Price: floatPtr(400)},
		{Title: "Rice 10kg", Price: floatPtr(750)},
	})
	engine := NewEngine(store, nil, nil)

	tests := []struct {
		limit int
		want  int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{50, 3}, // min(limit, corpus size)
	}
	for _, tt := range tests {
		resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: "rice", Limit: tt.limit})
		if err != nil {
			t.Fatal(err)
		}
		if len(resp.Data) != tt.want {
			t.Errorf("limit %d: got %d results, want %d", tt.limit, len(resp.Data), tt.want)
		}
	}
}

func TestEngine_Search_LowPriceScenario(t *testing.T) {
	// Two products identical except price; "sasta iphone" ranks the cheaper
	// one first.
	store := seedCatalog(t, []*models.ProductInput{
		{Title: "iPhone 15", Price: floatPtr(70000), Rating: 4.5, Stock: 10},
		{Title: "iPhone 15", Price: floatPtr(50000), Rating: 4.5, Stock: 10},
	})
	engine := NewEngine(store, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: "sasta iphone", Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("got %d results", len(resp.Data))
	}
	if resp.Data[0].ProductID != 2 {
		t.Errorf("cheaper product should rank first, got id %d", resp.Data[0].ProductID)
	}
	if resp.Data[0].SellingPrice != 50000 {
		t.Errorf("SellingPrice = %v, want 50000", resp.Data[0].SellingPrice)
	}
}

func TestEngine_Search_EmptyQueryFallback(t *testing.T) {
	store := seedCatalog(t, []*models.ProductInput{
		{Title: "a", Price: floatPtr(100), Rating: 4, Stock: 0},
		{Title: "b", Price: floatPtr(100), Rating: 2, Stock: 100},
	})
	engine := NewEngine(store, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: "", Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Data[0].ProductID != 2 {
		t.Errorf("fallback should rank stocked product first, got id %d", resp.Data[0].ProductID)
	}
}

func TestEngine_Search_ResultsCarryNoRankingInternals(t *testing.T) {
	store := seedCatalog(t, []*models.ProductInput{
		{Title: "Masala Chai", Description: "250g", Price: floatPtr(120), MRP: floatPtr(150), Stock: 5},
	})
	engine := NewEngine(store, nil, nil)

	resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: "chai", Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	r := resp.Data[0]
	if r.Title != "Masala Chai" || r.MRP != 150 || r.SellingPrice != 120 || r.Stock != 5 {
		t.Errorf("unexpected projection: %+v", r)
	}
}

type failingStore struct {
	catalog.Store
}

func (f *failingStore) ListAll(context.Context) ([]*models.Product, error) {
	return nil, errors.New("catalog unreachable")
}

func TestEngine_Search_CatalogErrorPropagates(t *testing.T) {
	engine := NewEngine(&failingStore{}, nil, nil)
	_, err := engine.Search(context.Background(), &models.SearchQuery{Query: "rice", Limit: 10})
	if err == nil {
		t.Fatal("catalog failure must propagate, not become an empty result")
	}
}
