package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/openbasket/khoj/internal/models"
)

// MemoryStore is an in-memory catalog store with auto-incrementing product
// IDs. All methods return copies so callers never share mutable state with
// the store.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]*models.Product
	nextID   int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int64]*models.Product),
		nextID:   1,
	}
}

// Add inserts a product and returns its assigned ID.
func (s *MemoryStore) Add(_ context.Context, input *models.ProductInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.products[id] = newProduct(id, input, time.Now())
	return id, nil
}

// Get returns a product by ID.
func (s *MemoryStore) Get(_ context.Context, productID int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyProduct(p), nil
}

// UpdateMetadata merges the update's metadata into the product's existing
// metadata and returns the updated product.
func (s *MemoryStore) UpdateMetadata(_ context.Context, update *models.MetadataUpdate) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[update.ProductID]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range update.Metadata {
		p.Metadata[k] = v
	}
	p.UpdatedAt = time.Now()
	return copyProduct(p), nil
}

// ListAll returns a snapshot of all products in ascending product ID order.
func (s *MemoryStore) ListAll(_ context.Context) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]*models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, copyProduct(p))
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})
	return products, nil
}

// Count returns the number of products.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

// Reset drops all products and restarts ID assignment.
func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[int64]*models.Product)
	s.nextID = 1
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func copyProduct(p *models.Product) *models.Product {
	cp := *p
	cp.Metadata = make(map[string]interface{}, len(p.Metadata))
	for k, v := range p.Metadata {
		cp.Metadata[k] = v
	}
	return &cp
}
