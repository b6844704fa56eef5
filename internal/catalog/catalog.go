// Package catalog provides product catalog stores. The search engine only
// consumes the read side (ListAll); all mutation lives behind the same
// interface for the CRUD API.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/openbasket/khoj/internal/models"
)

// ErrNotFound is returned when a product does not exist.
var ErrNotFound = errors.New("product not found")

// Store is the catalog contract. ListAll must reflect a consistent snapshot
// for the duration of one ranking call and returns products in ascending
// product ID order.
type Store interface {
	Add(ctx context.Context, input *models.ProductInput) (int64, error)
	Get(ctx context.Context, productID int64) (*models.Product, error)
	UpdateMetadata(ctx context.Context, update *models.MetadataUpdate) (*models.Product, error)
	ListAll(ctx context.Context) ([]*models.Product, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}

// Resetter is implemented by stores that can drop all products, used by the
// seed-file reloader.
type Resetter interface {
	Reset(ctx context.Context) error
}

// newProduct materializes a product from an input, applying the catalog
// defaults: empty description, zero numeric fields, MRP falling back to the
// price, "Rupee" currency, empty metadata.
func newProduct(productID int64, input *models.ProductInput, now time.Time) *models.Product {
	p := &models.Product{
		ProductID:       productID,
		Title:           input.Title,
		Description:     input.Description,
		Rating:          input.Rating,
		Stock:           input.Stock,
		Currency:        input.Currency,
		UnitsSold:       input.UnitsSold,
		ReturnRate:      input.ReturnRate,
		ComplaintsCount: input.ComplaintsCount,
		Metadata:        map[string]interface{}{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.MRP != nil {
		p.MRP = *input.MRP
	} else {
		p.MRP = p.Price
	}
	if p.Currency == "" {
		p.Currency = "Rupee"
	}
	for k, v := range input.Metadata {
		p.Metadata[k] = v
	}
	return p
}
