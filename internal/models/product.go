// Package models defines core data structures for products, queries, and search results.
package models

import (
	"fmt"
	"time"
)

// Product represents a catalog product with the attributes used for ranking.
type Product struct {
	ProductID       int64                  `json:"productId" db:"product_id"`
	Title           string                 `json:"title" db:"title"`
	Description     string                 `json:"description" db:"description"`
	Rating          float64                `json:"rating" db:"rating"`
	Stock           int64                  `json:"stock" db:"stock"`
	Price           float64                `json:"price" db:"price"`
	MRP             float64                `json:"mrp" db:"mrp"`
	Currency        string                 `json:"currency" db:"currency"`
	UnitsSold       float64                `json:"units_sold" db:"units_sold"`
	ReturnRate      float64                `json:"return_rate" db:"return_rate"`
	ComplaintsCount float64                `json:"complaints_count" db:"complaints_count"`
	Metadata        map[string]interface{} `json:"Metadata" db:"metadata"`
	CreatedAt       time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at" db:"updated_at"`
}

// ReferencePrice returns the MRP, falling back to the selling price when the
// MRP was never set. It is never negative for a valid product.
func (p *Product) ReferencePrice() float64 {
	if p.MRP > 0 {
		return p.MRP
	}
	return p.Price
}

// ProductInput is the payload for creating a product. Price is a pointer so
// that a missing price can be distinguished from a free product; MRP is a
// pointer because it defaults to the price when absent.
type ProductInput struct {
	Title           string                 `json:"title"`
	Description     string                 `json:"description,omitempty"`
	Rating          float64                `json:"rating,omitempty"`
	Stock           int64                  `json:"stock,omitempty"`
	Price           *float64               `json:"price"`
	MRP             *float64               `json:"mrp,omitempty"`
	Currency        string                 `json:"currency,omitempty"`
	UnitsSold       float64                `json:"units_sold,omitempty"`
	ReturnRate      float64                `json:"return_rate,omitempty"`
	ComplaintsCount float64                `json:"complaints_count,omitempty"`
	Metadata        map[string]interface{} `json:"Metadata,omitempty"`
}

// Validate checks required fields and numeric ranges.
func (in *ProductInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("title is required")
	}
	if in.Price == nil {
		return fmt.Errorf("price is required")
	}
	if *in.Price < 0 {
		return fmt.Errorf("price must be >= 0")
	}
	if in.MRP != nil && *in.MRP < 0 {
		return fmt.Errorf("mrp must be >= 0")
	}
	if in.Stock < 0 {
		return fmt.Errorf("stock must be >= 0")
	}
	return nil
}

// MetadataUpdate is the payload for merging metadata into an existing product.
type MetadataUpdate struct {
	ProductID int64                  `json:"productId"`
	Metadata  map[string]interface{} `json:"Metadata"`
}
