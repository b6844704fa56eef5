package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/openbasket/khoj/internal/models"
)

// SQLiteStore implements Store using SQLite. Metadata is stored as a JSON
// column, mirroring its open-ended key/value shape.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		rating REAL NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0,
		price REAL NOT NULL,
		mrp REAL NOT NULL,
		currency TEXT NOT NULL DEFAULT 'Rupee',
		units_sold REAL NOT NULL DEFAULT 0,
		return_rate REAL NOT NULL DEFAULT 0,
		complaints_count REAL NOT NULL DEFAULT 0,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Add inserts a product and returns the assigned product ID.
func (s *SQLiteStore) Add(ctx context.Context, input *models.ProductInput) (int64, error) {
	now := time.Now()
	p := newProduct(0, input, now)
	metadataJSON, err := json.Marshal(p.Metadata)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO products (title, description, rating, stock, price, mrp, currency,
		                       units_sold, return_rate, complaints_count, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Rating, p.Stock, p.Price, p.MRP, p.Currency,
		p.UnitsSold, p.ReturnRate, p.ComplaintsCount, string(metadataJSON), now, now,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const productColumns = `product_id, title, description, rating, stock, price, mrp, currency,
	units_sold, return_rate, complaints_count, metadata, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	var metadataJSON string
	err := row.Scan(&p.ProductID, &p.Title, &p.Description, &p.Rating, &p.Stock,
		&p.Price, &p.MRP, &p.Currency, &p.UnitsSold, &p.ReturnRate,
		&p.ComplaintsCount, &metadataJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Metadata = map[string]interface{}{}
	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &p.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return &p, nil
}

// Get returns a product by ID.
func (s *SQLiteStore) Get(ctx context.Context, productID int64) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id = ?`, productID)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateMetadata merges the update's metadata into the stored metadata and
// returns the updated product.
func (s *SQLiteStore) UpdateMetadata(ctx context.Context, update *models.MetadataUpdate) (*models.Product, error) {
	p, err := s.Get(ctx, update.ProductID)
	if err != nil {
		return nil, err
	}
	for k, v := range update.Metadata {
		p.Metadata[k] = v
	}
	metadataJSON, err := json.Marshal(p.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	p.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx,
		`UPDATE products SET metadata = ?, updated_at = ? WHERE product_id = ?`,
		string(metadataJSON), p.UpdatedAt, p.ProductID,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListAll returns all products in ascending product ID order.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Count returns the total number of products.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// Reset drops all products.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products`)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
