package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/openbasket/khoj/internal/models"
)

// LoadSeedFile reads a JSON array of product inputs from path.
func LoadSeedFile(path string) ([]*models.ProductInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var inputs []*models.ProductInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return inputs, nil
}

// ImportSeed validates and adds every product from the seed file at path,
// returning the number imported. A single invalid entry aborts the import so
// a reload never half-applies a seed file.
func ImportSeed(ctx context.Context, store Store, path string) (int, error) {
	inputs, err := LoadSeedFile(path)
	if err != nil {
		return 0, err
	}
	for i, input := range inputs {
		if err := input.Validate(); err != nil {
			return 0, fmt.Errorf("seed entry %d: %w", i, err)
		}
	}
	for i, input := range inputs {
		if _, err := store.Add(ctx, input); err != nil {
			return i, fmt.Errorf("seed entry %d: %w", i, err)
		}
	}
	return len(inputs), nil
}

// ReloadSeed replaces the store's contents with the seed file at path when
// the store supports Reset; otherwise it appends.
func ReloadSeed(ctx context.Context, store Store, path string) (int, error) {
	if r, ok := store.(Resetter); ok {
		if err := r.Reset(ctx); err != nil {
			return 0, fmt.Errorf("failed to reset store: %w", err)
		}
	}
	return ImportSeed(ctx, store, path)
}
