// Package search ties the catalog snapshot to the ranking pipeline.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openbasket/khoj/internal/catalog"
	"github.com/openbasket/khoj/internal/models"
	"github.com/openbasket/khoj/internal/ranking"
)

// Engine runs product search: fetch the catalog snapshot, rank it, project
// the top results. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	catalog catalog.Store
	ranker  *ranking.Ranker
	logger  *zap.Logger
}

// NewEngine creates a search engine with the given dependencies. A nil
// ranking config uses the default weights; a nil logger disables logging.
func NewEngine(store catalog.Store, cfg *ranking.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		catalog: store,
		ranker:  ranking.NewRanker(cfg),
		logger:  logger,
	}
}

// Search ranks the catalog against the query and returns at most query.Limit
// results. A catalog fetch failure propagates so callers can distinguish
// "no items" from "catalog unreachable"; an empty corpus yields an empty
// result for every query.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()

	products, err := e.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	ranked := ranking.TopN(e.ranker.Rank(query.Query, products), query.Limit)

	results := make([]*models.SearchResult, len(ranked))
	for i, r := range ranked {
		results[i] = models.ToSearchResult(r.Product)
	}

	elapsed := time.Since(startTime)
	e.logger.Debug("search completed",
		zap.String("query", query.Query),
		zap.Int("corpus_size", len(products)),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", elapsed),
	)

	return &models.SearchResponse{
		Data:      results,
		Query:     query.Query,
		QueryTime: elapsed.Milliseconds(),
	}, nil
}
