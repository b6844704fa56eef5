package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/openbasket/khoj/internal/catalog"
	"github.com/openbasket/khoj/internal/metrics"
	"github.com/openbasket/khoj/internal/models"
)

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := input.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("create product request", zap.String("title", input.Title))
	productID, err := s.catalog.Add(r.Context(), &input)
	if err != nil {
		s.logger.Error("create product failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]int64{"productId": productID})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid productId")
		return
	}
	p, err := s.catalog.Get(r.Context(), productID)
	if errors.Is(err, catalog.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		s.logger.Error("get product failed", zap.Int64("product_id", productID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var update models.MetadataUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if update.ProductID <= 0 {
		s.respondError(w, http.StatusBadRequest, "productId is required")
		return
	}
	s.logger.Debug("update metadata request", zap.Int64("product_id", update.ProductID))
	p, err := s.catalog.UpdateMetadata(r.Context(), &update)
	if errors.Is(err, catalog.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		s.logger.Error("update metadata failed", zap.Int64("product_id", update.ProductID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"productId": p.ProductID,
		"Metadata":  p.Metadata,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := models.SearchQuery{
		Query: strings.TrimSpace(r.URL.Query().Get("query")),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		query.Limit = limit
	}
	query.Normalize(s.config.Search.DefaultLimit, s.config.Search.MaxLimit)

	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))
	response, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.ObserveSearchResults(len(response.Data))
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.catalog.Count(r.Context())
	if err != nil {
		s.logger.Error("status: count products failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": count,
		"config": map[string]interface{}{
			"storage_driver": s.config.Storage.Driver,
			"default_limit":  s.config.Search.DefaultLimit,
			"max_limit":      s.config.Search.MaxLimit,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
