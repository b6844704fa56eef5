// Package cli provides CLI utilities for Khoj.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/openbasket/khoj/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d products in %dms\n\n", len(response.Data), response.QueryTime)
	for i, result := range response.Data {
		writeOneResult(w, i+1, result)
	}
}

func writeOneResult(w io.Writer, rank int, result *models.SearchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | ID: %d\n", rank, result.ProductID)
	fmt.Fprintf(w, "Title: %s\n", result.Title)
	fmt.Fprintf(w, "Price: %.2f (MRP: %.2f) | Stock: %d\n", result.SellingPrice, result.MRP, result.Stock)
	if result.Description != "" {
		fmt.Fprintf(w, "\n%s\n", Truncate(result.Description, 200))
	}
	if len(result.Metadata) > 0 {
		fmt.Fprintf(w, "Metadata: %s\n", formatMetadata(result.Metadata))
	}
	fmt.Fprintln(w)
}

func formatMetadata(meta map[string]interface{}) string {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return strings.Join(parts, ", ")
}

// PrintSearchResults prints search results to stdout in text format (backward compatible).
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
