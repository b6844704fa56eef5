package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/openbasket/khoj/internal/models"
)

func TestWriteSearchResults_JSON(t *testing.T) {
	response := &models.SearchResponse{
		Query:     "test query",
		QueryTime: 42,
		Data: []*models.SearchResult{
			{
				ProductID:    1,
				Title:        "Basmati Rice 5kg",
				Description:  "Long grain rice",
				MRP:          500,
				SellingPrice: 450,
				Metadata:     map[string]interface{}{"brand": "India Gate"},
				Stock:        20,
			},
		},
	}
	var buf bytes.Buffer
	err := WriteSearchResults(&buf, response, OutputJSON)
	if err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	out := buf.String()
	if out == "" {
		t.Fatal("expected non-empty JSON output")
	}
	var decoded models.SearchResponse
	if err := json.NewDecoder(strings.NewReader(out)).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded.Query != response.Query || decoded.QueryTime != response.QueryTime {
		t.Errorf("decoded query=%q query_time=%d, want query=%q query_time=%d",
			decoded.Query, decoded.QueryTime, response.Query, response.QueryTime)
	}
	if len(decoded.Data) != 1 || decoded.Data[0].ProductID != 1 {
		t.Errorf("decoded data: want one result with id 1, got %+v", decoded.Data)
	}
}

func TestWriteSearchResults_JSON_empty(t *testing.T) {
	response := &models.SearchResponse{Query: "q", QueryTime: 0, Data: nil}
	var buf bytes.Buffer
	err := WriteSearchResults(&buf, response, OutputJSON)
	if err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded models.SearchResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("empty response JSON decode: %v", err)
	}
	if len(decoded.Data) != 0 {
		t.Errorf("expected no data, got %+v", decoded.Data)
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	response := &models.SearchResponse{
		Query:     "foo",
		QueryTime: 10,
		Data: []*models.SearchResult{
			{
				ProductID:    7,
				Title:        "Steel Bottle",
				Description:  "Insulated bottle",
				MRP:          600,
				SellingPrice: 499,
				Metadata:     map[string]interface{}{"color": "blue", "brand": "Milton"},
				Stock:        12,
			},
		},
	}
	var buf bytes.Buffer
	err := WriteSearchResults(&buf, response, OutputText)
	if err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"Found 1 products", "10ms", "Rank: 1", "ID: 7", "Steel Bottle", "Insulated bottle", "brand=Milton, color=blue"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteSearchResults_unknownFormatTreatedAsText(t *testing.T) {
	response := &models.SearchResponse{Query: "x", QueryTime: 0}
	var buf bytes.Buffer
	err := WriteSearchResults(&buf, response, SearchOutputFormat("unknown"))
	if err != nil {
		t.Fatalf("WriteSearchResults(unknown): %v", err)
	}
	if !strings.Contains(buf.String(), "Found") {
		t.Errorf("unknown format should fall back to text; got %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"empty", "", 5, ""},
		{"short", "hi", 5, "hi"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello..."},
		{"maxLen zero", "ab", 0, "ab"},
		{"maxLen negative", "ab", -1, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxWords int
		want     string
	}{
		{"empty", "", 3, ""},
		{"few words", "one two", 3, "one two"},
		{"exact", "one two three", 3, "one two three"},
		{"more", "one two three four", 3, "one two three..."},
		{"single long", "word", 1, "word"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWords(tt.s, tt.maxWords)
			if got != tt.want {
				t.Errorf("TruncateWords(%q, %d) = %q, want %q", tt.s, tt.maxWords, got, tt.want)
			}
		})
	}
}

func TestPrintSearchResults(t *testing.T) {
	response := &models.SearchResponse{Query: "print test", QueryTime: 1}
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
		_ = w.Close()
	}()
	PrintSearchResults(response)
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	out := buf.String()
	if !strings.Contains(out, "Found 0 products") {
		t.Errorf("PrintSearchResults should write to stdout; got %q", out)
	}
}
