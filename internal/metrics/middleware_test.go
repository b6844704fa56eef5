package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMiddleware_PassesThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/v1/product/{productId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/product/42", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if rec.Body.String() != "hello" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestStatusWriter_DefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &statusWriter{ResponseWriter: rec, status: http.StatusOK}
	_, _ = ww.Write([]byte("x"))
	if ww.status != http.StatusOK {
		t.Errorf("status = %d, want 200 when WriteHeader is never called", ww.status)
	}
}
