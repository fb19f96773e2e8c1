package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/BookmarkKeeper/internal/middleware"
	"go.uber.org/zap"
)

func TestRequestID_Generated(t *testing.T) {
	var gotID string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if gotID == "" {
		t.Fatal("request ID was not set in context")
	}
	if hdr := w.Header().Get("X-Request-Id"); hdr != gotID {
		t.Errorf("X-Request-Id header = %q; want %q", hdr, gotID)
	}
}

func TestRequestID_ClientSupplied(t *testing.T) {
	var gotID string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "client-id-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if gotID != "client-id-1" {
		t.Errorf("request ID = %q; want %q", gotID, "client-id-1")
	}
}

func TestWithRequestLogging_CapturesStatus(t *testing.T) {
	h := middleware.WithRequestLogging(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Bookmark not found"}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks/999", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
	if w.Body.Len() == 0 {
		t.Error("body was not passed through")
	}
}
