package trace

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWrapInjectsRequestID(t *testing.T) {
	m := NewMiddleware()

	var seen string
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Fatalf("expected req_ prefixed id, got %q", seen)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status not passed through: %d", rec.Code)
	}
}

func TestTotalRequests(t *testing.T) {
	m := NewMiddleware()
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	if got := m.TotalRequests(); got != 3 {
		t.Fatalf("expected 3 requests, got %d", got)
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	if GenerateRequestID() == GenerateRequestID() {
		t.Fatal("request ids must be unique")
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	if id := GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
}
