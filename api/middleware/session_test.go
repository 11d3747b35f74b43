package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSessionMintsIdentifier(t *testing.T) {
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured == "" {
		t.Fatalf("expected a minted session id")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Fatalf("minted session id should be a uuid: %v", err)
	}
	if got := rec.Header().Get("X-Session-Id"); got != captured {
		t.Fatalf("session id must be echoed back, got %q want %q", got, captured)
	}
}

func TestSessionKeepsClientIdentifier(t *testing.T) {
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-Id", "sess-existing")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured != "sess-existing" {
		t.Fatalf("client session id should be kept, got %q", captured)
	}
	if got := rec.Header().Get("X-Session-Id"); got != "sess-existing" {
		t.Fatalf("session id must be echoed back, got %q", got)
	}
}
