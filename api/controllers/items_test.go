package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	storefrontsvc "github.com/gameden/gameden-backend/internal/storefront"
	"github.com/gameden/gameden-backend/pkg/enums"
)

type stubStorefrontService struct {
	resolution *storefrontsvc.ResolutionDTO
	err        error
	gotInput   storefrontsvc.ResolveInput
	called     bool
}

func (s *stubStorefrontService) ResolveSelection(_ context.Context, input storefrontsvc.ResolveInput) (*storefrontsvc.ResolutionDTO, error) {
	s.called = true
	s.gotInput = input
	return s.resolution, s.err
}

func resolveRequest(target, slug string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestResolveItemSelection(t *testing.T) {
	logg := testLogger()

	t.Run("forwards selection and policy", func(t *testing.T) {
		stub := &stubStorefrontService{resolution: &storefrontsvc.ResolutionDTO{}}
		target := "/api/v1/items/steam-account/resolve?sel[region]=EU&sel[tier]=Safe&policy=show_sold_out_disabled"
		rec := httptest.NewRecorder()

		ResolveItemSelection(stub, logg).ServeHTTP(rec, resolveRequest(target, "steam-account"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
		if stub.gotInput.Slug != "steam-account" {
			t.Fatalf("unexpected slug %q", stub.gotInput.Slug)
		}
		if stub.gotInput.Selection["region"] != "EU" || stub.gotInput.Selection["tier"] != "Safe" {
			t.Fatalf("selection not forwarded: %v", stub.gotInput.Selection)
		}
		if stub.gotInput.Policy != enums.AvailabilityShowSoldOutDisabled {
			t.Fatalf("unexpected policy %q", stub.gotInput.Policy)
		}
	})

	t.Run("empty selection allowed", func(t *testing.T) {
		stub := &stubStorefrontService{resolution: &storefrontsvc.ResolutionDTO{}}
		rec := httptest.NewRecorder()

		ResolveItemSelection(stub, logg).ServeHTTP(rec, resolveRequest("/api/v1/items/steam-account/resolve", "steam-account"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
		if len(stub.gotInput.Selection) != 0 {
			t.Fatalf("expected empty selection, got %v", stub.gotInput.Selection)
		}
	})

	t.Run("invalid policy rejected", func(t *testing.T) {
		stub := &stubStorefrontService{}
		target := "/api/v1/items/steam-account/resolve?policy=bogus"
		rec := httptest.NewRecorder()

		ResolveItemSelection(stub, logg).ServeHTTP(rec, resolveRequest(target, "steam-account"))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
		if stub.called {
			t.Fatalf("service should not be called for invalid policy")
		}
	})

	t.Run("missing slug rejected", func(t *testing.T) {
		stub := &stubStorefrontService{}
		rec := httptest.NewRecorder()

		ResolveItemSelection(stub, logg).ServeHTTP(rec, resolveRequest("/api/v1/items//resolve", ""))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})
}
