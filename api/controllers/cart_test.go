package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameden/gameden-backend/api/middleware"
	cartsvc "github.com/gameden/gameden-backend/internal/cart"
	"github.com/gameden/gameden-backend/pkg/logger"
	"github.com/gameden/gameden-backend/pkg/types"
)

type stubCartService struct {
	cart       *cartsvc.CartDTO
	err        error
	gotSession string
	gotInput   cartsvc.AddLineItemInput
	gotLineID  uuid.UUID
}

func (s *stubCartService) AddLineItem(_ context.Context, sessionID string, input cartsvc.AddLineItemInput) (*cartsvc.CartDTO, error) {
	s.gotSession = sessionID
	s.gotInput = input
	return s.cart, s.err
}

func (s *stubCartService) RemoveLineItem(_ context.Context, sessionID string, lineItemID uuid.UUID) (*cartsvc.CartDTO, error) {
	s.gotSession = sessionID
	s.gotLineID = lineItemID
	return s.cart, s.err
}

func (s *stubCartService) GetCart(_ context.Context, sessionID string) (*cartsvc.CartDTO, error) {
	s.gotSession = sessionID
	return s.cart, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestCartAddItem(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubCartService{cart: &cartsvc.CartDTO{SessionID: "sess-1", Status: "active", SubtotalCents: 3600}}
		body := `{"slug":"steam-account-eu","selection":{"region":"EU"},"qty":3}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
		rec := httptest.NewRecorder()

		CartAddItem(stub, logg).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "sess-1", stub.gotSession)
		assert.Equal(t, "steam-account-eu", stub.gotInput.Slug)
		assert.Equal(t, map[string]string{"region": "EU"}, stub.gotInput.Selection)
		assert.Equal(t, 3, stub.gotInput.Qty)

		var envelope types.SuccessEnvelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	})

	t.Run("missing session", func(t *testing.T) {
		stub := &stubCartService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"slug":"x","qty":1}`))
		rec := httptest.NewRecorder()

		CartAddItem(stub, logg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, stub.gotSession)
	})

	t.Run("rejects zero qty", func(t *testing.T) {
		stub := &stubCartService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"slug":"x","qty":0}`))
		req = req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
		rec := httptest.NewRecorder()

		CartAddItem(stub, logg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		stub := &stubCartService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"slug":"x","qty":1,"price_cents":1}`))
		req = req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
		rec := httptest.NewRecorder()

		CartAddItem(stub, logg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartRemoveItem(t *testing.T) {
	logg := testLogger()
	lineID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubCartService{cart: &cartsvc.CartDTO{SessionID: "sess-1", Status: "active"}}
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+lineID.String(), nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("lineItemID", lineID.String())
		ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
		req = req.WithContext(middleware.WithSessionID(ctx, "sess-1"))
		rec := httptest.NewRecorder()

		CartRemoveItem(stub, logg).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, lineID, stub.gotLineID)
	})

	t.Run("invalid line item id", func(t *testing.T) {
		stub := &stubCartService{}
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/not-a-uuid", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("lineItemID", "not-a-uuid")
		ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
		req = req.WithContext(middleware.WithSessionID(ctx, "sess-1"))
		rec := httptest.NewRecorder()

		CartRemoveItem(stub, logg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, uuid.Nil, stub.gotLineID)
	})
}

func TestCartFetch(t *testing.T) {
	logg := testLogger()
	stub := &stubCartService{cart: &cartsvc.CartDTO{SessionID: "sess-9", Status: "active", Items: []cartsvc.CartLineDTO{}}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithSessionID(req.Context(), "sess-9"))
	rec := httptest.NewRecorder()

	CartFetch(stub, logg).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-9", stub.gotSession)
}
