package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gameden/gameden-backend/api/responses"
	"github.com/gameden/gameden-backend/api/validators"
	catalogsvc "github.com/gameden/gameden-backend/internal/catalog"
	storefrontsvc "github.com/gameden/gameden-backend/internal/storefront"
	"github.com/gameden/gameden-backend/pkg/enums"
	pkgerrors "github.com/gameden/gameden-backend/pkg/errors"
	"github.com/gameden/gameden-backend/pkg/logger"
	"github.com/gameden/gameden-backend/pkg/pagination"
)

// ListItems serves the public storefront listing. Only active items are
// returned regardless of query parameters.
func ListItems(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.ListItemsInput{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
			ActiveOnly: true,
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, parseErr := enums.ParseItemCategory(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid category"))
				return
			}
			input.Category = &category
		}

		result, err := svc.ListItems(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ItemDetail serves one item by slug with its full option and variant tables.
func ItemDetail(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item slug required"))
			return
		}

		item, err := svc.GetItemBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// ResolveItemSelection evaluates a partial or complete option selection
// against an item's variant table. The selection arrives as repeated
// sel[<option_id>]=<value> query parameters.
func ResolveItemSelection(svc storefrontsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item slug required"))
			return
		}

		input := storefrontsvc.ResolveInput{
			Slug:      slug,
			Selection: validators.ParseSelection(r),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("policy")); raw != "" {
			policy, parseErr := enums.ParseAvailabilityPolicy(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid availability policy"))
				return
			}
			input.Policy = policy
		}

		resolution, err := svc.ResolveSelection(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resolution)
	}
}
