package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gameden/gameden-backend/api/responses"
	"github.com/gameden/gameden-backend/api/validators"
	catalogsvc "github.com/gameden/gameden-backend/internal/catalog"
	"github.com/gameden/gameden-backend/pkg/enums"
	pkgerrors "github.com/gameden/gameden-backend/pkg/errors"
	"github.com/gameden/gameden-backend/pkg/logger"
)

// AdminCreateItem handles catalog item creation for the back office.
func AdminCreateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AdminUpdateItem handles partial catalog item updates. Options and variants
// are replaced wholesale when present in the payload.
func AdminUpdateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		itemID, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateItem(r.Context(), itemID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// AdminDeleteItem removes a catalog item with its options and variants.
func AdminDeleteItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		itemID, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminGetItem fetches one item by id, inactive items included.
func AdminGetItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		itemID, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

type optionRequest struct {
	ID     string   `json:"id" validate:"required"`
	Name   string   `json:"name" validate:"required"`
	Values []string `json:"values" validate:"required,min=1,dive,required"`
}

type variantRequest struct {
	ID         string            `json:"id" validate:"required"`
	Selected   map[string]string `json:"selected"`
	PriceCents int               `json:"price_cents" validate:"min=0"`
	Stock      int               `json:"stock" validate:"min=0"`
}

type createItemRequest struct {
	Slug           string           `json:"slug" validate:"required"`
	Title          string           `json:"title" validate:"required"`
	Description    *string          `json:"description,omitempty"`
	Category       string           `json:"category" validate:"required"`
	BasePriceCents int              `json:"base_price_cents" validate:"min=0"`
	Stock          int              `json:"stock" validate:"min=0"`
	IsActive       *bool            `json:"is_active,omitempty"`
	Options        []optionRequest  `json:"options,omitempty"`
	Variants       []variantRequest `json:"variants,omitempty"`
}

type updateItemRequest struct {
	Slug           *string           `json:"slug,omitempty"`
	Title          *string           `json:"title,omitempty"`
	Description    *string           `json:"description,omitempty"`
	Category       *string           `json:"category,omitempty"`
	BasePriceCents *int              `json:"base_price_cents,omitempty" validate:"omitempty,min=0"`
	Stock          *int              `json:"stock,omitempty" validate:"omitempty,min=0"`
	IsActive       *bool             `json:"is_active,omitempty"`
	Options        *[]optionRequest  `json:"options,omitempty"`
	Variants       *[]variantRequest `json:"variants,omitempty"`
}

func (r createItemRequest) toCreateInput() (catalogsvc.CreateItemInput, error) {
	category, err := enums.ParseItemCategory(strings.TrimSpace(r.Category))
	if err != nil {
		return catalogsvc.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return catalogsvc.CreateItemInput{
		Slug:           r.Slug,
		Title:          r.Title,
		Description:    r.Description,
		Category:       category,
		BasePriceCents: r.BasePriceCents,
		Stock:          r.Stock,
		IsActive:       isActive,
		Options:        optionInputs(r.Options),
		Variants:       variantInputs(r.Variants),
	}, nil
}

func (r updateItemRequest) toUpdateInput() (catalogsvc.UpdateItemInput, error) {
	input := catalogsvc.UpdateItemInput{
		Slug:           r.Slug,
		Title:          r.Title,
		Description:    r.Description,
		BasePriceCents: r.BasePriceCents,
		Stock:          r.Stock,
		IsActive:       r.IsActive,
	}

	if r.Category != nil {
		category, err := enums.ParseItemCategory(strings.TrimSpace(*r.Category))
		if err != nil {
			return catalogsvc.UpdateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}

	if r.Options != nil {
		opts := optionInputs(*r.Options)
		input.Options = &opts
	}
	if r.Variants != nil {
		variants := variantInputs(*r.Variants)
		input.Variants = &variants
	}

	return input, nil
}

func optionInputs(reqs []optionRequest) []catalogsvc.OptionInput {
	opts := make([]catalogsvc.OptionInput, 0, len(reqs))
	for _, req := range reqs {
		opts = append(opts, catalogsvc.OptionInput{
			ID:     req.ID,
			Name:   req.Name,
			Values: req.Values,
		})
	}
	return opts
}

func variantInputs(reqs []variantRequest) []catalogsvc.VariantInput {
	variants := make([]catalogsvc.VariantInput, 0, len(reqs))
	for _, req := range reqs {
		variants = append(variants, catalogsvc.VariantInput{
			ID:         req.ID,
			Selected:   req.Selected,
			PriceCents: req.PriceCents,
			Stock:      req.Stock,
		})
	}
	return variants
}

func parseItemID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "itemID"))
	itemID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id")
	}
	return itemID, nil
}
