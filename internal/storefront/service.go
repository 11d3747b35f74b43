// Package storefront serves the shopper-facing read path: resolving an
// in-progress option selection against the live catalog snapshot.
package storefront

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gameden/gameden-backend/internal/catalog"
	"github.com/gameden/gameden-backend/internal/options"
	"github.com/gameden/gameden-backend/pkg/db/models"
	"github.com/gameden/gameden-backend/pkg/enums"
	pkgerrors "github.com/gameden/gameden-backend/pkg/errors"
	"github.com/gameden/gameden-backend/pkg/metrics"
)

// Service exposes the selection resolution read path.
type Service interface {
	ResolveSelection(ctx context.Context, input ResolveInput) (*ResolutionDTO, error)
}

// ResolveInput carries one resolution request.
type ResolveInput struct {
	Slug      string
	Selection map[string]string
	Policy    enums.AvailabilityPolicy
}

type catalogReader interface {
	GetItemDetailBySlug(ctx context.Context, slug string) (*models.CatalogItem, error)
}

type service struct {
	items   catalogReader
	metrics *metrics.ResolutionMetrics
}

// NewService constructs a storefront service instance.
func NewService(items catalogReader, resolutionMetrics *metrics.ResolutionMetrics) (Service, error) {
	if items == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &service{items: items, metrics: resolutionMetrics}, nil
}

// ResolveSelection loads the item snapshot current at request time and runs
// the resolution engine over it. The engine holds no cross-request state, so
// every call reflects the latest accepted catalog write.
func (s *service) ResolveSelection(ctx context.Context, input ResolveInput) (*ResolutionDTO, error) {
	policy := input.Policy
	if policy == "" {
		policy = enums.AvailabilityHideSoldOut
	}
	if !policy.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown availability policy")
	}

	item, err := s.items.GetItemDetailBySlug(ctx, input.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}
	if !item.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
	}

	opts := catalog.EngineOptions(item)
	variants := catalog.EngineVariants(item)

	res, selErr := options.Resolve(opts, variants, options.Selection(input.Selection), policy)
	if selErr != nil {
		return nil, selectionError(selErr)
	}

	s.metrics.IncOutcome(string(res.State), policy.String())
	return newResolutionDTO(item, opts, res), nil
}

// selectionError maps a malformed selection onto the shared error surface.
func selectionError(selErr *options.SelectionError) error {
	details := map[string]any{
		"kind":      string(selErr.Kind),
		"option_id": selErr.OptionID,
	}
	if selErr.Value != "" {
		details["value"] = selErr.Value
	}
	return pkgerrors.New(pkgerrors.CodeValidation, selErr.Error()).WithDetails(details)
}
