package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gameden/gameden-backend/internal/options"
	"github.com/gameden/gameden-backend/pkg/config"
	"github.com/gameden/gameden-backend/pkg/db"
	"github.com/gameden/gameden-backend/pkg/db/models"
	dbtypes "github.com/gameden/gameden-backend/pkg/db/types"
	"github.com/gameden/gameden-backend/pkg/enums"
	pkgerrors "github.com/gameden/gameden-backend/pkg/errors"
	"github.com/gameden/gameden-backend/pkg/pagination"
)

// Service exposes catalog management operations. Every write is gated by the
// consistency engine; an inconsistent (options, variants) pair never reaches
// the database.
type Service interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error)
	GetItemBySlug(ctx context.Context, slug string) (*ItemDTO, error)
	ListItems(ctx context.Context, input ListItemsInput) (*ItemListResult, error)
}

// OptionInput declares one option dimension as proposed for write.
type OptionInput struct {
	ID     string
	Name   string
	Values []string
}

// VariantInput declares one combination as proposed for write.
type VariantInput struct {
	ID         string
	Selected   map[string]string
	PriceCents int
	Stock      int
}

// CreateItemInput holds the validated payload to create a catalog item.
type CreateItemInput struct {
	Slug           string
	Title          string
	Description    *string
	Category       enums.ItemCategory
	BasePriceCents int
	Stock          int
	IsActive       bool
	Options        []OptionInput
	Variants       []VariantInput
}

// UpdateItemInput holds optional mutation values. Options and Variants are
// replaced wholesale when present; the merged pair is re-validated against
// whatever half is left untouched.
type UpdateItemInput struct {
	Slug           *string
	Title          *string
	Description    *string
	Category       *enums.ItemCategory
	BasePriceCents *int
	Stock          *int
	IsActive       *bool
	Options        *[]OptionInput
	Variants       *[]VariantInput
}

// ListItemsInput captures list filters.
type ListItemsInput struct {
	Pagination pagination.Params
	Category   *enums.ItemCategory
	ActiveOnly bool
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	cfg      config.CatalogConfig
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client, cfg config.CatalogConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, cfg: cfg}, nil
}

// CreateItem validates and persists a new item with its options and variants.
func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	slug := normalizeSlug(input.Slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown item category")
	}
	if input.BasePriceCents < 0 || input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price_cents and stock must be non-negative")
	}
	if err := s.checkLimits(input.Options, input.Variants); err != nil {
		return nil, err
	}

	engineOpts, engineVars := toEngine(input.Options, input.Variants)
	if cerr := options.Validate(engineOpts, engineVars); cerr != nil {
		return nil, consistencyError(cerr)
	}

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		item := &models.CatalogItem{
			Slug:           slug,
			Title:          strings.TrimSpace(input.Title),
			Description:    input.Description,
			Category:       input.Category,
			BasePriceCents: input.BasePriceCents,
			Stock:          input.Stock,
			IsActive:       input.IsActive,
		}
		created, err := txRepo.CreateItem(ctx, item)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_catalog_items_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert catalog item")
		}
		createdID = created.ID

		if err := txRepo.ReplaceOptions(ctx, created.ID, optionRows(created.ID, input.Options)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace options")
		}
		if err := txRepo.ReplaceVariants(ctx, created.ID, variantRows(created.ID, input.Variants)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace variants")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create catalog item")
	}

	item, err := s.repo.GetItemDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item detail")
	}
	return NewItemDTO(item), nil
}

// UpdateItem applies a partial update. The merged (options, variants) pair is
// validated before anything is written, so a failed update leaves the previous
// valid state untouched.
func (s *service) UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	if input.Slug != nil && normalizeSlug(*input.Slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug cannot be empty")
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown item category")
	}
	if input.BasePriceCents != nil && *input.BasePriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price_cents must be non-negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}

	item, err := s.repo.GetItemDetail(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}

	// merge the proposed halves with the persisted ones so the pair is always
	// validated as a unit
	mergedOpts := EngineOptions(item)
	if input.Options != nil {
		mergedOpts, _ = toEngine(*input.Options, nil)
	}
	mergedVars := EngineVariants(item)
	if input.Variants != nil {
		_, mergedVars = toEngine(nil, *input.Variants)
	}
	if err := s.checkEngineLimits(mergedOpts, mergedVars); err != nil {
		return nil, err
	}
	if cerr := options.Validate(mergedOpts, mergedVars); cerr != nil {
		return nil, consistencyError(cerr)
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		applyUpdateToItem(item, input)
		if _, err := txRepo.UpdateItem(ctx, item); err != nil {
			if db.IsUniqueViolation(err, "idx_catalog_items_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update catalog item")
		}

		if input.Options != nil {
			if err := txRepo.ReplaceOptions(ctx, item.ID, optionRows(item.ID, *input.Options)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace options")
			}
		}
		if input.Variants != nil {
			if err := txRepo.ReplaceVariants(ctx, item.ID, variantRows(item.ID, *input.Variants)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace variants")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update catalog item")
	}

	updated, err := s.repo.GetItemDetail(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item detail")
	}
	return NewItemDTO(updated), nil
}

// DeleteItem removes an item and relies on FK cascades for related rows.
func (s *service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete catalog item")
	}
	return nil
}

func (s *service) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.GetItemDetail(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}
	return NewItemDTO(item), nil
}

func (s *service) GetItemBySlug(ctx context.Context, slug string) (*ItemDTO, error) {
	item, err := s.repo.GetItemDetailBySlug(ctx, normalizeSlug(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}
	return NewItemDTO(item), nil
}

func (s *service) ListItems(ctx context.Context, input ListItemsInput) (*ItemListResult, error) {
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown item category")
	}
	result, err := s.repo.ListItemSummaries(ctx, itemListQuery{
		Pagination: input.Pagination,
		Category:   input.Category,
		ActiveOnly: input.ActiveOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog items")
	}
	return result, nil
}

func (s *service) checkLimits(opts []OptionInput, variants []VariantInput) error {
	if s.cfg.MaxVariants > 0 && len(variants) > s.cfg.MaxVariants {
		return pkgerrors.New(pkgerrors.CodeValidation, "too many variants")
	}
	for _, opt := range opts {
		if s.cfg.MaxOptionValues > 0 && len(opt.Values) > s.cfg.MaxOptionValues {
			return pkgerrors.New(pkgerrors.CodeValidation, "too many option values")
		}
	}
	return nil
}

func (s *service) checkEngineLimits(opts []options.Option, variants []options.Variant) error {
	if s.cfg.MaxVariants > 0 && len(variants) > s.cfg.MaxVariants {
		return pkgerrors.New(pkgerrors.CodeValidation, "too many variants")
	}
	for _, opt := range opts {
		if s.cfg.MaxOptionValues > 0 && len(opt.Values) > s.cfg.MaxOptionValues {
			return pkgerrors.New(pkgerrors.CodeValidation, "too many option values")
		}
	}
	return nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func toEngine(opts []OptionInput, variants []VariantInput) ([]options.Option, []options.Variant) {
	engineOpts := make([]options.Option, 0, len(opts))
	for _, opt := range opts {
		engineOpts = append(engineOpts, options.Option{
			ID:     opt.ID,
			Name:   opt.Name,
			Values: append([]string(nil), opt.Values...),
		})
	}
	engineVars := make([]options.Variant, 0, len(variants))
	for _, v := range variants {
		selected := make(map[string]string, len(v.Selected))
		for key, value := range v.Selected {
			selected[key] = value
		}
		engineVars = append(engineVars, options.Variant{
			ID:         v.ID,
			Selected:   selected,
			PriceCents: v.PriceCents,
			Stock:      v.Stock,
		})
	}
	return engineOpts, engineVars
}

func optionRows(itemID uuid.UUID, opts []OptionInput) []models.ProductOption {
	rows := make([]models.ProductOption, 0, len(opts))
	for idx, opt := range opts {
		rows = append(rows, models.ProductOption{
			ItemID:   itemID,
			OptID:    opt.ID,
			Name:     opt.Name,
			Position: idx,
			Values:   append([]string(nil), opt.Values...),
		})
	}
	return rows
}

func variantRows(itemID uuid.UUID, variants []VariantInput) []models.Variant {
	rows := make([]models.Variant, 0, len(variants))
	for _, v := range variants {
		rows = append(rows, models.Variant{
			ItemID:     itemID,
			VarID:      v.ID,
			Selected:   dbtypes.StringMap(v.Selected).Clone(),
			PriceCents: v.PriceCents,
			Stock:      v.Stock,
		})
	}
	return rows
}

func applyUpdateToItem(item *models.CatalogItem, input UpdateItemInput) {
	if input.Slug != nil {
		item.Slug = normalizeSlug(*input.Slug)
	}
	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.BasePriceCents != nil {
		item.BasePriceCents = *input.BasePriceCents
	}
	if input.Stock != nil {
		item.Stock = *input.Stock
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
}

// consistencyError maps an engine rejection onto the shared error surface.
func consistencyError(cerr *options.ConsistencyError) error {
	details := map[string]any{"kind": string(cerr.Kind)}
	if cerr.OptionID != "" {
		details["option_id"] = cerr.OptionID
	}
	if cerr.VariantID != "" {
		details["variant_id"] = cerr.VariantID
	}
	if cerr.Value != "" {
		details["value"] = cerr.Value
	}
	return pkgerrors.New(pkgerrors.CodeValidation, cerr.Error()).WithDetails(details)
}
