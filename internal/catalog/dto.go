package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/gameden/gameden-backend/pkg/db/models"
)

// ItemDTO represents the full catalog item payload returned to clients.
type ItemDTO struct {
	ID             uuid.UUID    `json:"id"`
	Slug           string       `json:"slug"`
	Title          string       `json:"title"`
	Description    *string      `json:"description,omitempty"`
	Category       string       `json:"category"`
	BasePriceCents int          `json:"base_price_cents"`
	Stock          int          `json:"stock"`
	IsActive       bool         `json:"is_active"`
	Options        []OptionDTO  `json:"options"`
	Variants       []VariantDTO `json:"variants"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// OptionDTO exposes one declared option dimension.
type OptionDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// VariantDTO exposes one enumerated combination.
type VariantDTO struct {
	ID         string            `json:"id"`
	Selected   map[string]string `json:"selected"`
	PriceCents int               `json:"price_cents"`
	Stock      int               `json:"stock"`
}

// ItemSummaryDTO is the trimmed shape used by list endpoints.
type ItemSummaryDTO struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	BasePriceCents int       `json:"base_price_cents"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewItemDTO builds a DTO from the persisted model with its associations loaded.
func NewItemDTO(item *models.CatalogItem) *ItemDTO {
	dto := &ItemDTO{
		ID:             item.ID,
		Slug:           item.Slug,
		Title:          item.Title,
		Description:    item.Description,
		Category:       string(item.Category),
		BasePriceCents: item.BasePriceCents,
		Stock:          item.Stock,
		IsActive:       item.IsActive,
		Options:        make([]OptionDTO, 0, len(item.Options)),
		Variants:       make([]VariantDTO, 0, len(item.Variants)),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}

	for _, opt := range EngineOptions(item) {
		dto.Options = append(dto.Options, OptionDTO{ID: opt.ID, Name: opt.Name, Values: opt.Values})
	}
	for _, row := range item.Variants {
		dto.Variants = append(dto.Variants, VariantDTO{
			ID:         row.VarID,
			Selected:   row.Selected.Clone(),
			PriceCents: row.PriceCents,
			Stock:      row.Stock,
		})
	}
	return dto
}

// NewItemSummaryDTO builds the list row shape.
func NewItemSummaryDTO(item models.CatalogItem) ItemSummaryDTO {
	return ItemSummaryDTO{
		ID:             item.ID,
		Slug:           item.Slug,
		Title:          item.Title,
		Category:       string(item.Category),
		BasePriceCents: item.BasePriceCents,
		IsActive:       item.IsActive,
		CreatedAt:      item.CreatedAt,
	}
}
