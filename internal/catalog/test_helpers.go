package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gameden/gameden-backend/pkg/db/models"
	dbtypes "github.com/gameden/gameden-backend/pkg/db/types"
	"github.com/gameden/gameden-backend/pkg/enums"
)

func mustCreateTestItem(t *testing.T, tx *gorm.DB) *models.CatalogItem {
	t.Helper()
	item := &models.CatalogItem{
		ID:             uuid.New(),
		Slug:           fmt.Sprintf("gd-test-%s", uuid.NewString()),
		Title:          "Test Item",
		Category:       enums.ItemCategoryGameAccount,
		BasePriceCents: 1000,
		IsActive:       true,
	}
	if err := tx.Create(item).Error; err != nil {
		t.Fatalf("create catalog item: %v", err)
	}
	return item
}

func mustCreateTestOption(t *testing.T, tx *gorm.DB, itemID uuid.UUID, optID string, position int, values ...string) *models.ProductOption {
	t.Helper()
	row := &models.ProductOption{
		ItemID:   itemID,
		OptID:    optID,
		Name:     optID,
		Position: position,
		Values:   values,
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("create product option: %v", err)
	}
	return row
}

func mustCreateTestVariant(t *testing.T, tx *gorm.DB, itemID uuid.UUID, varID string, selected map[string]string, priceCents, stock int) *models.Variant {
	t.Helper()
	row := &models.Variant{
		ItemID:     itemID,
		VarID:      varID,
		Selected:   dbtypes.StringMap(selected).Clone(),
		PriceCents: priceCents,
		Stock:      stock,
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}
	return row
}

func stringPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }
