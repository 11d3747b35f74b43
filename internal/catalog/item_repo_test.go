package catalog

import (
	"context"
	"testing"

	"github.com/gameden/gameden-backend/pkg/db/models"
	"github.com/gameden/gameden-backend/pkg/pagination"
)

func TestItemRepositoryRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(tx)
	ctx := context.Background()

	item := mustCreateTestItem(t, tx)
	mustCreateTestOption(t, tx, item.ID, "region", 0, "EU", "US")
	mustCreateTestOption(t, tx, item.ID, "tier", 1, "Standard", "Safe")
	mustCreateTestVariant(t, tx, item.ID, "v-eu-std", map[string]string{"region": "EU", "tier": "Standard"}, 1000, 5)

	loaded, err := repo.GetItemDetail(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item detail: %v", err)
	}
	if len(loaded.Options) != 2 || len(loaded.Variants) != 1 {
		t.Fatalf("expected 2 options 1 variant, got %d %d", len(loaded.Options), len(loaded.Variants))
	}
	if loaded.Options[0].OptID != "region" || loaded.Options[1].OptID != "tier" {
		t.Fatalf("expected position ordering, got %s %s", loaded.Options[0].OptID, loaded.Options[1].OptID)
	}
	if loaded.Variants[0].Selected["region"] != "EU" {
		t.Fatalf("expected jsonb round trip, got %v", loaded.Variants[0].Selected)
	}

	bySlug, err := repo.GetItemDetailBySlug(ctx, item.Slug)
	if err != nil {
		t.Fatalf("get item by slug: %v", err)
	}
	if bySlug.ID != item.ID {
		t.Fatalf("expected same item, got %s", bySlug.ID)
	}
}

func TestItemRepositoryReplaceVariants(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(tx)
	ctx := context.Background()

	item := mustCreateTestItem(t, tx)
	mustCreateTestOption(t, tx, item.ID, "region", 0, "EU", "US")
	mustCreateTestVariant(t, tx, item.ID, "v-eu", map[string]string{"region": "EU"}, 1000, 5)

	replacement := []models.Variant{
		{ItemID: item.ID, VarID: "v-us", Selected: map[string]string{"region": "US"}, PriceCents: 1200, Stock: 3},
	}
	if err := repo.ReplaceVariants(ctx, item.ID, replacement); err != nil {
		t.Fatalf("replace variants: %v", err)
	}

	loaded, err := repo.GetItemDetail(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item detail: %v", err)
	}
	if len(loaded.Variants) != 1 || loaded.Variants[0].VarID != "v-us" {
		t.Fatalf("expected single replaced variant v-us, got %+v", loaded.Variants)
	}

	if err := repo.ReplaceVariants(ctx, item.ID, nil); err != nil {
		t.Fatalf("clear variants: %v", err)
	}
	loaded, err = repo.GetItemDetail(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item detail: %v", err)
	}
	if len(loaded.Variants) != 0 {
		t.Fatalf("expected empty variant table, got %d", len(loaded.Variants))
	}
}

func TestItemRepositoryListPagination(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(tx)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustCreateTestItem(t, tx)
	}

	page, err := repo.ListItemSummaries(ctx, itemListQuery{
		Pagination: pagination.Params{Limit: 2},
		ActiveOnly: true,
	})
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.NextCursor == nil {
		t.Fatal("expected next cursor")
	}

	next, err := repo.ListItemSummaries(ctx, itemListQuery{
		Pagination: pagination.Params{Limit: 2, Cursor: *page.NextCursor},
		ActiveOnly: true,
	})
	if err != nil {
		t.Fatalf("list next page: %v", err)
	}
	if len(next.Items) == 0 {
		t.Fatal("expected at least one item on the next page")
	}
}
