package cron

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/gameden/gameden-backend/internal/catalog"
	"github.com/gameden/gameden-backend/internal/options"
	"github.com/gameden/gameden-backend/pkg/db/models"
	"github.com/gameden/gameden-backend/pkg/logger"
)

type itemLister interface {
	ListAllDetailed(ctx context.Context) ([]models.CatalogItem, error)
}

// CatalogAuditJob re-validates every persisted (options, variants) pair. The
// write path already gates mutations, so any defect found here means the data
// drifted underneath us, usually through a manual fix-up. The job reports,
// it never repairs.
type CatalogAuditJob struct {
	items itemLister
	logg  *logger.Logger
}

// NewCatalogAuditJob builds the audit job.
func NewCatalogAuditJob(items itemLister, logg *logger.Logger) (*CatalogAuditJob, error) {
	if items == nil {
		return nil, fmt.Errorf("item lister required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &CatalogAuditJob{items: items, logg: logg}, nil
}

// Name identifies the job in logs and metrics.
func (j *CatalogAuditJob) Name() string {
	return "catalog_audit"
}

// Run validates every item and returns the combined defects.
func (j *CatalogAuditJob) Run(ctx context.Context) error {
	items, err := j.items.ListAllDetailed(ctx)
	if err != nil {
		return fmt.Errorf("list catalog items: %w", err)
	}

	var combined error
	audited := 0
	for i := range items {
		item := &items[i]
		audited++

		cerr := options.Validate(catalog.EngineOptions(item), catalog.EngineVariants(item))
		if cerr == nil {
			continue
		}

		itemCtx := j.logg.WithItemSlug(ctx, item.Slug)
		itemCtx = j.logg.WithField(itemCtx, "kind", string(cerr.Kind))
		j.logg.Error(itemCtx, "catalog item failed consistency audit", cerr)

		combined = multierr.Append(combined, fmt.Errorf("item %s: %w", item.Slug, cerr))
	}

	ctx = j.logg.WithField(ctx, "audited", audited)
	if combined != nil {
		ctx = j.logg.WithField(ctx, "defects", len(multierr.Errors(combined)))
		j.logg.Warn(ctx, "catalog audit found inconsistent items")
		return combined
	}

	j.logg.Info(ctx, "catalog audit passed")
	return nil
}
