package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/internal/config"
	"github.com/wolfxl/campbuddy/pkg/core/model"
)

// CatalogSource reads the camp catalog from an external source
type CatalogSource interface {
	ListCatalog(ctx context.Context, cfg config.CatalogConfig) ([]model.Camp, error)
}

// ImportCatalogStore defines the database operations needed to import a catalog
type ImportCatalogStore interface {
	UpsertCamps(ctx context.Context, camps []model.Camp) error
}

// ImportResult summarizes an import
type ImportResult struct {
	Camps     int
	Locations int
	Sessions  int
}

// ImportCatalog copies the catalog from the source into the database.
// Existing camps are replaced by id; camps missing from the source are left alone.
func ImportCatalog(ctx context.Context, source CatalogSource, store ImportCatalogStore, cfg config.CatalogConfig, logger *zap.Logger) (*ImportResult, error) {
	logger.Debug("Reading catalog", zap.String("spreadsheet_id", cfg.SpreadsheetID))

	camps, err := source.ListCatalog(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(camps) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	result := &ImportResult{Camps: len(camps)}
	for _, camp := range camps {
		result.Locations += len(camp.Locations)
		result.Sessions += len(camp.Sessions)
	}

	if err := store.UpsertCamps(ctx, camps); err != nil {
		return nil, fmt.Errorf("failed to save camps: %w", err)
	}

	logger.Info("Catalog imported",
		zap.Int("camps", result.Camps),
		zap.Int("locations", result.Locations),
		zap.Int("sessions", result.Sessions))

	return result, nil
}
