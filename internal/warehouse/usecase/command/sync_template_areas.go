package command

import (
	"context"
	"fmt"

	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
)

// SyncTemplateAreasCommand recaptures the live special areas of a
// warehouse and pushes them into the applied template's snapshot.
type SyncTemplateAreasCommand struct {
	WarehouseID string
}

// SyncTemplateAreasHandler handles pushing live areas back to the template
type SyncTemplateAreasHandler struct {
	repo     domain.ConfigRepository
	resolver TemplateResolver
	areas    AreaReader
}

// NewSyncTemplateAreasHandler creates a new sync template areas handler
func NewSyncTemplateAreasHandler(
	repo domain.ConfigRepository,
	resolver TemplateResolver,
	areas AreaReader,
) *SyncTemplateAreasHandler {
	return &SyncTemplateAreasHandler{
		repo:     repo,
		resolver: resolver,
		areas:    areas,
	}
}

// Handle projects the warehouse's location rows into special areas and
// synchronizes both the config copy and the template snapshot. Location
// rows are the source of truth; snapshots only ever follow them.
func (h *SyncTemplateAreasHandler) Handle(ctx context.Context, cmd SyncTemplateAreasCommand) (int, error) {
	if cmd.WarehouseID == "" {
		return 0, fmt.Errorf("warehouse id is required")
	}

	config, err := h.repo.FindActiveByWarehouse(cmd.WarehouseID)
	if err != nil {
		return 0, err
	}
	if config.AppliedTemplateID == nil {
		return 0, fmt.Errorf("warehouse %q has no applied template", cmd.WarehouseID)
	}

	live, err := h.areas.LiveSpecialAreas(ctx, cmd.WarehouseID)
	if err != nil {
		return 0, fmt.Errorf("failed to project live areas: %w", err)
	}

	if err := config.SetSpecialAreas(live); err != nil {
		return 0, err
	}
	if err := config.RecalculateTotals(); err != nil {
		return 0, err
	}
	if err := h.repo.Update(config); err != nil {
		return 0, fmt.Errorf("failed to update config areas: %w", err)
	}

	if err := h.resolver.SyncAreas(ctx, *config.AppliedTemplateID, live); err != nil {
		return 0, fmt.Errorf("failed to sync template areas: %w", err)
	}

	return len(live), nil
}
