package query

import (
	"fmt"

	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
)

// GetConfigQuery fetches the active config of a warehouse.
type GetConfigQuery struct {
	WarehouseID string
}

// GetConfigHandler handles fetching the active warehouse config
type GetConfigHandler struct {
	repo domain.ConfigRepository
}

// NewGetConfigHandler creates a new get config handler
func NewGetConfigHandler(repo domain.ConfigRepository) *GetConfigHandler {
	return &GetConfigHandler{repo: repo}
}

// Handle executes the get config query. An unconfigured warehouse comes
// back as apperror.ErrNotFound; callers treat that as a normal state,
// not a failure.
func (h *GetConfigHandler) Handle(query GetConfigQuery) (*domain.WarehouseConfig, error) {
	if query.WarehouseID == "" {
		return nil, fmt.Errorf("warehouse id is required")
	}
	return h.repo.FindActiveByWarehouse(query.WarehouseID)
}
