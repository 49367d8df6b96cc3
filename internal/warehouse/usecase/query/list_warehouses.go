package query

import (
	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
)

// ListWarehousesQuery lists all configured warehouses.
type ListWarehousesQuery struct{}

// ListWarehousesHandler handles the warehouses overview listing
type ListWarehousesHandler struct {
	repo domain.ConfigRepository
}

// NewListWarehousesHandler creates a new list warehouses handler
func NewListWarehousesHandler(repo domain.ConfigRepository) *ListWarehousesHandler {
	return &ListWarehousesHandler{repo: repo}
}

// Handle executes the list warehouses query
func (h *ListWarehousesHandler) Handle(query ListWarehousesQuery) ([]domain.WarehouseSummary, error) {
	return h.repo.ListWarehouses()
}
