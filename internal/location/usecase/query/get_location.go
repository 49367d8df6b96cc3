package query

import (
	"github.com/warekit/warehouse-layout/internal/location/domain"
)

// GetLocationQuery fetches a single location by ID.
type GetLocationQuery struct {
	ID uint
}

// GetLocationHandler handles getting a single location
type GetLocationHandler struct {
	repo domain.LocationRepository
}

// NewGetLocationHandler creates a new get location handler
func NewGetLocationHandler(repo domain.LocationRepository) *GetLocationHandler {
	return &GetLocationHandler{repo: repo}
}

// Handle executes the get location query
func (h *GetLocationHandler) Handle(query GetLocationQuery) (*domain.Location, error) {
	return h.repo.FindByID(query.ID)
}
