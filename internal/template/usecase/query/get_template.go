package query

import (
	"github.com/warekit/warehouse-layout/internal/template/domain"
)

// GetTemplateQuery represents the query to get a template by ID
type GetTemplateQuery struct {
	ID uint
}

// GetTemplateHandler handles getting a single template
type GetTemplateHandler struct {
	repo domain.TemplateRepository
}

// NewGetTemplateHandler creates a new get template handler
func NewGetTemplateHandler(repo domain.TemplateRepository) *GetTemplateHandler {
	return &GetTemplateHandler{repo: repo}
}

// Handle executes the get template query
func (h *GetTemplateHandler) Handle(query GetTemplateQuery) (*domain.WarehouseTemplate, error) {
	return h.repo.FindByID(query.ID)
}
