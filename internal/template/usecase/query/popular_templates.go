package query

import (
	"github.com/warekit/warehouse-layout/internal/template/domain"
)

const defaultPopularLimit = 10

// PopularTemplatesQuery represents the query to list popular templates
type PopularTemplatesQuery struct {
	Limit int
}

// PopularTemplatesHandler handles listing popular public templates
type PopularTemplatesHandler struct {
	repo domain.TemplateRepository
}

// NewPopularTemplatesHandler creates a new popular templates handler
func NewPopularTemplatesHandler(repo domain.TemplateRepository) *PopularTemplatesHandler {
	return &PopularTemplatesHandler{repo: repo}
}

// Handle executes the popular templates query
func (h *PopularTemplatesHandler) Handle(query PopularTemplatesQuery) ([]domain.WarehouseTemplate, error) {
	limit := query.Limit
	if limit <= 0 || limit > 50 {
		limit = defaultPopularLimit
	}
	return h.repo.FindPopular(limit)
}
