package query

import (
	"fmt"
	"strings"

	"github.com/warekit/warehouse-layout/internal/template/domain"
)

// GetByCodeQuery looks a template up by its share code, e.g. "TPL-4A2R-7F3B".
type GetByCodeQuery struct {
	Code string
}

// GetByCodeHandler handles share-code lookups
type GetByCodeHandler struct {
	repo domain.TemplateRepository
}

// NewGetByCodeHandler creates a new get-by-code handler
func NewGetByCodeHandler(repo domain.TemplateRepository) *GetByCodeHandler {
	return &GetByCodeHandler{repo: repo}
}

// Handle executes the get-by-code query. Codes are matched
// case-insensitively since they are typed or pasted by hand.
func (h *GetByCodeHandler) Handle(query GetByCodeQuery) (*domain.WarehouseTemplate, error) {
	code := strings.ToUpper(strings.TrimSpace(query.Code))
	if code == "" {
		return nil, fmt.Errorf("template code is required")
	}
	return h.repo.FindByCode(code)
}
