package query

import (
	"fmt"

	"github.com/warekit/warehouse-layout/internal/template/domain"
)

// ListTemplatesQuery represents the query to list templates
type ListTemplatesQuery struct {
	Scope  string
	Search string
	UserID uint
	Limit  int
	Offset int
}

// ListTemplatesHandler handles listing templates
type ListTemplatesHandler struct {
	repo domain.TemplateRepository
}

// NewListTemplatesHandler creates a new list templates handler
func NewListTemplatesHandler(repo domain.TemplateRepository) *ListTemplatesHandler {
	return &ListTemplatesHandler{repo: repo}
}

// Handle executes the list templates query
func (h *ListTemplatesHandler) Handle(query ListTemplatesQuery) ([]domain.WarehouseTemplate, error) {
	scope := query.Scope
	if scope == "" {
		scope = domain.ScopeAll
	}
	switch scope {
	case domain.ScopeMy, domain.ScopePublic, domain.ScopeAll:
	default:
		return nil, fmt.Errorf("unknown scope %q", query.Scope)
	}
	if scope == domain.ScopeMy && query.UserID == 0 {
		return nil, fmt.Errorf("scope %q requires an authenticated user", domain.ScopeMy)
	}

	return h.repo.FindAll(domain.ListFilter{
		Scope:  scope,
		Search: query.Search,
		UserID: query.UserID,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
}
