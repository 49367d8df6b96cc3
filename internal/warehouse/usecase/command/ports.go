package command

import (
	"context"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/warehouse/client"
)

// TemplateResolver resolves layout templates from the template service.
type TemplateResolver interface {
	GetTemplate(ctx context.Context, id uint) (*client.ResolvedTemplate, error)
	GetTemplateByCode(ctx context.Context, code string) (*client.ResolvedTemplate, error)
	SyncAreas(ctx context.Context, templateID uint, areas []layout.SpecialArea) error
}

// LocationGenerator rebuilds the location rows of a warehouse from a
// structure and its special areas, returning how many rows were created.
type LocationGenerator interface {
	Regenerate(ctx context.Context, warehouseID, zone string, s layout.Structure, areas []layout.SpecialArea) (int, error)
}

// AreaReader projects the live special areas of a warehouse from its
// location rows.
type AreaReader interface {
	LiveSpecialAreas(ctx context.Context, warehouseID string) ([]layout.SpecialArea, error)
}
