//go:build wireinject
// +build wireinject

package warehouse

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/warehouse/delivery/http"
	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
	"github.com/warekit/warehouse-layout/internal/warehouse/repository"
	"github.com/warekit/warehouse-layout/internal/warehouse/usecase/command"
	"github.com/warekit/warehouse-layout/internal/warehouse/usecase/query"
	"github.com/warekit/warehouse-layout/kafka"
)

// ProvideConfigRepository provides the warehouse config repository
func ProvideConfigRepository(db *gorm.DB) domain.ConfigRepository {
	return repository.NewGormConfigRepositoryWithTracing(db)
}

// Command Handlers Providers
func ProvideSetupWarehouseHandler(repo domain.ConfigRepository, generator command.LocationGenerator, publisher kafka.EventPublisher) *command.SetupWarehouseHandler {
	return command.NewSetupWarehouseHandler(repo, generator, publisher)
}

func ProvideUpdateConfigHandler(repo domain.ConfigRepository, generator command.LocationGenerator, publisher kafka.EventPublisher) *command.UpdateConfigHandler {
	return command.NewUpdateConfigHandler(repo, generator, publisher)
}

func ProvideApplyTemplateHandler(repo domain.ConfigRepository, resolver command.TemplateResolver, generator command.LocationGenerator, publisher kafka.EventPublisher) *command.ApplyTemplateHandler {
	return command.NewApplyTemplateHandler(repo, resolver, generator, publisher)
}

func ProvideSyncTemplateAreasHandler(repo domain.ConfigRepository, resolver command.TemplateResolver, areas command.AreaReader) *command.SyncTemplateAreasHandler {
	return command.NewSyncTemplateAreasHandler(repo, resolver, areas)
}

// Query Handlers Providers
func ProvideGetConfigHandler(repo domain.ConfigRepository) *query.GetConfigHandler {
	return query.NewGetConfigHandler(repo)
}

func ProvidePreviewConfigHandler() *query.PreviewConfigHandler {
	return query.NewPreviewConfigHandler()
}

func ProvideValidateConfigHandler() *query.ValidateConfigHandler {
	return query.NewValidateConfigHandler()
}

func ProvideListWarehousesHandler(repo domain.ConfigRepository) *query.ListWarehousesHandler {
	return query.NewListWarehousesHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideConfigRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideSetupWarehouseHandler,
	ProvideUpdateConfigHandler,
	ProvideApplyTemplateHandler,
	ProvideSyncTemplateAreasHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetConfigHandler,
	ProvidePreviewConfigHandler,
	ProvideValidateConfigHandler,
	ProvideListWarehousesHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	resolver command.TemplateResolver,
	generator command.LocationGenerator,
	areas command.AreaReader,
	publisher kafka.EventPublisher,
) (*http.WarehouseHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewWarehouseHandlerWithDI,
	)
	return nil, nil
}
