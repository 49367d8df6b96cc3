//go:build wireinject
// +build wireinject

package location

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/location/delivery/http"
	"github.com/warekit/warehouse-layout/internal/location/domain"
	"github.com/warekit/warehouse-layout/internal/location/repository"
	"github.com/warekit/warehouse-layout/internal/location/usecase/command"
	"github.com/warekit/warehouse-layout/internal/location/usecase/query"
)

// ProvideLocationRepository provides the location repository
func ProvideLocationRepository(db *gorm.DB) domain.LocationRepository {
	return repository.NewGormLocationRepositoryWithTracing(db)
}

// Command Handlers Providers
func ProvideCreateLocationHandler(repo domain.LocationRepository) *command.CreateLocationHandler {
	return command.NewCreateLocationHandler(repo)
}

func ProvideUpdateLocationHandler(repo domain.LocationRepository) *command.UpdateLocationHandler {
	return command.NewUpdateLocationHandler(repo)
}

func ProvideDeleteLocationHandler(repo domain.LocationRepository) *command.DeleteLocationHandler {
	return command.NewDeleteLocationHandler(repo)
}

func ProvideBulkCreateHandler(repo domain.LocationRepository) *command.BulkCreateHandler {
	return command.NewBulkCreateHandler(repo)
}

func ProvideGenerateLocationsHandler(repo domain.LocationRepository) *command.GenerateLocationsHandler {
	return command.NewGenerateLocationsHandler(repo)
}

// Query Handlers Providers
func ProvideGetLocationHandler(repo domain.LocationRepository) *query.GetLocationHandler {
	return query.NewGetLocationHandler(repo)
}

func ProvideListLocationsHandler(repo domain.LocationRepository) *query.ListLocationsHandler {
	return query.NewListLocationsHandler(repo)
}

func ProvideExportLocationsHandler(repo domain.LocationRepository) *query.ExportLocationsHandler {
	return query.NewExportLocationsHandler(repo)
}

func ProvideSpecialAreasHandler(repo domain.LocationRepository) *query.SpecialAreasHandler {
	return query.NewSpecialAreasHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideLocationRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateLocationHandler,
	ProvideUpdateLocationHandler,
	ProvideDeleteLocationHandler,
	ProvideBulkCreateHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetLocationHandler,
	ProvideListLocationsHandler,
	ProvideExportLocationsHandler,
	ProvideSpecialAreasHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.LocationHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewLocationHandlerWithDI,
	)
	return nil, nil
}

// InitializeGenerator initializes the location generator used by the
// warehouse service's apply and setup flows
func InitializeGenerator(db *gorm.DB) (*command.GenerateLocationsHandler, error) {
	wire.Build(
		RepositorySet,
		ProvideGenerateLocationsHandler,
	)
	return nil, nil
}

// InitializeAreaReader initializes the live special-area projection
func InitializeAreaReader(db *gorm.DB) (*query.SpecialAreasHandler, error) {
	wire.Build(
		RepositorySet,
		ProvideSpecialAreasHandler,
	)
	return nil, nil
}
