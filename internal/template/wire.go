//go:build wireinject
// +build wireinject

package template

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/template/client"
	"github.com/warekit/warehouse-layout/internal/template/delivery/http"
	"github.com/warekit/warehouse-layout/internal/template/domain"
	"github.com/warekit/warehouse-layout/internal/template/repository"
	"github.com/warekit/warehouse-layout/internal/template/usecase/command"
	"github.com/warekit/warehouse-layout/internal/template/usecase/query"
)

// ProvideTemplateRepository provides the template repository
func ProvideTemplateRepository(db *gorm.DB) domain.TemplateRepository {
	return repository.NewGormTemplateRepositoryWithTracing(db)
}

// Command Handlers Providers
func ProvideCreateTemplateHandler(repo domain.TemplateRepository) *command.CreateTemplateHandler {
	return command.NewCreateTemplateHandler(repo)
}

func ProvideUpdateTemplateHandler(repo domain.TemplateRepository) *command.UpdateTemplateHandler {
	return command.NewUpdateTemplateHandler(repo)
}

func ProvideDeleteTemplateHandler(repo domain.TemplateRepository) *command.DeleteTemplateHandler {
	return command.NewDeleteTemplateHandler(repo)
}

func ProvideDuplicateTemplateHandler(repo domain.TemplateRepository) *command.DuplicateTemplateHandler {
	return command.NewDuplicateTemplateHandler(repo)
}

func ProvideCreateFromConfigHandler(repo domain.TemplateRepository) *command.CreateFromConfigHandler {
	return command.NewCreateFromConfigHandler(repo)
}

func ProvideSyncAreasHandler(repo domain.TemplateRepository) *command.SyncAreasHandler {
	return command.NewSyncAreasHandler(repo)
}

func ProvideRecordUsageHandler(repo domain.TemplateRepository) *command.RecordUsageHandler {
	return command.NewRecordUsageHandler(repo)
}

// Query Handlers Providers
func ProvideGetTemplateHandler(repo domain.TemplateRepository) *query.GetTemplateHandler {
	return query.NewGetTemplateHandler(repo)
}

func ProvideGetByCodeHandler(repo domain.TemplateRepository) *query.GetByCodeHandler {
	return query.NewGetByCodeHandler(repo)
}

func ProvideListTemplatesHandler(repo domain.TemplateRepository) *query.ListTemplatesHandler {
	return query.NewListTemplatesHandler(repo)
}

func ProvidePopularTemplatesHandler(repo domain.TemplateRepository) *query.PopularTemplatesHandler {
	return query.NewPopularTemplatesHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideTemplateRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateTemplateHandler,
	ProvideUpdateTemplateHandler,
	ProvideDeleteTemplateHandler,
	ProvideDuplicateTemplateHandler,
	ProvideCreateFromConfigHandler,
	ProvideSyncAreasHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetTemplateHandler,
	ProvideGetByCodeHandler,
	ProvideListTemplatesHandler,
	ProvidePopularTemplatesHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, detector *client.DetectionClient) (*http.TemplateHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewTemplateHandlerWithDI,
	)
	return nil, nil
}

// InitializeRecordUsageHandler initializes the usage-count handler driven
// by template.applied events.
func InitializeRecordUsageHandler(db *gorm.DB) (*command.RecordUsageHandler, error) {
	wire.Build(
		RepositorySet,
		ProvideRecordUsageHandler,
	)
	return nil, nil
}
