package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/warehouse/client"
	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
	"github.com/warekit/warehouse-layout/kafka"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

type fakeConfigRepository struct {
	configs map[string]*domain.WarehouseConfig
	// retiredCodes mirrors the soft-delete rows of the real repository.
	// A replaced config keeps its row, so its share code stays taken.
	retiredCodes map[string]bool
	nextID       uint
}

func newFakeConfigRepo() *fakeConfigRepository {
	return &fakeConfigRepository{
		configs:      make(map[string]*domain.WarehouseConfig),
		retiredCodes: make(map[string]bool),
		nextID:       1,
	}
}

func (f *fakeConfigRepository) Create(c *domain.WarehouseConfig) error {
	c.ID = f.nextID
	f.nextID++
	stored := *c
	f.configs[c.WarehouseID] = &stored
	return nil
}

func (f *fakeConfigRepository) FindByID(id uint) (*domain.WarehouseConfig, error) {
	for _, c := range f.configs {
		if c.ID == id {
			found := *c
			return &found, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeConfigRepository) FindActiveByWarehouse(warehouseID string) (*domain.WarehouseConfig, error) {
	c, ok := f.configs[warehouseID]
	if !ok || !c.IsActive {
		return nil, apperror.ErrNotFound
	}
	found := *c
	return &found, nil
}

func (f *fakeConfigRepository) FindByCode(code string) (*domain.WarehouseConfig, error) {
	for _, c := range f.configs {
		if c.ShareCode == code {
			found := *c
			return &found, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeConfigRepository) ListWarehouses() ([]domain.WarehouseSummary, error) {
	var out []domain.WarehouseSummary
	for _, c := range f.configs {
		if !c.IsActive {
			continue
		}
		out = append(out, domain.WarehouseSummary{
			WarehouseID: c.WarehouseID,
			ConfigID:    c.ID,
			Name:        c.Name,
			ShareCode:   c.ShareCode,
		})
	}
	return out, nil
}

func (f *fakeConfigRepository) Update(c *domain.WarehouseConfig) error {
	stored := *c
	f.configs[c.WarehouseID] = &stored
	return nil
}

func (f *fakeConfigRepository) ReplaceActive(c *domain.WarehouseConfig) error {
	if old, ok := f.configs[c.WarehouseID]; ok {
		f.retiredCodes[old.ShareCode] = true
	}
	c.ID = f.nextID
	f.nextID++
	c.IsActive = true
	stored := *c
	f.configs[c.WarehouseID] = &stored
	return nil
}

func (f *fakeConfigRepository) CodeExists(code string) (bool, error) {
	if f.retiredCodes[code] {
		return true, nil
	}
	_, err := f.FindByCode(code)
	if errors.Is(err, apperror.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

type fakeResolver struct {
	template *client.ResolvedTemplate
	err      error
	synced   []layout.SpecialArea
}

func (f *fakeResolver) GetTemplate(ctx context.Context, id uint) (*client.ResolvedTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.template, nil
}

func (f *fakeResolver) GetTemplateByCode(ctx context.Context, code string) (*client.ResolvedTemplate, error) {
	return f.GetTemplate(ctx, 0)
}

func (f *fakeResolver) SyncAreas(ctx context.Context, templateID uint, areas []layout.SpecialArea) error {
	f.synced = areas
	return nil
}

type fakeAreaReader struct {
	areas []layout.SpecialArea
}

func (f *fakeAreaReader) LiveSpecialAreas(ctx context.Context, warehouseID string) ([]layout.SpecialArea, error) {
	return f.areas, nil
}

type fakeGenerator struct {
	calls int
	err   error
}

func (f *fakeGenerator) Regenerate(ctx context.Context, warehouseID, zone string, s layout.Structure, areas []layout.SpecialArea) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.calls++
	return layout.StorageLocations(s) + len(areas), nil
}

func sampleTemplate() *client.ResolvedTemplate {
	return &client.ResolvedTemplate{
		ID:           3,
		TemplateCode: "TPL-4A2R-TEST",
		Name:         "Standard hall",
		Structure: layout.Structure{
			NumAisles:             4,
			RacksPerAisle:         2,
			PositionsPerRack:      50,
			LevelsPerPosition:     4,
			LevelNames:            "ABCD",
			DefaultPalletCapacity: 1,
		},
		SpecialAreas: []layout.SpecialArea{
			{Code: "REC-01", Type: layout.AreaReceiving, Capacity: 20},
			{Code: "STG-01", Type: layout.AreaStaging, Capacity: 10},
		},
	}
}

func TestApplyTemplate_RoundTrip(t *testing.T) {
	repo := newFakeConfigRepo()
	gen := &fakeGenerator{}
	h := NewApplyTemplateHandler(repo, &fakeResolver{template: sampleTemplate()}, gen, kafka.NopPublisher{})

	result, err := h.Handle(context.Background(), ApplyTemplateCommand{
		WarehouseID: "wh-1",
		TemplateID:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, 1600, result.StorageLocations)
	assert.Equal(t, 1602, result.LocationsCreated)
	assert.Equal(t, 2, result.SpecialAreas)

	config, err := repo.FindActiveByWarehouse("wh-1")
	require.NoError(t, err)
	assert.Equal(t, "Standard hall", config.Name)
	assert.Equal(t, "TPL-4A2R-TEST", config.AppliedTemplateCode)
	require.NotNil(t, config.AppliedTemplateID)
	assert.Equal(t, uint(3), *config.AppliedTemplateID)
	assert.True(t, config.IsActive)
	assert.Contains(t, config.ShareCode, layout.WarehouseCodePrefix+"-")
	assert.Equal(t, 1600, config.TotalStorageLocations)

	// Stored totals must match the calculator: 1600 storage slots plus
	// the 20+10 special-area capacity of the template.
	assert.Equal(t, 1630, config.TotalCapacity)
}

func TestApplyTemplate_ReapplySameShapeKeepsConfig(t *testing.T) {
	repo := newFakeConfigRepo()
	gen := &fakeGenerator{}
	h := NewApplyTemplateHandler(repo, &fakeResolver{template: sampleTemplate()}, gen, kafka.NopPublisher{})

	first, err := h.Handle(context.Background(), ApplyTemplateCommand{WarehouseID: "wh-1", TemplateID: 3})
	require.NoError(t, err)

	second, err := h.Handle(context.Background(), ApplyTemplateCommand{WarehouseID: "wh-1", TemplateID: 3})
	require.NoError(t, err)

	assert.Equal(t, first.Config.ID, second.Config.ID)
	assert.Equal(t, first.Config.ShareCode, second.Config.ShareCode)
	assert.Equal(t, first.LocationsCreated, second.LocationsCreated)
	assert.Equal(t, 2, gen.calls, "reapply still regenerates location rows")
}

func TestApplyTemplate_DifferentTemplateReplacesConfig(t *testing.T) {
	repo := newFakeConfigRepo()
	resolver := &fakeResolver{template: sampleTemplate()}
	h := NewApplyTemplateHandler(repo, resolver, &fakeGenerator{}, kafka.NopPublisher{})

	first, err := h.Handle(context.Background(), ApplyTemplateCommand{WarehouseID: "wh-1", TemplateID: 3})
	require.NoError(t, err)

	bigger := sampleTemplate()
	bigger.ID = 9
	bigger.TemplateCode = "TPL-6A3R-TEST"
	bigger.Structure.NumAisles = 6
	resolver.template = bigger

	second, err := h.Handle(context.Background(), ApplyTemplateCommand{WarehouseID: "wh-1", TemplateID: 9})
	require.NoError(t, err)

	assert.NotEqual(t, first.Config.ID, second.Config.ID)
	assert.NotEqual(t, first.Config.ShareCode, second.Config.ShareCode)

	active, err := repo.FindActiveByWarehouse("wh-1")
	require.NoError(t, err)
	assert.Equal(t, 6, active.NumAisles)

	// The replaced config's share code is still held by its row, so a
	// fresh code generation must treat it as taken.
	taken, err := repo.CodeExists(first.Config.ShareCode)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestSyncTemplateAreasRefreshesSnapshotAndTotals(t *testing.T) {
	repo := newFakeConfigRepo()
	resolver := &fakeResolver{template: sampleTemplate()}
	apply := NewApplyTemplateHandler(repo, resolver, &fakeGenerator{}, kafka.NopPublisher{})

	_, err := apply.Handle(context.Background(), ApplyTemplateCommand{WarehouseID: "wh-1", TemplateID: 3})
	require.NoError(t, err)

	live := []layout.SpecialArea{
		{Code: "REC-01", Type: layout.AreaReceiving, Capacity: 40, Zone: "INBOUND"},
		{Code: "DOCK-1", Type: layout.AreaDock, Capacity: 4, Zone: "YARD"},
	}
	h := NewSyncTemplateAreasHandler(repo, resolver, &fakeAreaReader{areas: live})

	count, err := h.Handle(context.Background(), SyncTemplateAreasCommand{WarehouseID: "wh-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, live, resolver.synced)

	config, err := repo.FindActiveByWarehouse("wh-1")
	require.NoError(t, err)
	assert.Equal(t, 1644, config.TotalCapacity)

	areas, err := config.SpecialAreas()
	require.NoError(t, err)
	assert.Len(t, areas, 2)
}

func TestApplyTemplate_ResolveFailure(t *testing.T) {
	repo := newFakeConfigRepo()
	h := NewApplyTemplateHandler(repo, &fakeResolver{err: errors.New("connection refused")}, &fakeGenerator{}, kafka.NopPublisher{})

	_, err := h.Handle(context.Background(), ApplyTemplateCommand{WarehouseID: "wh-1", TemplateID: 3})
	require.Error(t, err)

	var perr *apperror.PartialError
	assert.False(t, errors.As(err, &perr), "nothing was applied, so the failure is not partial")
	assert.Empty(t, repo.configs)
}

func TestApplyTemplate_GenerationFailureIsPartial(t *testing.T) {
	repo := newFakeConfigRepo()
	gen := &fakeGenerator{err: errors.New("bulk insert failed")}
	h := NewApplyTemplateHandler(repo, &fakeResolver{template: sampleTemplate()}, gen, kafka.NopPublisher{})

	_, err := h.Handle(context.Background(), ApplyTemplateCommand{WarehouseID: "wh-1", TemplateID: 3})
	require.Error(t, err)

	var perr *apperror.PartialError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StepGenerateLocations, perr.Step)

	// The config copy survived; a retry can pick up from regeneration.
	_, findErr := repo.FindActiveByWarehouse("wh-1")
	assert.NoError(t, findErr)
}

func TestApplyTemplate_RequiresSelector(t *testing.T) {
	h := NewApplyTemplateHandler(newFakeConfigRepo(), &fakeResolver{}, &fakeGenerator{}, kafka.NopPublisher{})

	_, err := h.Handle(context.Background(), ApplyTemplateCommand{WarehouseID: "wh-1"})
	assert.Error(t, err)
}
