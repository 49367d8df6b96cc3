package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

type stubConfigRepository struct {
	active map[string]*domain.WarehouseConfig
}

func (s *stubConfigRepository) Create(*domain.WarehouseConfig) error        { return nil }
func (s *stubConfigRepository) FindByID(uint) (*domain.WarehouseConfig, error) {
	return nil, apperror.ErrNotFound
}
func (s *stubConfigRepository) FindActiveByWarehouse(warehouseID string) (*domain.WarehouseConfig, error) {
	c, ok := s.active[warehouseID]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return c, nil
}
func (s *stubConfigRepository) FindByCode(string) (*domain.WarehouseConfig, error) {
	return nil, apperror.ErrNotFound
}
func (s *stubConfigRepository) ListWarehouses() ([]domain.WarehouseSummary, error) { return nil, nil }
func (s *stubConfigRepository) Update(*domain.WarehouseConfig) error               { return nil }
func (s *stubConfigRepository) ReplaceActive(*domain.WarehouseConfig) error        { return nil }
func (s *stubConfigRepository) CodeExists(string) (bool, error)                    { return false, nil }

func TestGetConfig_UnconfiguredIsNotFound(t *testing.T) {
	h := NewGetConfigHandler(&stubConfigRepository{active: map[string]*domain.WarehouseConfig{}})

	_, err := h.Handle(GetConfigQuery{WarehouseID: "wh-empty"})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetConfig_ReturnsActive(t *testing.T) {
	repo := &stubConfigRepository{active: map[string]*domain.WarehouseConfig{
		"wh-1": {ID: 5, WarehouseID: "wh-1", Name: "Main hall", IsActive: true},
	}}

	config, err := NewGetConfigHandler(repo).Handle(GetConfigQuery{WarehouseID: "wh-1"})
	require.NoError(t, err)
	assert.Equal(t, uint(5), config.ID)
}

func TestPreviewConfig_ValidStructure(t *testing.T) {
	h := NewPreviewConfigHandler()

	result := h.Handle(PreviewConfigQuery{
		Structure: layout.Structure{
			NumAisles:             2,
			RacksPerAisle:         2,
			PositionsPerRack:      3,
			LevelsPerPosition:     2,
			LevelNames:            "AB",
			DefaultPalletCapacity: 1,
		},
		SpecialAreas: []layout.SpecialArea{
			{Code: "REC-01", Type: layout.AreaReceiving, Capacity: 10},
		},
	})

	assert.Equal(t, 24, result.StorageLocations)
	assert.Equal(t, 24, result.StorageCapacity)
	assert.Equal(t, 10, result.SpecialCapacity)
	assert.Equal(t, 34, result.TotalCapacity)
	assert.Equal(t, "01-01-001A", result.FirstCode)
	assert.Equal(t, "02-02-003B", result.LastCode)
	assert.Len(t, result.SampleCodes, 12)
}

func TestPreviewConfig_InvalidStructureYieldsZeros(t *testing.T) {
	h := NewPreviewConfigHandler()

	result := h.Handle(PreviewConfigQuery{
		Structure: layout.Structure{NumAisles: 0, RacksPerAisle: 2, PositionsPerRack: 3, LevelsPerPosition: 2},
	})

	assert.Equal(t, 0, result.StorageLocations)
	assert.Equal(t, 0, result.StorageCapacity)
	assert.Empty(t, result.SampleCodes)
	assert.Empty(t, result.FirstCode)
}

func TestPreviewConfig_CompactFormat(t *testing.T) {
	h := NewPreviewConfigHandler()
	format := layout.PositionLevelFormat()

	result := h.Handle(PreviewConfigQuery{
		Structure: layout.Structure{
			NumAisles:             1,
			RacksPerAisle:         1,
			PositionsPerRack:      2,
			LevelsPerPosition:     2,
			LevelNames:            "AB",
			DefaultPalletCapacity: 1,
		},
		Format: &format,
	})

	assert.Equal(t, "001A", result.FirstCode)
	assert.Equal(t, "002B", result.LastCode)
}

func TestValidateConfig_ReportsEveryProblem(t *testing.T) {
	h := NewValidateConfigHandler()

	report := h.Handle(ValidateConfigQuery{
		Structure: layout.Structure{
			NumAisles:         0,
			RacksPerAisle:     -1,
			PositionsPerRack:  3,
			LevelsPerPosition: 4,
			LevelNames:        "AB",
		},
		SpecialAreas: []layout.SpecialArea{
			{Code: "REC-01", Type: layout.AreaReceiving, Capacity: 10},
			{Code: "REC-01", Type: layout.AreaReceiving, Capacity: 5},
			{Code: "BAD", Type: "PARKING", Capacity: 1},
		},
	})

	assert.False(t, report.Valid)
	assert.Contains(t, report.Problems, "num_aisles")
	assert.Contains(t, report.Problems, "racks_per_aisle")
	assert.Contains(t, report.Problems, "level_names")
	assert.Contains(t, report.Problems, "special_areas[1]")
	assert.Contains(t, report.Problems, "special_areas[2]")
}

func TestValidateConfig_CleanStructure(t *testing.T) {
	h := NewValidateConfigHandler()

	report := h.Handle(ValidateConfigQuery{
		Structure: layout.Structure{
			NumAisles:             4,
			RacksPerAisle:         2,
			PositionsPerRack:      50,
			LevelsPerPosition:     4,
			LevelNames:            "ABCD",
			DefaultPalletCapacity: 1,
		},
	})

	assert.True(t, report.Valid)
	assert.Empty(t, report.Problems)
}
