package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warehouse-layout/internal/layout"
)

func testStructure() layout.Structure {
	return layout.Structure{
		NumAisles:             4,
		RacksPerAisle:         2,
		PositionsPerRack:      50,
		LevelsPerPosition:     4,
		LevelNames:            "ABCD",
		DefaultPalletCapacity: 1,
	}
}

func TestRecalculateTotalsIncludesSpecialAreas(t *testing.T) {
	config := &WarehouseConfig{}
	config.SetStructure(testStructure())
	require.NoError(t, config.SetSpecialAreas([]layout.SpecialArea{
		{Code: "REC-01", Type: layout.AreaReceiving, Capacity: 20, Zone: "INBOUND"},
		{Code: "DOCK-1", Type: layout.AreaDock, Capacity: 10, Zone: "YARD"},
	}))

	require.NoError(t, config.RecalculateTotals())

	assert.Equal(t, 1600, config.TotalStorageLocations)
	assert.Equal(t, 1630, config.TotalCapacity)

	areas, err := config.SpecialAreas()
	require.NoError(t, err)
	assert.Equal(t, layout.TotalCapacity(config.Structure(), areas), config.TotalCapacity)
}

func TestRecalculateTotalsWithoutAreas(t *testing.T) {
	config := &WarehouseConfig{}
	config.SetStructure(testStructure())

	require.NoError(t, config.RecalculateTotals())

	assert.Equal(t, layout.StorageCapacity(config.Structure()), config.TotalCapacity)
}

func TestRecalculateTotalsBidimensional(t *testing.T) {
	s := testStructure()
	s.BidimensionalRacks = true

	config := &WarehouseConfig{}
	config.SetStructure(s)
	require.NoError(t, config.SetSpecialAreas([]layout.SpecialArea{
		{Code: "STG-01", Type: layout.AreaStaging, Capacity: 5, Zone: "OUTBOUND"},
	}))

	require.NoError(t, config.RecalculateTotals())

	assert.Equal(t, 1600, config.TotalStorageLocations)
	assert.Equal(t, 3205, config.TotalCapacity)
}
