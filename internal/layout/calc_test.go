package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStructure() Structure {
	return Structure{
		NumAisles:             4,
		RacksPerAisle:         2,
		PositionsPerRack:      50,
		LevelsPerPosition:     4,
		LevelNames:            "ABCD",
		DefaultPalletCapacity: 1,
	}
}

func TestStorageLocations(t *testing.T) {
	s := validStructure()
	assert.Equal(t, 400, StorageLocations(s))
	assert.Equal(t, 400, StorageCapacity(s))
}

func TestStorageLocationsIdempotent(t *testing.T) {
	s := validStructure()
	first := StorageLocations(s)
	second := StorageLocations(s)
	assert.Equal(t, first, second)
	assert.Equal(t, StorageCapacity(s), StorageCapacity(s))
}

func TestStorageLocationsDefensiveFloor(t *testing.T) {
	cases := []Structure{
		{NumAisles: 0, RacksPerAisle: 2, PositionsPerRack: 50, LevelsPerPosition: 4},
		{NumAisles: 4, RacksPerAisle: -1, PositionsPerRack: 50, LevelsPerPosition: 4},
		{NumAisles: 4, RacksPerAisle: 2, PositionsPerRack: 0, LevelsPerPosition: 4},
		{NumAisles: 4, RacksPerAisle: 2, PositionsPerRack: 50, LevelsPerPosition: -3},
		{},
	}

	for _, s := range cases {
		assert.Equal(t, 0, StorageLocations(s))
		assert.Equal(t, 0, StorageCapacity(s))
	}
}

func TestStorageCapacityMonotonicity(t *testing.T) {
	base := validStructure()
	baseLocations := StorageLocations(base)
	baseCapacity := StorageCapacity(base)

	bump := []func(*Structure){
		func(s *Structure) { s.NumAisles++ },
		func(s *Structure) { s.RacksPerAisle++ },
		func(s *Structure) { s.PositionsPerRack++ },
		func(s *Structure) { s.LevelsPerPosition++ },
		func(s *Structure) { s.DefaultPalletCapacity++ },
	}

	for _, mutate := range bump {
		s := validStructure()
		mutate(&s)
		assert.GreaterOrEqual(t, StorageLocations(s), baseLocations)
		assert.GreaterOrEqual(t, StorageCapacity(s), baseCapacity)
	}
}

func TestBidimensionalRacksDoubleCapacity(t *testing.T) {
	s := validStructure()
	flat := StorageCapacity(s)

	s.BidimensionalRacks = true
	assert.Equal(t, flat*2, StorageCapacity(s))
	// Location count is unaffected by the capacity flag.
	assert.Equal(t, 400, StorageLocations(s))
}

func TestSpecialCapacity(t *testing.T) {
	areas := []SpecialArea{
		{Code: "REC-01", Type: AreaReceiving, Capacity: 20, Zone: "INBOUND"},
		{Code: "STG-01", Type: AreaStaging, Capacity: 15, Zone: "OUTBOUND"},
		{Code: "DCK-01", Type: AreaDock, Capacity: 5, Zone: "DOCK"},
	}
	assert.Equal(t, 40, SpecialCapacity(areas))
	assert.Equal(t, 0, SpecialCapacity(nil))
}

func TestTotalCapacity(t *testing.T) {
	s := validStructure()
	areas := []SpecialArea{
		{Code: "REC-01", Type: AreaReceiving, Capacity: 25, Zone: "INBOUND"},
	}
	require.Equal(t, 425, TotalCapacity(s, areas))
}
