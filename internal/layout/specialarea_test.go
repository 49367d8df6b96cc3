package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationsToSpecialAreas(t *testing.T) {
	rows := []AreaRow{
		{Code: "REC-01", Type: "RECEIVING", Capacity: 20, Zone: "INBOUND"},
		{Code: "01-01-001A", Type: "STORAGE", Capacity: 1, Zone: "GENERAL", IsStorage: true},
		{Code: "STG-01", Type: "STAGING", Capacity: 15, Zone: "OUTBOUND"},
		{Code: "DCK-02", Type: "DOCK", Capacity: 4, Zone: "DOCK"},
	}

	areas := LocationsToSpecialAreas(rows)
	require.Len(t, areas, 3)

	// One entry per non-storage row, capacity and zone verbatim.
	assert.Equal(t, SpecialArea{Code: "REC-01", Type: AreaReceiving, Capacity: 20, Zone: "INBOUND"}, areas[0])
	assert.Equal(t, SpecialArea{Code: "STG-01", Type: AreaStaging, Capacity: 15, Zone: "OUTBOUND"}, areas[1])
	assert.Equal(t, SpecialArea{Code: "DCK-02", Type: AreaDock, Capacity: 4, Zone: "DOCK"}, areas[2])
}

func TestLocationsToSpecialAreasEmpty(t *testing.T) {
	// A warehouse whose receiving rows were all deleted reconciles to an
	// empty list, not stale data.
	rows := []AreaRow{
		{Code: "01-01-001A", Type: "STORAGE", Capacity: 1, IsStorage: true},
	}
	areas := LocationsToSpecialAreas(rows)
	assert.Empty(t, areas)
	assert.NotNil(t, areas)
}

func TestGroupAreasByType(t *testing.T) {
	areas := []SpecialArea{
		{Code: "REC-01", Type: AreaReceiving, Capacity: 10, Zone: "A"},
		{Code: "REC-02", Type: AreaReceiving, Capacity: 10, Zone: "A"},
		{Code: "DCK-01", Type: AreaDock, Capacity: 2, Zone: "D"},
	}

	grouped := GroupAreasByType(areas)
	assert.Len(t, grouped[AreaReceiving], 2)
	assert.Len(t, grouped[AreaDock], 1)
	assert.Empty(t, grouped[AreaStaging])
}

func TestSpecialAreaValidate(t *testing.T) {
	valid := SpecialArea{Code: "REC-01", Type: AreaReceiving, Capacity: 1, Zone: "INBOUND"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, SpecialArea{Code: "", Type: AreaReceiving, Capacity: 1}.Validate())
	assert.Error(t, SpecialArea{Code: "X", Type: "PARKING", Capacity: 1}.Validate())
	assert.Error(t, SpecialArea{Code: "X", Type: AreaDock, Capacity: 0}.Validate())
}
