package query

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/location/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

type stubLocationRepository struct {
	locations []domain.Location
	calls     int
}

func (r *stubLocationRepository) Create(*domain.Location) error { return nil }

func (r *stubLocationRepository) FindByID(id uint) (*domain.Location, error) {
	for i := range r.locations {
		if r.locations[i].ID == id {
			return &r.locations[i], nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *stubLocationRepository) FindByCode(string, string) (*domain.Location, error) {
	return nil, apperror.ErrNotFound
}

func (r *stubLocationRepository) FindAll(filter domain.ListFilter) ([]domain.Location, error) {
	r.calls++
	var out []domain.Location
	for _, location := range r.locations {
		if filter.WarehouseID != "" && location.WarehouseID != filter.WarehouseID {
			continue
		}
		out = append(out, location)
	}
	return out, nil
}

func (r *stubLocationRepository) Count(filter domain.ListFilter) (int64, error) {
	found, err := r.FindAll(filter)
	return int64(len(found)), err
}

func (r *stubLocationRepository) Update(*domain.Location) error { return nil }
func (r *stubLocationRepository) Delete(uint) error             { return nil }

func (r *stubLocationRepository) BulkCreate([]domain.Location) (int, []domain.BulkError, error) {
	return 0, nil, nil
}

func (r *stubLocationRepository) DeleteByWarehouse(string) error { return nil }

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func sampleRows() []domain.Location {
	return []domain.Location{
		{
			ID: 1, WarehouseID: "wh-1", Code: "01-01-001A",
			LocationType: domain.TypeStorage, Zone: "MAIN",
			Aisle: intPtr(1), Rack: intPtr(1), Position: intPtr(1), Level: strPtr("A"),
			PalletCapacity: 2, IsActive: true,
		},
		{
			ID: 2, WarehouseID: "wh-1", Code: "REC-01",
			LocationType: domain.TypeReceiving, Zone: "INBOUND",
			PalletCapacity: 10, IsActive: true,
		},
		{
			ID: 3, WarehouseID: "wh-1", Code: "DOCK-1",
			LocationType: domain.TypeDock, Zone: "YARD",
			PalletCapacity: 4, IsActive: true,
		},
		{
			ID: 4, WarehouseID: "wh-2", Code: "STAGE-1",
			LocationType: domain.TypeStaging, Zone: "MAIN",
			PalletCapacity: 1, IsActive: true,
		},
	}
}

func TestSpecialAreasSkipsStorageRows(t *testing.T) {
	repo := &stubLocationRepository{locations: sampleRows()}
	handler := NewSpecialAreasHandler(repo)

	areas, err := handler.LiveSpecialAreas(context.Background(), "wh-1")
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, "REC-01", areas[0].Code)
	assert.Equal(t, layout.AreaReceiving, areas[0].Type)
	assert.Equal(t, 10, areas[0].Capacity)
	assert.Equal(t, "INBOUND", areas[0].Zone)

	assert.Equal(t, "DOCK-1", areas[1].Code)
	assert.Equal(t, layout.AreaDock, areas[1].Type)
}

func TestSpecialAreasEmptyWarehouse(t *testing.T) {
	repo := &stubLocationRepository{}
	handler := NewSpecialAreasHandler(repo)

	areas, err := handler.LiveSpecialAreas(context.Background(), "wh-9")
	require.NoError(t, err)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestExportCSV(t *testing.T) {
	repo := &stubLocationRepository{locations: sampleRows()}
	handler := NewExportLocationsHandler(repo)

	result, err := handler.Handle(ExportLocationsQuery{WarehouseID: "wh-1", Format: FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "locations-wh-1.csv", result.Filename)

	records, err := csv.NewReader(strings.NewReader(string(result.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 rows

	assert.Equal(t, "code", records[0][0])
	assert.Equal(t, "01-01-001A", records[1][0])
	assert.Equal(t, "STORAGE", records[1][1])
	assert.Equal(t, "1", records[1][3]) // aisle
	assert.Equal(t, "A", records[1][6]) // level
	assert.Equal(t, "", records[2][3])  // special areas have no aisle
}

func TestExportJSONByDefault(t *testing.T) {
	repo := &stubLocationRepository{locations: sampleRows()}
	handler := NewExportLocationsHandler(repo)

	result, err := handler.Handle(ExportLocationsQuery{WarehouseID: "wh-1"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)
	assert.Contains(t, string(result.Data), "\"01-01-001A\"")
}

func TestExportUnknownFormat(t *testing.T) {
	handler := NewExportLocationsHandler(&stubLocationRepository{})

	_, err := handler.Handle(ExportLocationsQuery{WarehouseID: "wh-1", Format: "xml"})
	assert.Error(t, err)
}

func TestListLocationsReturnsPageAndTotal(t *testing.T) {
	repo := &stubLocationRepository{locations: sampleRows()}
	handler := NewListLocationsHandler(repo)

	result, err := handler.Handle(ListLocationsQuery{WarehouseID: "wh-1"})
	require.NoError(t, err)
	assert.Len(t, result.Locations, 3)
	assert.Equal(t, int64(3), result.Total)
}

func TestListLocationsRequiresWarehouse(t *testing.T) {
	handler := NewListLocationsHandler(&stubLocationRepository{})

	_, err := handler.Handle(ListLocationsQuery{})
	assert.Error(t, err)
}
