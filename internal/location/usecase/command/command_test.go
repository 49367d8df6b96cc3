package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/location/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

type fakeLocationRepository struct {
	nextID    uint
	locations map[uint]*domain.Location
}

func newFakeLocationRepository() *fakeLocationRepository {
	return &fakeLocationRepository{
		nextID:    1,
		locations: make(map[uint]*domain.Location),
	}
}

func (r *fakeLocationRepository) Create(location *domain.Location) error {
	if _, err := r.FindByCode(location.WarehouseID, location.Code); err == nil {
		return fmt.Errorf("duplicate key")
	}
	location.ID = r.nextID
	r.nextID++
	copied := *location
	r.locations[location.ID] = &copied
	return nil
}

func (r *fakeLocationRepository) FindByID(id uint) (*domain.Location, error) {
	location, ok := r.locations[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	copied := *location
	return &copied, nil
}

func (r *fakeLocationRepository) FindByCode(warehouseID, code string) (*domain.Location, error) {
	for _, location := range r.locations {
		if location.WarehouseID == warehouseID && location.Code == code {
			copied := *location
			return &copied, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *fakeLocationRepository) FindAll(filter domain.ListFilter) ([]domain.Location, error) {
	var out []domain.Location
	for _, location := range r.locations {
		if filter.WarehouseID != "" && location.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.LocationType != "" && location.LocationType != filter.LocationType {
			continue
		}
		out = append(out, *location)
	}
	return out, nil
}

func (r *fakeLocationRepository) Count(filter domain.ListFilter) (int64, error) {
	found, err := r.FindAll(filter)
	return int64(len(found)), err
}

func (r *fakeLocationRepository) Update(location *domain.Location) error {
	if _, ok := r.locations[location.ID]; !ok {
		return apperror.ErrNotFound
	}
	copied := *location
	r.locations[location.ID] = &copied
	return nil
}

func (r *fakeLocationRepository) Delete(id uint) error {
	if _, ok := r.locations[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.locations, id)
	return nil
}

func (r *fakeLocationRepository) BulkCreate(locations []domain.Location) (int, []domain.BulkError, error) {
	created := 0
	var errs []domain.BulkError
	for i := range locations {
		row := locations[i]
		if err := r.Create(&row); err != nil {
			errs = append(errs, domain.BulkError{Code: row.Code, Error: err.Error()})
			continue
		}
		created++
	}
	return created, errs, nil
}

func (r *fakeLocationRepository) DeleteByWarehouse(warehouseID string) error {
	for id, location := range r.locations {
		if location.WarehouseID == warehouseID {
			delete(r.locations, id)
		}
	}
	return nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateLocationDefaults(t *testing.T) {
	repo := newFakeLocationRepository()
	handler := NewCreateLocationHandler(repo)

	location, err := handler.Handle(CreateLocationCommand{
		WarehouseID:  "wh-1",
		Code:         "  rec-01 ",
		LocationType: domain.TypeReceiving,
	})
	require.NoError(t, err)

	assert.Equal(t, "REC-01", location.Code)
	assert.Equal(t, "MAIN", location.Zone)
	assert.Equal(t, 1, location.PalletCapacity)
	assert.True(t, location.IsActive)
	assert.NotZero(t, location.ID)
}

func TestCreateLocationStorageNeedsCoordinates(t *testing.T) {
	repo := newFakeLocationRepository()
	handler := NewCreateLocationHandler(repo)

	_, err := handler.Handle(CreateLocationCommand{
		WarehouseID:  "wh-1",
		Code:         "01-01-001A",
		LocationType: domain.TypeStorage,
	})
	require.Error(t, err)

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "coordinates")
	assert.Empty(t, repo.locations)
}

func TestCreateLocationDuplicateCodeConflicts(t *testing.T) {
	repo := newFakeLocationRepository()
	handler := NewCreateLocationHandler(repo)

	cmd := CreateLocationCommand{
		WarehouseID:  "wh-1",
		Code:         "DOCK-1",
		LocationType: domain.TypeDock,
	}
	_, err := handler.Handle(cmd)
	require.NoError(t, err)

	_, err = handler.Handle(cmd)
	var cerr *apperror.ConflictError
	require.ErrorAs(t, err, &cerr)

	// Same code in another warehouse is fine.
	cmd.WarehouseID = "wh-2"
	_, err = handler.Handle(cmd)
	assert.NoError(t, err)
}

func TestUpdateLocationOnlyMutableFields(t *testing.T) {
	repo := newFakeLocationRepository()
	created, err := NewCreateLocationHandler(repo).Handle(CreateLocationCommand{
		WarehouseID:  "wh-1",
		Code:         "01-01-001A",
		LocationType: domain.TypeStorage,
		Aisle:        intPtr(1),
		Rack:         intPtr(1),
		Position:     intPtr(1),
		Level:        strPtr("A"),
	})
	require.NoError(t, err)

	handler := NewUpdateLocationHandler(repo)
	updated, err := handler.Handle(UpdateLocationCommand{
		ID:             created.ID,
		Zone:           strPtr("COLD"),
		PalletCapacity: intPtr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, "COLD", updated.Zone)
	assert.Equal(t, 3, updated.PalletCapacity)
	assert.Equal(t, "01-01-001A", updated.Code)
	assert.True(t, updated.IsActive)

	_, err = handler.Handle(UpdateLocationCommand{
		ID:             created.ID,
		PalletCapacity: intPtr(-1),
	})
	assert.Error(t, err)
}

func TestDeleteLocation(t *testing.T) {
	repo := newFakeLocationRepository()
	created, err := NewCreateLocationHandler(repo).Handle(CreateLocationCommand{
		WarehouseID:  "wh-1",
		Code:         "STAGE-1",
		LocationType: domain.TypeStaging,
	})
	require.NoError(t, err)

	handler := NewDeleteLocationHandler(repo)
	require.NoError(t, handler.Handle(DeleteLocationCommand{ID: created.ID}))

	err = handler.Handle(DeleteLocationCommand{ID: created.ID})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteFreesCodeForReuse(t *testing.T) {
	repo := newFakeLocationRepository()
	createHandler := NewCreateLocationHandler(repo)

	created, err := createHandler.Handle(CreateLocationCommand{
		WarehouseID:  "wh-1",
		Code:         "REC-01",
		LocationType: domain.TypeReceiving,
	})
	require.NoError(t, err)

	require.NoError(t, NewDeleteLocationHandler(repo).Handle(DeleteLocationCommand{ID: created.ID}))

	// A deleted code leaves no trace behind, so re-creating it must
	// succeed rather than trip the per-warehouse uniqueness check or
	// the underlying unique index.
	recreated, err := createHandler.Handle(CreateLocationCommand{
		WarehouseID:  "wh-1",
		Code:         "REC-01",
		LocationType: domain.TypeReceiving,
	})
	require.NoError(t, err)
	assert.Equal(t, "REC-01", recreated.Code)
	assert.NotEqual(t, created.ID, recreated.ID)
}

func TestBulkCreateReportsPerRowErrors(t *testing.T) {
	repo := newFakeLocationRepository()
	_, err := NewCreateLocationHandler(repo).Handle(CreateLocationCommand{
		WarehouseID:  "wh-1",
		Code:         "DOCK-1",
		LocationType: domain.TypeDock,
	})
	require.NoError(t, err)

	handler := NewBulkCreateHandler(repo)
	result, err := handler.Handle(BulkCreateCommand{
		WarehouseID: "wh-1",
		Locations: []CreateLocationCommand{
			{Code: "REC-01", LocationType: domain.TypeReceiving},
			{Code: "REC-02", LocationType: domain.TypeReceiving},
			{Code: "REC-02", LocationType: domain.TypeReceiving}, // duplicate within batch
			{Code: "DOCK-1", LocationType: domain.TypeDock},      // already exists
			{Code: "", LocationType: domain.TypeStaging},         // invalid
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.CreatedCount)
	assert.Equal(t, 3, result.ErrorCount)
	require.Len(t, result.Errors, 3)
}

func TestRegenerateCountsStorageAndAreas(t *testing.T) {
	repo := newFakeLocationRepository()
	handler := NewGenerateLocationsHandler(repo)

	s := layout.Structure{
		NumAisles:              2,
		RacksPerAisle:          2,
		PositionsPerRack:       3,
		LevelsPerPosition:      2,
		LevelNames:             "AB",
		DefaultPalletCapacity:  2,
		PositionNumberingStart: 1,
	}
	areas := []layout.SpecialArea{
		{Code: "REC-01", Type: layout.AreaReceiving, Capacity: 10},
		{Code: "DOCK-1", Type: layout.AreaDock, Capacity: 4, Zone: "YARD"},
	}

	created, err := handler.Regenerate(context.Background(), "wh-1", "MAIN", s, areas)
	require.NoError(t, err)
	assert.Equal(t, 26, created)

	storage, err := repo.FindAll(domain.ListFilter{WarehouseID: "wh-1", LocationType: domain.TypeStorage})
	require.NoError(t, err)
	assert.Len(t, storage, 24)
	for _, loc := range storage {
		assert.Equal(t, 2, loc.PalletCapacity)
		assert.Equal(t, "MAIN", loc.Zone)
	}

	dock, err := repo.FindByCode("wh-1", "DOCK-1")
	require.NoError(t, err)
	assert.Equal(t, "YARD", dock.Zone)
	assert.Equal(t, 4, dock.PalletCapacity)
}

func TestRegenerateReplacesExistingRows(t *testing.T) {
	repo := newFakeLocationRepository()
	handler := NewGenerateLocationsHandler(repo)

	s := layout.Structure{
		NumAisles:              1,
		RacksPerAisle:          1,
		PositionsPerRack:       2,
		LevelsPerPosition:      1,
		LevelNames:             "A",
		PositionNumberingStart: 1,
	}

	_, err := handler.Regenerate(context.Background(), "wh-1", "MAIN", s, nil)
	require.NoError(t, err)

	// A second run with the same input is a no-op in terms of the row
	// set; no leftovers, no collisions.
	created, err := handler.Regenerate(context.Background(), "wh-1", "MAIN", s, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	count, err := repo.Count(domain.ListFilter{WarehouseID: "wh-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRegenerateBidimensionalDoublesCapacity(t *testing.T) {
	repo := newFakeLocationRepository()
	handler := NewGenerateLocationsHandler(repo)

	s := layout.Structure{
		NumAisles:              1,
		RacksPerAisle:          1,
		PositionsPerRack:       1,
		LevelsPerPosition:      1,
		LevelNames:             "A",
		DefaultPalletCapacity:  2,
		BidimensionalRacks:     true,
		PositionNumberingStart: 1,
	}

	_, err := handler.Regenerate(context.Background(), "wh-1", "MAIN", s, nil)
	require.NoError(t, err)

	all, err := repo.FindAll(domain.ListFilter{WarehouseID: "wh-1"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 4, all[0].PalletCapacity)
}

func TestRegenerateOnlyTouchesGivenWarehouse(t *testing.T) {
	repo := newFakeLocationRepository()
	handler := NewGenerateLocationsHandler(repo)

	s := layout.Structure{
		NumAisles:              1,
		RacksPerAisle:          1,
		PositionsPerRack:       1,
		LevelsPerPosition:      1,
		LevelNames:             "A",
		PositionNumberingStart: 1,
	}

	_, err := handler.Regenerate(context.Background(), "wh-1", "MAIN", s, nil)
	require.NoError(t, err)
	_, err = handler.Regenerate(context.Background(), "wh-2", "MAIN", s, nil)
	require.NoError(t, err)

	count, err := repo.Count(domain.ListFilter{WarehouseID: "wh-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
