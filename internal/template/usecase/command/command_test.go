package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/template/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

// fakeTemplateRepository is an in-memory TemplateRepository for usecase tests.
type fakeTemplateRepository struct {
	templates map[uint]*domain.WarehouseTemplate
	nextID    uint
}

func newFakeRepo() *fakeTemplateRepository {
	return &fakeTemplateRepository{templates: make(map[uint]*domain.WarehouseTemplate), nextID: 1}
}

func (f *fakeTemplateRepository) Create(t *domain.WarehouseTemplate) error {
	t.ID = f.nextID
	f.nextID++
	stored := *t
	f.templates[t.ID] = &stored
	return nil
}

func (f *fakeTemplateRepository) FindByID(id uint) (*domain.WarehouseTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	found := *t
	return &found, nil
}

func (f *fakeTemplateRepository) FindByCode(code string) (*domain.WarehouseTemplate, error) {
	for _, t := range f.templates {
		if t.TemplateCode == code {
			found := *t
			return &found, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeTemplateRepository) FindAll(filter domain.ListFilter) ([]domain.WarehouseTemplate, error) {
	out := make([]domain.WarehouseTemplate, 0, len(f.templates))
	for _, t := range f.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTemplateRepository) FindPopular(limit int) ([]domain.WarehouseTemplate, error) {
	return f.FindAll(domain.ListFilter{Limit: limit})
}

func (f *fakeTemplateRepository) Update(t *domain.WarehouseTemplate) error {
	if _, ok := f.templates[t.ID]; !ok {
		return apperror.ErrNotFound
	}
	stored := *t
	f.templates[t.ID] = &stored
	return nil
}

func (f *fakeTemplateRepository) Delete(id uint) error {
	if _, ok := f.templates[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

func (f *fakeTemplateRepository) CodeExists(code string) (bool, error) {
	_, err := f.FindByCode(code)
	if errors.Is(err, apperror.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeTemplateRepository) IncrementUsage(id uint) error {
	t, ok := f.templates[id]
	if !ok {
		return apperror.ErrNotFound
	}
	t.UsageCount++
	return nil
}

func validCreateCommand() CreateTemplateCommand {
	return CreateTemplateCommand{
		Name:              "Standard 4-aisle",
		NumAisles:         4,
		RacksPerAisle:     2,
		PositionsPerRack:  50,
		LevelsPerPosition: 4,
		LevelNames:        "ABCD",
		CreatedByID:       7,
		CreatedByName:     "alice",
	}
}

func TestCreateTemplate_Defaults(t *testing.T) {
	repo := newFakeRepo()
	h := NewCreateTemplateHandler(repo)

	cmd := validCreateCommand()
	cmd.LevelNames = ""
	cmd.DefaultPalletCapacity = 0

	created, err := h.Handle(cmd)
	require.NoError(t, err)

	assert.Equal(t, "ABCD", created.LevelNames)
	assert.Equal(t, 1, created.DefaultPalletCapacity)
	assert.Equal(t, domain.VisibilityPrivate, created.Visibility)
	assert.True(t, created.IsActive)
	assert.True(t, strings.HasPrefix(created.TemplateCode, layout.TemplateCodePrefix+"-"))
}

func TestCreateTemplate_AggregatesValidationErrors(t *testing.T) {
	repo := newFakeRepo()
	h := NewCreateTemplateHandler(repo)

	cmd := CreateTemplateCommand{
		Name:              "   ",
		NumAisles:         0,
		RacksPerAisle:     -1,
		PositionsPerRack:  10,
		LevelsPerPosition: 3,
		Visibility:        "EVERYONE",
		ReceivingAreas: []layout.SpecialArea{
			{Code: "", Type: layout.AreaReceiving, Capacity: 5},
		},
	}

	_, err := h.Handle(cmd)
	require.Error(t, err)

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)

	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "num_aisles")
	assert.Contains(t, verr.Fields, "racks_per_aisle")
	assert.Contains(t, verr.Fields, "visibility")
	assert.Contains(t, verr.Fields, "receiving_areas_template[0]")
	assert.Empty(t, repo.templates, "nothing should be persisted on validation failure")
}

func TestCreateTemplate_ShortLevelNamesRejected(t *testing.T) {
	h := NewCreateTemplateHandler(newFakeRepo())

	cmd := validCreateCommand()
	cmd.LevelNames = "AB"

	_, err := h.Handle(cmd)
	require.Error(t, err)

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "level_names")
}

func TestUpdateTemplate_NilMeansNoChange(t *testing.T) {
	repo := newFakeRepo()
	created, err := NewCreateTemplateHandler(repo).Handle(validCreateCommand())
	require.NoError(t, err)

	newName := "Renamed"
	updated, err := NewUpdateTemplateHandler(repo).Handle(UpdateTemplateCommand{
		ID:          created.ID,
		RequestedBy: created.CreatedByID,
		Name:        &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, created.NumAisles, updated.NumAisles)
	assert.Equal(t, created.LevelNames, updated.LevelNames)
	assert.Equal(t, created.ReceivingAreas, updated.ReceivingAreas)
}

func TestUpdateTemplate_CreatorOnly(t *testing.T) {
	repo := newFakeRepo()
	created, err := NewCreateTemplateHandler(repo).Handle(validCreateCommand())
	require.NoError(t, err)

	newName := "Hijacked"
	_, err = NewUpdateTemplateHandler(repo).Handle(UpdateTemplateCommand{
		ID:          created.ID,
		RequestedBy: created.CreatedByID + 1,
		Name:        &newName,
	})
	assert.Error(t, err)
}

func TestDuplicateTemplate_StripsIdentity(t *testing.T) {
	repo := newFakeRepo()
	source, err := NewCreateTemplateHandler(repo).Handle(validCreateCommand())
	require.NoError(t, err)

	source.UsageCount = 12
	source.Visibility = domain.VisibilityPublic
	require.NoError(t, repo.Update(source))

	dup, err := NewDuplicateTemplateHandler(repo).Handle(DuplicateTemplateCommand{
		SourceID:      source.ID,
		NewName:       "My copy",
		RequestedBy:   99,
		RequestedName: "bob",
	})
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, dup.ID)
	assert.NotEqual(t, source.TemplateCode, dup.TemplateCode)
	assert.Equal(t, 0, dup.UsageCount)
	assert.Equal(t, domain.VisibilityPrivate, dup.Visibility)
	assert.Equal(t, uint(99), dup.CreatedByID)
	assert.False(t, dup.IsActive)
	assert.Equal(t, source.NumAisles, dup.NumAisles)
	assert.Equal(t, source.LevelNames, dup.LevelNames)
}

func TestDeleteTemplate_CreatorOnly(t *testing.T) {
	repo := newFakeRepo()
	created, err := NewCreateTemplateHandler(repo).Handle(validCreateCommand())
	require.NoError(t, err)

	err = NewDeleteTemplateHandler(repo).Handle(DeleteTemplateCommand{
		ID:          created.ID,
		RequestedBy: created.CreatedByID + 1,
	})
	assert.Error(t, err)

	err = NewDeleteTemplateHandler(repo).Handle(DeleteTemplateCommand{
		ID:          created.ID,
		RequestedBy: created.CreatedByID,
	})
	assert.NoError(t, err)
}

func TestRecordUsage_Increments(t *testing.T) {
	repo := newFakeRepo()
	created, err := NewCreateTemplateHandler(repo).Handle(validCreateCommand())
	require.NoError(t, err)

	h := NewRecordUsageHandler(repo)
	require.NoError(t, h.Handle(RecordUsageCommand{TemplateID: created.ID}))
	require.NoError(t, h.Handle(RecordUsageCommand{TemplateID: created.ID}))

	stored, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.UsageCount)
}

func TestCreateFromConfig_LinksBackToConfig(t *testing.T) {
	repo := newFakeRepo()

	created, err := NewCreateFromConfigHandler(repo).Handle(CreateFromConfigCommand{
		ConfigID: 42,
		Name:     "Snapshot of main hall",
		Structure: layout.Structure{
			NumAisles:         3,
			RacksPerAisle:     2,
			PositionsPerRack:  10,
			LevelsPerPosition: 2,
			LevelNames:        "AB",
		},
		SpecialAreas: []layout.SpecialArea{
			{Code: "REC-01", Type: layout.AreaReceiving, Capacity: 20},
		},
		CreatedByID: 7,
	})
	require.NoError(t, err)

	require.NotNil(t, created.BasedOnConfigID)
	assert.Equal(t, uint(42), *created.BasedOnConfigID)

	areas, err := created.SpecialAreas()
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "REC-01", areas[0].Code)
}
