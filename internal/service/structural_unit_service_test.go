package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prism-lt/prism-api/internal/models"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
)

type mockStructuralUnitRepo struct {
	byID        map[string]*models.StructuralUnit
	names       map[string]string
	parentCount map[models.Unit]int
	created     []*models.StructuralUnit
	createdMany []models.StructuralUnit
	updated     *models.StructuralUnit
	deletedID   string
}

func (m *mockStructuralUnitRepo) List(ctx context.Context, filter models.StructuralUnitFilter) ([]models.StructuralUnit, error) {
	units := []models.StructuralUnit{}
	for _, unit := range m.byID {
		units = append(units, *unit)
	}
	return units, nil
}

func (m *mockStructuralUnitRepo) FindByID(ctx context.Context, id string) (*models.StructuralUnit, error) {
	if unit, ok := m.byID[id]; ok {
		copied := *unit
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStructuralUnitRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	id, ok := m.names[name]
	return ok && id != excludeID, nil
}

func (m *mockStructuralUnitRepo) CountByParent(ctx context.Context, parent models.Unit) (int, error) {
	return m.parentCount[parent], nil
}

func (m *mockStructuralUnitRepo) Create(ctx context.Context, unit *models.StructuralUnit) error {
	m.created = append(m.created, unit)
	return nil
}

func (m *mockStructuralUnitRepo) CreateMany(ctx context.Context, units []models.StructuralUnit) ([]models.StructuralUnit, error) {
	m.createdMany = units
	return units, nil
}

func (m *mockStructuralUnitRepo) Update(ctx context.Context, unit *models.StructuralUnit) error {
	m.updated = unit
	return nil
}

func (m *mockStructuralUnitRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func newStructuralUnitService(repo *mockStructuralUnitRepo) *StructuralUnitService {
	return NewStructuralUnitService(repo, validator.New(), zap.NewNop())
}

func TestStructuralUnitServiceCreate(t *testing.T) {
	repo := &mockStructuralUnitRepo{}
	svc := newStructuralUnitService(repo)

	unit, err := svc.Create(context.Background(), CreateStructuralUnitRequest{
		Name: "3 rysiu skyrius", ParentUnit: string(models.UnitRIS),
	})
	require.NoError(t, err)
	assert.Equal(t, models.UnitRIS, unit.ParentUnit)
	assert.True(t, unit.Active)
	require.Len(t, repo.created, 1)
}

func TestStructuralUnitServiceCreateDuplicateName(t *testing.T) {
	repo := &mockStructuralUnitRepo{names: map[string]string{"RIS burys": "su1"}}
	svc := newStructuralUnitService(repo)

	_, err := svc.Create(context.Background(), CreateStructuralUnitRequest{
		Name: "RIS burys", ParentUnit: string(models.UnitRIS),
	})
	require.Error(t, err)
	assert.Equal(t, "A structural unit with this name already exists", appErrors.FromError(err).Message)
}

func TestStructuralUnitServiceCreateInvalidParent(t *testing.T) {
	svc := newStructuralUnitService(&mockStructuralUnitRepo{})

	_, err := svc.Create(context.Background(), CreateStructuralUnitRequest{
		Name: "Kazkas", ParentUnit: "Nerealus burys",
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid parent unit", appErrors.FromError(err).Message)
}

func TestStructuralUnitServiceUpdate(t *testing.T) {
	repo := &mockStructuralUnitRepo{byID: map[string]*models.StructuralUnit{
		"su1": {ID: "su1", Name: "RIS burys", ParentUnit: models.UnitRIS, Active: true},
	}}
	svc := newStructuralUnitService(repo)

	active := false
	unit, err := svc.Update(context.Background(), "su1", UpdateStructuralUnitRequest{Active: &active})
	require.NoError(t, err)
	assert.False(t, unit.Active)
	assert.Equal(t, "RIS burys", unit.Name)
}

func TestStructuralUnitServiceInitializeDefaults(t *testing.T) {
	repo := &mockStructuralUnitRepo{parentCount: map[models.Unit]int{}}
	svc := newStructuralUnitService(repo)

	units, err := svc.InitializeDefaults(context.Background())
	require.NoError(t, err)
	assert.Len(t, units, len(models.SubUnits[models.UnitRIS]))
	for _, unit := range units {
		assert.Equal(t, models.UnitRIS, unit.ParentUnit)
		assert.True(t, unit.Active)
	}
}

func TestStructuralUnitServiceInitializeDefaultsTwiceRejected(t *testing.T) {
	repo := &mockStructuralUnitRepo{parentCount: map[models.Unit]int{models.UnitRIS: 8}}
	svc := newStructuralUnitService(repo)

	_, err := svc.InitializeDefaults(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Default units already exist", appErrors.FromError(err).Message)
	assert.Nil(t, repo.createdMany)
}

func TestStructuralUnitServiceDelete(t *testing.T) {
	repo := &mockStructuralUnitRepo{byID: map[string]*models.StructuralUnit{
		"su1": {ID: "su1", Name: "RIS burys"},
	}}
	svc := newStructuralUnitService(repo)

	require.NoError(t, svc.Delete(context.Background(), "su1"))
	assert.Equal(t, "su1", repo.deletedID)

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "Structural unit not found", appErrors.FromError(err).Message)
}
