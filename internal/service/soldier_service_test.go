package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prism-lt/prism-api/internal/models"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
)

type mockSoldierRepo struct {
	byID      map[string]*models.Soldier
	created   []*models.Soldier
	updated   *models.Soldier
	deletedID string
}

func (m *mockSoldierRepo) List(ctx context.Context, filter models.SoldierFilter) ([]models.Soldier, error) {
	soldiers := []models.Soldier{}
	for _, soldier := range m.byID {
		soldiers = append(soldiers, *soldier)
	}
	return soldiers, nil
}

func (m *mockSoldierRepo) FindByID(ctx context.Context, id string) (*models.Soldier, error) {
	if soldier, ok := m.byID[id]; ok {
		copied := *soldier
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSoldierRepo) Create(ctx context.Context, soldier *models.Soldier) error {
	m.created = append(m.created, soldier)
	return nil
}

func (m *mockSoldierRepo) Update(ctx context.Context, soldier *models.Soldier) error {
	m.updated = soldier
	return nil
}

func (m *mockSoldierRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func newSoldierService(repo *mockSoldierRepo) *SoldierService {
	return NewSoldierService(repo, validator.New(), zap.NewNop())
}

func validSoldierRequest() CreateSoldierRequest {
	return CreateSoldierRequest{
		FirstName:    "Jonas",
		LastName:     "Jonaitis",
		MilitaryRank: "Srz.",
		JoinDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PrimaryUnit:  string(models.UnitParamos),
	}
}

func TestSoldierServiceCreate(t *testing.T) {
	repo := &mockSoldierRepo{}
	svc := newSoldierService(repo)

	soldier, err := svc.Create(context.Background(), validSoldierRequest())
	require.NoError(t, err)
	assert.Equal(t, models.UnitParamos, soldier.PrimaryUnit)
	assert.Nil(t, soldier.SubUnit)
	assert.True(t, soldier.Active)
	require.Len(t, repo.created, 1)
}

func TestSoldierServiceCreateRequiresSubUnitForSignalPlatoon(t *testing.T) {
	svc := newSoldierService(&mockSoldierRepo{})

	req := validSoldierRequest()
	req.PrimaryUnit = string(models.UnitRIS)
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Sub-unit is required for the selected primary unit", appErrors.FromError(err).Message)

	req.SubUnit = "LAN/WAN skyrius"
	soldier, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, soldier.SubUnit)
	assert.Equal(t, "LAN/WAN skyrius", *soldier.SubUnit)
}

func TestSoldierServiceCreateRejectsForeignSubUnit(t *testing.T) {
	svc := newSoldierService(&mockSoldierRepo{})

	req := validSoldierRequest()
	req.PrimaryUnit = string(models.UnitRIS)
	req.SubUnit = "Kuopos vadas"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Invalid sub-unit for the selected primary unit", appErrors.FromError(err).Message)
}

func TestSoldierServiceCreateInvalidUnit(t *testing.T) {
	svc := newSoldierService(&mockSoldierRepo{})

	req := validSoldierRequest()
	req.PrimaryUnit = "Nonexistent unit"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Invalid primary unit", appErrors.FromError(err).Message)
}

func TestSoldierServiceUpdateMoveIntoSignalPlatoon(t *testing.T) {
	repo := &mockSoldierRepo{byID: map[string]*models.Soldier{
		"s1": {ID: "s1", FirstName: "Jonas", LastName: "Jonaitis", MilitaryRank: "Srz.", PrimaryUnit: models.UnitParamos},
	}}
	svc := newSoldierService(repo)

	unit := string(models.UnitRIS)
	_, err := svc.Update(context.Background(), "s1", UpdateSoldierRequest{PrimaryUnit: &unit})
	require.Error(t, err)
	assert.Equal(t, "Sub-unit is required for the selected primary unit", appErrors.FromError(err).Message)

	sub := "RIS burys"
	soldier, err := svc.Update(context.Background(), "s1", UpdateSoldierRequest{PrimaryUnit: &unit, SubUnit: &sub})
	require.NoError(t, err)
	assert.Equal(t, models.UnitRIS, soldier.PrimaryUnit)
	require.NotNil(t, soldier.SubUnit)
	assert.Equal(t, "RIS burys", *soldier.SubUnit)
}

func TestSoldierServiceUpdateMoveOutClearsSubUnit(t *testing.T) {
	sub := "RIS burys"
	repo := &mockSoldierRepo{byID: map[string]*models.Soldier{
		"s1": {ID: "s1", FirstName: "Jonas", LastName: "Jonaitis", MilitaryRank: "Srz.", PrimaryUnit: models.UnitRIS, SubUnit: &sub},
	}}
	svc := newSoldierService(repo)

	unit := string(models.UnitValdymo)
	soldier, err := svc.Update(context.Background(), "s1", UpdateSoldierRequest{PrimaryUnit: &unit})
	require.NoError(t, err)
	assert.Equal(t, models.UnitValdymo, soldier.PrimaryUnit)
	assert.Nil(t, soldier.SubUnit)
}

func TestSoldierServiceUpdatePartialFields(t *testing.T) {
	repo := &mockSoldierRepo{byID: map[string]*models.Soldier{
		"s1": {ID: "s1", FirstName: "Jonas", LastName: "Jonaitis", MilitaryRank: "Srz.", PrimaryUnit: models.UnitParamos, Active: true},
	}}
	svc := newSoldierService(repo)

	rank := "Vyr. srz."
	soldier, err := svc.Update(context.Background(), "s1", UpdateSoldierRequest{MilitaryRank: &rank})
	require.NoError(t, err)
	assert.Equal(t, "Vyr. srz.", soldier.MilitaryRank)
	assert.Equal(t, "Jonas", soldier.FirstName)
	assert.Equal(t, models.UnitParamos, soldier.PrimaryUnit)
}

func TestSoldierServiceUpdateNotFound(t *testing.T) {
	svc := newSoldierService(&mockSoldierRepo{})

	rank := "Srz."
	_, err := svc.Update(context.Background(), "ghost", UpdateSoldierRequest{MilitaryRank: &rank})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "Soldier not found", appErr.Message)
}

func TestSoldierServiceDelete(t *testing.T) {
	repo := &mockSoldierRepo{byID: map[string]*models.Soldier{
		"s1": {ID: "s1", FirstName: "Jonas", LastName: "Jonaitis"},
	}}
	svc := newSoldierService(repo)

	require.NoError(t, svc.Delete(context.Background(), "s1"))
	assert.Equal(t, "s1", repo.deletedID)

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
