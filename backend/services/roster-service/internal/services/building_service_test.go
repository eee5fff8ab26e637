package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_utils "github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/utils"
	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
	"github.com/bostadsportal/mono-repo/backend/shared/go-repositories"
)

type fakeBuildingRepo struct {
	repositories.BuildingRepository
	building *models.Building
	hosts    []uuid.UUID
	err      error
}

func (f *fakeBuildingRepo) GetByID(context.Context, uuid.UUID) (*models.Building, error) {
	return f.building, f.err
}

func (f *fakeBuildingRepo) ListHostIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return f.hosts, nil
}

type fakeUnitRepo struct {
	repositories.UnitRepository
	units []*models.Unit
}

func (f *fakeUnitRepo) ListByBuildingID(context.Context, uuid.UUID) ([]*models.Unit, error) {
	return f.units, nil
}

type fakeTenancyRepo struct {
	repositories.TenancyRepository
	tenancies []*models.Tenancy
}

func (f *fakeTenancyRepo) ListByBuildingID(context.Context, uuid.UUID) ([]*models.Tenancy, error) {
	return f.tenancies, nil
}

type fakeResidentRepo struct {
	repositories.ResidentRepository
	residents map[uuid.UUID]*models.Resident
	calls     int
}

func (f *fakeResidentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Resident, error) {
	f.calls++
	return f.residents[id], nil
}

func TestBuildingService_LoadBuilding(t *testing.T) {
	b := &models.Building{ID: uuid.New(), Street: "Storgatan", Number: "12"}
	u1 := &models.Unit{ID: uuid.New(), BuildingID: b.ID, UnitNumber: "1001", Floor: 1}
	u2 := &models.Unit{ID: uuid.New(), BuildingID: b.ID, UnitNumber: "1002", Floor: 1}
	t1 := &models.Tenancy{ID: uuid.New(), UnitID: u2.ID, ResidentID: uuid.New()}
	t2 := &models.Tenancy{ID: uuid.New(), UnitID: u2.ID, ResidentID: uuid.New()}
	orphan := &models.Tenancy{ID: uuid.New(), UnitID: uuid.New(), ResidentID: uuid.New()}
	host := uuid.New()

	svc := NewBuildingService(
		&fakeBuildingRepo{building: b, hosts: []uuid.UUID{host}},
		&fakeUnitRepo{units: []*models.Unit{u1, u2}},
		&fakeTenancyRepo{tenancies: []*models.Tenancy{t1, orphan, t2}},
		NewTenantNameFormatter("sv"),
	)

	got, err := svc.LoadBuilding(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, got.Units, 2)
	assert.Equal(t, "1001", got.Units[0].UnitNumber)
	assert.Empty(t, got.Units[0].Tenancies)
	assert.Equal(t, []*models.Tenancy{t1, t2}, got.Units[1].Tenancies)
	assert.Equal(t, []uuid.UUID{host}, got.HostIDs)
}

func TestBuildingService_NotFound(t *testing.T) {
	svc := NewBuildingService(&fakeBuildingRepo{}, &fakeUnitRepo{}, &fakeTenancyRepo{}, NewTenantNameFormatter("sv"))
	_, err := svc.LoadBuilding(context.Background(), uuid.New())
	assert.ErrorIs(t, err, internal_utils.ErrBuildingNotFound)
}

func TestBuildingService_RepoError(t *testing.T) {
	boom := errors.New("conn reset")
	svc := NewBuildingService(&fakeBuildingRepo{err: boom}, &fakeUnitRepo{}, &fakeTenancyRepo{}, NewTenantNameFormatter("sv"))
	_, err := svc.LoadBuilding(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, internal_utils.ErrBuildingNotFound)
}

func TestBuildingService_DescribeBuilding(t *testing.T) {
	res := newMapResolver()
	b := testBuilding(res)
	svc := NewBuildingService(&fakeBuildingRepo{}, &fakeUnitRepo{}, &fakeTenancyRepo{}, NewTenantNameFormatter("sv"))

	resp, err := svc.DescribeBuilding(context.Background(), res, b)
	require.NoError(t, err)
	assert.Equal(t, "Storgatan 12, 11122 Stockholm", resp.DisplayName)
	assert.Equal(t, []uuid.UUID{}, resp.HostIDs)

	require.Len(t, resp.Floors, 3)
	assert.Equal(t, 2, resp.Floors[0].Floor)
	assert.Equal(t, 1, resp.Floors[1].Floor)
	assert.Equal(t, -1, resp.Floors[2].Floor)

	second := resp.Floors[1].Units[1]
	assert.Equal(t, "1002", second.UnitNumber)
	assert.Equal(t, "A & E Berg/K Ek", second.TenantNames)
	assert.Equal(t, 3, second.Residents)
	assert.Equal(t, "", resp.Floors[2].Units[0].TenantNames)
}
