package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/dtos"
	internal_utils "github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/utils"
	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
	"github.com/bostadsportal/mono-repo/backend/shared/go-repositories"
)

type BuildingService struct {
	bldgRepo    repositories.BuildingRepository
	unitRepo    repositories.UnitRepository
	tenancyRepo repositories.TenancyRepository
	names       *TenantNameFormatter
}

func NewBuildingService(
	bldgRepo repositories.BuildingRepository,
	unitRepo repositories.UnitRepository,
	tenancyRepo repositories.TenancyRepository,
	names *TenantNameFormatter,
) *BuildingService {
	return &BuildingService{
		bldgRepo:    bldgRepo,
		unitRepo:    unitRepo,
		tenancyRepo: tenancyRepo,
		names:       names,
	}
}

// LoadBuilding fetches a building with its units, their tenancies and the
// host ids. Units keep the repository order (unit number).
func (s *BuildingService) LoadBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	b, err := s.bldgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get building %s: %w", id, err)
	}
	if b == nil {
		return nil, fmt.Errorf("building %s: %w", id, internal_utils.ErrBuildingNotFound)
	}

	units, err := s.unitRepo.ListByBuildingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list units of %s: %w", id, err)
	}
	tenancies, err := s.tenancyRepo.ListByBuildingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list tenancies of %s: %w", id, err)
	}
	hosts, err := s.bldgRepo.ListHostIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list hosts of %s: %w", id, err)
	}

	byUnit := make(map[uuid.UUID]*models.Unit, len(units))
	for _, u := range units {
		u.Tenancies = nil
		byUnit[u.ID] = u
	}
	for _, t := range tenancies {
		if u, ok := byUnit[t.UnitID]; ok {
			u.Tenancies = append(u.Tenancies, t)
		}
	}

	b.Units = units
	b.HostIDs = hosts
	return b, nil
}

// DescribeBuilding is the JSON view of a loaded building, floors from the
// top down with tenant names rendered as on the roster.
func (s *BuildingService) DescribeBuilding(
	ctx context.Context,
	residents ResidentResolver,
	b *models.Building,
) (*dtos.BuildingResponse, error) {
	resp := &dtos.BuildingResponse{
		ID:          b.ID,
		DisplayName: b.DisplayName(),
		Street:      b.Street,
		Number:      b.Number,
		PostalCode:  b.PostalCode,
		Town:        b.Town,
		Country:     b.Country,
		HostIDs:     b.HostIDs,
		Floors:      []dtos.FloorResponse{},
	}
	if resp.HostIDs == nil {
		resp.HostIDs = []uuid.UUID{}
	}

	for _, g := range groupByFloor(b.Units) {
		floor := dtos.FloorResponse{Floor: g.floor, Units: make([]dtos.UnitResponse, 0, len(g.units))}
		for _, u := range g.units {
			names, err := s.names.UnitNames(ctx, residents, u)
			if err != nil {
				return nil, err
			}
			floor.Units = append(floor.Units, dtos.UnitResponse{
				ID:          u.ID,
				UnitNumber:  u.UnitNumber,
				EntryCode:   u.EntryCode,
				TenantNames: names,
				Residents:   len(u.Tenancies),
			})
		}
		resp.Floors = append(resp.Floors, floor)
	}
	return resp, nil
}
