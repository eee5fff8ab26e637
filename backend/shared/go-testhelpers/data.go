// backend/shared/go-testhelpers/data.go

package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
)

// UniqueEmail generates a unique email for testing.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.se", prefix, time.Now().UnixNano())
}

// CreateTestBuilding persists a building with a unique street name.
func (h *TestHelper) CreateTestBuilding(ctx context.Context, street string) *models.Building {
	b := &models.Building{
		ID:         uuid.New(),
		Street:     fmt.Sprintf("%s%d", street, time.Now().UnixNano()%100000),
		Number:     "1",
		PostalCode: "11122",
		Town:       "Stockholm",
		Country:    "SE",
	}
	require.NoError(h.T, h.BldgRepo.Create(ctx, b), "Failed to create test building")
	return b
}

// CreateTestUnit persists a unit in b.
func (h *TestHelper) CreateTestUnit(ctx context.Context, b *models.Building, number string, floor int, entryCode string) *models.Unit {
	u := &models.Unit{
		ID:         uuid.New(),
		BuildingID: b.ID,
		UnitNumber: number,
		Floor:      floor,
		EntryCode:  entryCode,
	}
	require.NoError(h.T, h.UnitRepo.Create(ctx, u), "Failed to create test unit")
	return u
}

// CreateTestTenant persists a resident and links it to u.
func (h *TestHelper) CreateTestTenant(ctx context.Context, u *models.Unit, first, last string) *models.Resident {
	r := &models.Resident{
		ID:        uuid.New(),
		FirstName: first,
		LastName:  last,
		Email:     UniqueEmail(first),
	}
	require.NoError(h.T, h.ResidentRepo.Create(ctx, r), "Failed to create test resident")

	t := &models.Tenancy{ID: uuid.New(), UnitID: u.ID, ResidentID: r.ID, ShowInRoster: true}
	require.NoError(h.T, h.TenancyRepo.Create(ctx, t), "Failed to create test tenancy")
	return r
}
