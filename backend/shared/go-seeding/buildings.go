package seeding

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
	"github.com/bostadsportal/mono-repo/backend/shared/go-repositories"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

const (
	DemoBuildingID = "b0b0b0b0-0000-4000-8000-000000000001"
	DemoHostID     = "b0b0b0b0-0000-4000-8000-0000000000a1"
)

// Repos groups what the demo seeding writes to.
type Repos struct {
	Buildings repositories.BuildingRepository
	Units     repositories.UnitRepository
	Tenancies repositories.TenancyRepository
	Residents repositories.ResidentRepository
}

type demoResident struct {
	id          string
	first, last string
	email       string
}

type demoUnit struct {
	id        string
	number    string
	floor     int
	entryCode string
	residents []demoResident
}

var demoUnits = []demoUnit{
	{"b0b0b0b0-0000-4000-8000-000000000101", "1001", 1, "4411", []demoResident{
		{"b0b0b0b0-0000-4000-8000-0000000001a1", "Jean-Paul", "Dupont", "jp.dupont@example.se"},
	}},
	{"b0b0b0b0-0000-4000-8000-000000000102", "1002", 1, "1234", []demoResident{
		{"b0b0b0b0-0000-4000-8000-0000000001a2", "Anna", "Berg", "anna.berg@example.se"},
		{"b0b0b0b0-0000-4000-8000-0000000001a3", "Erik", "Berg", "erik.berg@example.se"},
		{"b0b0b0b0-0000-4000-8000-0000000001a4", "Karin", "Ek", "karin.ek@example.se"},
	}},
	{"b0b0b0b0-0000-4000-8000-000000000201", "1201", 2, "0042", []demoResident{
		{"b0b0b0b0-0000-4000-8000-0000000002a1", "Sara", "Lind", "sara.lind@example.se"},
	}},
	{"b0b0b0b0-0000-4000-8000-000000000202", "1202", 2, "3300", nil},
	{"b0b0b0b0-0000-4000-8000-000000000901", "0901", -1, "9000", nil},
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SeedDemoBuilding creates "Storgatan 12" with five units over three
// floors. It is a no-op when the building already exists.
func SeedDemoBuilding(ctx context.Context, repos Repos) error {
	buildingID := uuid.MustParse(DemoBuildingID)

	if existing, err := repos.Buildings.GetByID(ctx, buildingID); err != nil {
		return fmt.Errorf("check existing demo building: %w", err)
	} else if existing != nil {
		utils.Logger.Info("seeding: demo building already present; skipping")
		return nil
	}

	b := &models.Building{
		ID:         buildingID,
		Street:     "Storgatan",
		Number:     "12",
		PostalCode: "11122",
		Town:       "Stockholm",
		Country:    "SE",
	}
	if err := repos.Buildings.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			utils.Logger.Infof("seeding: demo building already present (id=%s); skipping", b.ID)
			return nil
		}
		return fmt.Errorf("insert demo building: %w", err)
	}

	host := &models.Resident{
		ID:        uuid.MustParse(DemoHostID),
		FirstName: "Greta",
		LastName:  "Vaktmästare",
		Email:     "vicevard@example.se",
	}
	if err := createResident(ctx, repos.Residents, host); err != nil {
		return err
	}
	if err := repos.Residents.UpdateWithRetry(ctx, host.ID, func(stored *models.Resident) error {
		stored.PhoneNumber = utils.Ptr("+4681234567")
		return nil
	}); err != nil {
		return fmt.Errorf("update demo host contact: %w", err)
	}
	if err := repos.Buildings.AddHost(ctx, b.ID, host.ID); err != nil {
		return fmt.Errorf("add demo host: %w", err)
	}

	for _, du := range demoUnits {
		u := &models.Unit{
			ID:         uuid.MustParse(du.id),
			BuildingID: b.ID,
			UnitNumber: du.number,
			Floor:      du.floor,
			EntryCode:  du.entryCode,
		}
		if err := repos.Units.Create(ctx, u); err != nil {
			return fmt.Errorf("insert demo unit %s: %w", du.number, err)
		}
		for _, dr := range du.residents {
			r := &models.Resident{
				ID:        uuid.MustParse(dr.id),
				FirstName: dr.first,
				LastName:  dr.last,
				Email:     dr.email,
			}
			if err := createResident(ctx, repos.Residents, r); err != nil {
				return err
			}
			t := &models.Tenancy{
				ID:           uuid.New(),
				UnitID:       u.ID,
				ResidentID:   r.ID,
				ShowInRoster: true,
			}
			if err := repos.Tenancies.Create(ctx, t); err != nil {
				return fmt.Errorf("insert demo tenancy for %s: %w", du.number, err)
			}
		}
	}

	utils.Logger.Infof("seeding: demo building %s created with %d units", b.DisplayName(), len(demoUnits))
	return nil
}

func createResident(ctx context.Context, repo repositories.ResidentRepository, r *models.Resident) error {
	if err := repo.Create(ctx, r); err != nil {
		if isUniqueViolation(err) {
			utils.Logger.Debugf("seeding: resident %s already present", r.Email)
			return nil
		}
		return fmt.Errorf("insert resident %s: %w", r.Email, err)
	}
	return nil
}
