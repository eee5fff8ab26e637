package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type TenancyRepository interface {
	Create(ctx context.Context, t *models.Tenancy) error

	// ListByBuildingID returns every tenancy of every live unit in the
	// building in creation order. Callers group by UnitID.
	ListByBuildingID(ctx context.Context, buildingID uuid.UUID) ([]*models.Tenancy, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type tenancyRepo struct{ db DB }

func NewTenancyRepository(db DB) TenancyRepository { return &tenancyRepo{db: db} }

func (r *tenancyRepo) Create(ctx context.Context, t *models.Tenancy) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tenancies (
			id, unit_id, resident_id,
			show_in_roster, show_contact_info, allow_contact,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW(), 1)
	`, t.ID, t.UnitID, t.ResidentID, t.ShowInRoster, t.ShowContactInfo, t.AllowContact)
	return err
}

func (r *tenancyRepo) ListByBuildingID(ctx context.Context, buildingID uuid.UUID) ([]*models.Tenancy, error) {
	rows, err := r.db.Query(ctx, baseSelectTenancy("t")+`
		JOIN units u ON u.id = t.unit_id
		WHERE u.building_id=$1 AND u.deleted_at IS NULL
		ORDER BY t.created_at`, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenancies(rows)
}

/* ---------- internals ---------- */

func baseSelectTenancy(alias string) string {
	return `
		SELECT ` + alias + `.id, ` + alias + `.unit_id, ` + alias + `.resident_id,
		       ` + alias + `.show_in_roster, ` + alias + `.show_contact_info, ` + alias + `.allow_contact,
		       ` + alias + `.created_at, ` + alias + `.updated_at, ` + alias + `.row_version
		FROM tenancies ` + alias
}

func scanTenancies(rows pgx.Rows) ([]*models.Tenancy, error) {
	var out []*models.Tenancy
	for rows.Next() {
		var t models.Tenancy
		if err := rows.Scan(
			&t.ID, &t.UnitID, &t.ResidentID,
			&t.ShowInRoster, &t.ShowContactInfo, &t.AllowContact,
			&t.CreatedAt, &t.UpdatedAt, &t.RowVersion,
		); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
