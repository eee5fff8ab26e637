package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ResidentRepository interface {
	Create(ctx context.Context, r *models.Resident) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Resident, error)

	UpdateIfVersion(ctx context.Context, r *models.Resident, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Resident) error) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type residentRepo struct {
	*BaseVersionedRepo[*models.Resident]
	db DB
}

func NewResidentRepository(db DB) ResidentRepository {
	r := &residentRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectResident()+" WHERE id=$1", scanResident)
	return r
}

func (r *residentRepo) Create(ctx context.Context, res *models.Resident) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO residents (
			id, first_name, last_name, email, phone_number,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5, NOW(), NOW(), 1)
	`, res.ID, res.FirstName, res.LastName, res.Email, res.PhoneNumber)
	return err
}

func (r *residentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Resident, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *residentRepo) UpdateIfVersion(ctx context.Context, res *models.Resident, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
		UPDATE residents SET
			first_name=$1, last_name=$2, email=$3, phone_number=$4,
			updated_at=NOW(), row_version=row_version+1
		WHERE id=$5 AND row_version=$6
	`, res.FirstName, res.LastName, res.Email, res.PhoneNumber, res.ID, expected)
}

func (r *residentRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Resident) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func baseSelectResident() string {
	return `
		SELECT id, first_name, last_name, email, phone_number,
		       created_at, updated_at, row_version
		FROM residents`
}

func scanResident(row pgx.Row) (*models.Resident, error) {
	var res models.Resident
	if err := row.Scan(
		&res.ID, &res.FirstName, &res.LastName, &res.Email, &res.PhoneNumber,
		&res.CreatedAt, &res.UpdatedAt, &res.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}
