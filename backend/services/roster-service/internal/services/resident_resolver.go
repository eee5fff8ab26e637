package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
	"github.com/bostadsportal/mono-repo/backend/shared/go-repositories"
)

// RepositoryResidentResolver resolves residents straight from Postgres.
type RepositoryResidentResolver struct {
	repo repositories.ResidentRepository
}

func NewRepositoryResidentResolver(repo repositories.ResidentRepository) *RepositoryResidentResolver {
	return &RepositoryResidentResolver{repo: repo}
}

func (r *RepositoryResidentResolver) Resolve(ctx context.Context, id uuid.UUID) (*models.Resident, error) {
	return r.repo.GetByID(ctx, id)
}

// CachingResidentResolver memoises another resolver for the lifetime of
// one export run, so a resident renting several units or appearing in all
// three documents is fetched once. Not safe for concurrent use.
type CachingResidentResolver struct {
	next  ResidentResolver
	cache map[uuid.UUID]*models.Resident
}

func NewCachingResidentResolver(next ResidentResolver) *CachingResidentResolver {
	return &CachingResidentResolver{next: next, cache: map[uuid.UUID]*models.Resident{}}
}

func (c *CachingResidentResolver) Resolve(ctx context.Context, id uuid.UUID) (*models.Resident, error) {
	if r, ok := c.cache[id]; ok {
		return r, nil
	}
	r, err := c.next.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if r != nil {
		c.cache[id] = r
	}
	return r, nil
}
