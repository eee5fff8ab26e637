package app

import (
	"context"
	"fmt"

	seeding "github.com/bostadsportal/mono-repo/backend/shared/go-seeding"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

// SeedAllTestData seeds the demo building. Safe to run on every start.
func SeedAllTestData(ctx context.Context, repos seeding.Repos) error {
	if err := seeding.SeedDemoBuilding(ctx, repos); err != nil {
		return fmt.Errorf("seed demo building: %w", err)
	}
	utils.Logger.Info("roster-service: Seeding completed successfully.")
	return nil
}
