package testhelpers

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/bostadsportal/mono-repo/backend/shared/go-repositories"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

// TestHelper encapsulates all necessary components for running integration tests across services.
type TestHelper struct {
	T       *testing.T
	Ctx     context.Context
	BaseURL string
	DB      *pgxpool.Pool

	AppName string

	// Repositories
	BldgRepo     repositories.BuildingRepository
	UnitRepo     repositories.UnitRepository
	TenancyRepo  repositories.TenancyRepository
	ResidentRepo repositories.ResidentRepository
}

// NewTestHelper loads the DB URL (Bitwarden project "{appName}-{ENV}" when
// BWS_ACCESS_TOKEN is set, DATABASE_URL otherwise), connects and wires the
// repositories. It's designed to be called once from a TestMain function.
func NewTestHelper(t *testing.T, appName string) *TestHelper {
	baseURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if baseURL == "" {
		log.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	env := os.Getenv("ENV")
	if env == "" {
		log.Fatal("ENV env var is missing")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if os.Getenv("BWS_ACCESS_TOKEN") != "" {
		client, err := utils.NewBWSSecretsClient()
		require.NoError(t, err, "Failed to init BWS client")
		defer client.Close()

		appSecrets, err := client.GetBWSSecrets(fmt.Sprintf("%s-%s", appName, env))
		require.NoError(t, err, "Failed to fetch app secrets")
		if v := appSecrets["DB_URL"]; v != "" {
			dbURL = v
		}
	}
	require.NotEmpty(t, dbURL, "DB_URL not found in BWS or DATABASE_URL")

	ctx := context.Background()
	dbPool, err := pgxpool.Connect(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { dbPool.Close() })

	return &TestHelper{
		T:            t,
		Ctx:          ctx,
		BaseURL:      baseURL,
		DB:           dbPool,
		AppName:      appName,
		BldgRepo:     repositories.NewBuildingRepository(dbPool),
		UnitRepo:     repositories.NewUnitRepository(dbPool),
		TenancyRepo:  repositories.NewTenancyRepository(dbPool),
		ResidentRepo: repositories.NewResidentRepository(dbPool),
	}
}
