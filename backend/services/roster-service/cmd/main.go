package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/im7mortal/kmutex"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/app"
	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/config"
	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/controllers"
	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/routes"
	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/services"
	"github.com/bostadsportal/mono-repo/backend/shared/go-repositories"
	seeding "github.com/bostadsportal/mono-repo/backend/shared/go-seeding"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

const seedTimeout = 30 * time.Second

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize roster-service:", err)
	}
	defer application.Close()

	// Repositories
	bldgRepo := repositories.NewBuildingRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	tenancyRepo := repositories.NewTenancyRepository(application.DB)
	residentRepo := repositories.NewResidentRepository(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		err := app.SeedAllTestData(ctx, seeding.Repos{
			Buildings: bldgRepo,
			Units:     unitRepo,
			Tenancies: tenancyRepo,
			Residents: residentRepo,
		})
		cancel()
		if err != nil {
			utils.Logger.Fatal("Failed to seed demo data:", err)
		}
	}

	rosterTemplates, err := services.PrepareRosterTemplates(cfg.RosterTemplates)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to prepare roster templates")
	}
	defer rosterTemplates.Close()

	// per-building lock shared by the export handler and the pruner
	exportLocks := kmutex.New()

	// Services
	names := services.NewTenantNameFormatter(cfg.CollationLocale)
	buildingService := services.NewBuildingService(bldgRepo, unitRepo, tenancyRepo, names)
	rosterRenderer := services.NewRosterRenderer(rosterTemplates, names)
	exportService := services.NewExportService(rosterRenderer, services.NewArchiveBuilder())
	spreadsheetService := services.NewSpreadsheetRosterService(names)
	cleanupService := services.NewExportCleanupService(cfg.ExportRootDir, cfg.ExportRetention, exportLocks)

	// Controllers
	healthController := controllers.NewHealthController(application)
	buildingController := controllers.NewBuildingController(
		cfg,
		buildingService,
		exportService,
		spreadsheetService,
		services.NewRepositoryResidentResolver(residentRepo),
		exportLocks,
	)

	// Router setup
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Building, buildingController.GetBuildingHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingExport, buildingController.ExportHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingSpreadsheet, buildingController.SpreadsheetHandler).Methods(http.MethodGet)

	// Cron job setup
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(cfg.ExportCleanupSchedule, cleanupService.Run); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule export cleanup cron")
	}
	c.Start()
	defer c.Stop()
	utils.Logger.Infof("Scheduled export cleanup '%s' (retention %v)", cfg.ExportCleanupSchedule, cfg.ExportRetention)

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("roster-service failed to start:", err)
	}
}
