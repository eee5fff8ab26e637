package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/im7mortal/kmutex"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/config"
	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/dtos"
	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/services"
	internal_utils "github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/utils"
	shared_dtos "github.com/bostadsportal/mono-repo/backend/shared/go-dtos"
	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

var buildingValidate = validator.New()

type BuildingController struct {
	buildingService    *services.BuildingService
	exportService      *services.ExportService
	spreadsheetService *services.SpreadsheetRosterService
	residents          services.ResidentResolver

	exportRoot         string
	spreadsheetEnabled bool

	// one export per building at a time; shared with the export pruner
	exportLocks *kmutex.Kmutex
}

func NewBuildingController(
	cfg *config.Config,
	buildingService *services.BuildingService,
	exportService *services.ExportService,
	spreadsheetService *services.SpreadsheetRosterService,
	residents services.ResidentResolver,
	exportLocks *kmutex.Kmutex,
) *BuildingController {
	return &BuildingController{
		buildingService:    buildingService,
		exportService:      exportService,
		spreadsheetService: spreadsheetService,
		residents:          residents,
		exportRoot:         cfg.ExportRootDir,
		spreadsheetEnabled: cfg.LDFlag_SpreadsheetRosterEnabled,
		exportLocks:        exportLocks,
	}
}

// ----------------------------------------------------------------
// GET /api/v1/buildings/{id}
// ----------------------------------------------------------------
func (c *BuildingController) GetBuildingHandler(w http.ResponseWriter, r *http.Request) {
	b, ok := c.loadBuilding(w, r)
	if !ok {
		return
	}

	resp, err := c.buildingService.DescribeBuilding(r.Context(), c.runResolver(), b)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/buildings/{id}/export
// ----------------------------------------------------------------
func (c *BuildingController) ExportHandler(w http.ResponseWriter, r *http.Request) {
	b, ok := c.loadBuilding(w, r)
	if !ok {
		return
	}

	key := b.ID.String()
	c.exportLocks.Lock(key)
	defer c.exportLocks.Unlock(key)

	dir := filepath.Join(c.exportRoot, key)
	result, err := c.exportService.Export(r.Context(), c.runResolver(), b, dir)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if result == nil || result.FileName == "" {
		// no street address to name the archive after
		respondServiceError(w, fmt.Errorf("building %s: empty archive: %w", key, internal_utils.ErrExportFailed))
		return
	}
	utils.RespondWithAttachment(w, result.FileName, result.ContentType, result.Content)
}

// ----------------------------------------------------------------
// GET /api/v1/buildings/{id}/roster.xlsx
// ----------------------------------------------------------------
func (c *BuildingController) SpreadsheetHandler(w http.ResponseWriter, r *http.Request) {
	if !c.spreadsheetEnabled {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeFeatureDisabled, "Spreadsheet roster is not enabled", nil)
		return
	}
	b, ok := c.loadBuilding(w, r)
	if !ok {
		return
	}

	sheet, err := c.spreadsheetService.Build(r.Context(), c.runResolver(), b)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithAttachment(w, sheet.FileName, utils.ContentTypeXlsx, sheet.Content)
}

// ----------------------------------------------------------------
// helpers
// ----------------------------------------------------------------

// runResolver wraps the resident resolver with a per-request cache.
func (c *BuildingController) runResolver() services.ResidentResolver {
	return services.NewCachingResidentResolver(c.residents)
}

func (c *BuildingController) loadBuilding(w http.ResponseWriter, r *http.Request) (*models.Building, bool) {
	params := dtos.BuildingPathParams{ID: mux.Vars(r)["id"]}
	if err := buildingValidate.Struct(params); err != nil {
		utils.RespondErrorWithCode(
			w,
			http.StatusBadRequest,
			utils.ErrCodeValidation,
			"Invalid building id",
			shared_dtos.NewValidationErrorDetails(err),
			err,
		)
		return nil, false
	}
	id, err := uuid.Parse(params.ID)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid building id", nil, err)
		return nil, false
	}

	b, err := c.buildingService.LoadBuilding(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	return b, true
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, internal_utils.ErrBuildingNotFound):
		utils.HandleAppError(w, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Building not found", err))
	case errors.Is(err, internal_utils.ErrExportFailed),
		errors.Is(err, internal_utils.ErrEmptyRenderResult):
		utils.HandleAppError(w, utils.NewAppError(
			http.StatusUnprocessableEntity,
			utils.ErrCodeExportFailed,
			"The roster could not be exported. Check that the building has units and try again.",
			err,
		))
	default:
		utils.HandleAppError(w, err)
	}
}
