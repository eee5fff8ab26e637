package controllers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/im7mortal/kmutex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/config"
	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/dtos"
	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/routes"
	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/services"
	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
	"github.com/bostadsportal/mono-repo/backend/shared/go-repositories"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

/* ---------- in-memory repositories ---------- */

type memStore struct {
	buildings map[uuid.UUID]*models.Building
	units     map[uuid.UUID][]*models.Unit
	tenancies map[uuid.UUID][]*models.Tenancy
	residents map[uuid.UUID]*models.Resident
}

type memBuildingRepo struct {
	repositories.BuildingRepository
	s *memStore
}

func (m memBuildingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Building, error) {
	b, ok := m.s.buildings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m memBuildingRepo) ListHostIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type memUnitRepo struct {
	repositories.UnitRepository
	s *memStore
}

func (m memUnitRepo) ListByBuildingID(_ context.Context, id uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range m.s.units[id] {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type memTenancyRepo struct {
	repositories.TenancyRepository
	s *memStore
}

func (m memTenancyRepo) ListByBuildingID(_ context.Context, id uuid.UUID) ([]*models.Tenancy, error) {
	return m.s.tenancies[id], nil
}

type memResidentRepo struct {
	repositories.ResidentRepository
	s *memStore
}

func (m memResidentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Resident, error) {
	return m.s.residents[id], nil
}

func (s *memStore) addBuilding(street, number string) uuid.UUID {
	id := uuid.New()
	s.buildings[id] = &models.Building{ID: id, Street: street, Number: number, PostalCode: "11122", Town: "Stockholm"}
	return id
}

func (s *memStore) addUnit(buildingID uuid.UUID, number string, floor int, code string, names ...[2]string) {
	u := &models.Unit{ID: uuid.New(), BuildingID: buildingID, UnitNumber: number, Floor: floor, EntryCode: code}
	s.units[buildingID] = append(s.units[buildingID], u)
	for _, n := range names {
		r := &models.Resident{ID: uuid.New(), FirstName: n[0], LastName: n[1]}
		s.residents[r.ID] = r
		s.tenancies[buildingID] = append(s.tenancies[buildingID], &models.Tenancy{ID: uuid.New(), UnitID: u.ID, ResidentID: r.ID})
	}
}

type fixture struct {
	router   *mux.Router
	store    *memStore
	building uuid.UUID
	empty    uuid.UUID
	unnamed  uuid.UUID
}

func newFixture(t *testing.T, spreadsheetEnabled bool) *fixture {
	t.Helper()
	s := &memStore{
		buildings: map[uuid.UUID]*models.Building{},
		units:     map[uuid.UUID][]*models.Unit{},
		tenancies: map[uuid.UUID][]*models.Tenancy{},
		residents: map[uuid.UUID]*models.Resident{},
	}
	id := s.addBuilding("Storgatan", "12")
	s.addUnit(id, "1001", 1, "4411", [2]string{"Jean-Paul", "Dupont"})
	s.addUnit(id, "1002", 1, "1234", [2]string{"Erik", "Berg"}, [2]string{"Anna", "Berg"}, [2]string{"Karin", "Ek"})
	s.addUnit(id, "1201", 2, "0042")
	empty := s.addBuilding("Tomtgatan", "1")
	unnamed := s.addBuilding("", "")
	s.addUnit(unnamed, "1", 0, "1111", [2]string{"Eva", "Holm"})

	templates, err := services.PrepareRosterTemplates(config.DefaultRosterTemplates("../../templates"))
	require.NoError(t, err)
	t.Cleanup(templates.Close)

	cfg := &config.Config{
		ExportRootDir:                   t.TempDir(),
		LDFlag_SpreadsheetRosterEnabled: spreadsheetEnabled,
	}
	names := services.NewTenantNameFormatter("sv")
	ctrl := NewBuildingController(
		cfg,
		services.NewBuildingService(memBuildingRepo{s: s}, memUnitRepo{s: s}, memTenancyRepo{s: s}, names),
		services.NewExportService(services.NewRosterRenderer(templates, names), services.NewArchiveBuilder()),
		services.NewSpreadsheetRosterService(names),
		services.NewRepositoryResidentResolver(memResidentRepo{s: s}),
		kmutex.New(),
	)

	router := mux.NewRouter()
	router.HandleFunc(routes.Building, ctrl.GetBuildingHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingExport, ctrl.ExportHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingSpreadsheet, ctrl.SpreadsheetHandler).Methods(http.MethodGet)

	return &fixture{router: router, store: s, building: id, empty: empty, unnamed: unnamed}
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

/* ---------- tests ---------- */

func TestGetBuildingHandler(t *testing.T) {
	f := newFixture(t, true)
	rec := f.get("/api/v1/buildings/" + f.building.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dtos.BuildingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Storgatan 12, 11122 Stockholm", resp.DisplayName)
	require.Len(t, resp.Floors, 2)
	assert.Equal(t, 2, resp.Floors[0].Floor)
	assert.Equal(t, "A & E Berg/K Ek", resp.Floors[1].Units[1].TenantNames)
}

func TestGetBuildingHandler_InvalidID(t *testing.T) {
	f := newFixture(t, true)
	rec := f.get("/api/v1/buildings/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeValidation, decodeError(t, rec).Code)
}

func TestGetBuildingHandler_NotFound(t *testing.T) {
	f := newFixture(t, true)
	rec := f.get("/api/v1/buildings/" + uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.ErrCodeNotFound, decodeError(t, rec).Code)
}

func TestExportHandler(t *testing.T) {
	f := newFixture(t, true)
	rec := f.get("/api/v1/buildings/" + f.building.String() + "/export")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Storgatan12.zip"`, rec.Header().Get("Content-Disposition"))

	body := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	var names []string
	for _, file := range zr.File {
		names = append(names, file.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"Storgatan12.docx", "Storgatan12A5.docx", "Storgatan12Portkodstavla.docx"}, names)
}

func TestExportHandler_RepeatedExportsReuseDirectory(t *testing.T) {
	f := newFixture(t, true)
	path := "/api/v1/buildings/" + f.building.String() + "/export"
	first := f.get(path)
	second := f.get(path)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Header().Get("Content-Disposition"), second.Header().Get("Content-Disposition"))
}

func TestExportHandler_EmptyBuilding(t *testing.T) {
	f := newFixture(t, true)
	rec := f.get("/api/v1/buildings/" + f.empty.String() + "/export")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, utils.ErrCodeExportFailed, decodeError(t, rec).Code)
}

func TestExportHandler_BuildingWithoutAddress(t *testing.T) {
	f := newFixture(t, true)
	rec := f.get("/api/v1/buildings/" + f.unnamed.String() + "/export")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, utils.ErrCodeExportFailed, decodeError(t, rec).Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestExportHandler_MissingResident(t *testing.T) {
	f := newFixture(t, true)
	delete(f.store.residents, f.store.tenancies[f.building][0].ResidentID)
	rec := f.get("/api/v1/buildings/" + f.building.String() + "/export")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, utils.ErrCodeInternal, decodeError(t, rec).Code)
}

func TestSpreadsheetHandler(t *testing.T) {
	f := newFixture(t, true)
	rec := f.get("/api/v1/buildings/" + f.building.String() + "/roster.xlsx")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, utils.ContentTypeXlsx, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Storgatan12.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestSpreadsheetHandler_Disabled(t *testing.T) {
	f := newFixture(t, false)
	rec := f.get("/api/v1/buildings/" + f.building.String() + "/roster.xlsx")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.ErrCodeFeatureDisabled, decodeError(t, rec).Code)
}
