package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
)

type mapResolver struct {
	residents map[uuid.UUID]*models.Resident
	calls     int
	err       error
}

func newMapResolver() *mapResolver {
	return &mapResolver{residents: map[uuid.UUID]*models.Resident{}}
}

func (m *mapResolver) Resolve(_ context.Context, id uuid.UUID) (*models.Resident, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.residents[id], nil
}

// add registers a resident and returns a tenancy pointing at it.
func (m *mapResolver) add(first, last string) *models.Tenancy {
	r := &models.Resident{ID: uuid.New(), FirstName: first, LastName: last}
	m.residents[r.ID] = r
	return &models.Tenancy{ID: uuid.New(), ResidentID: r.ID, ShowInRoster: true}
}

func testUnit(number string, floor int, code string, tenancies ...*models.Tenancy) *models.Unit {
	return &models.Unit{
		ID:         uuid.New(),
		UnitNumber: number,
		Floor:      floor,
		EntryCode:  code,
		Tenancies:  tenancies,
	}
}

// testBuilding has three floors (2, 1, -1), five units, one of them empty.
func testBuilding(res *mapResolver) *models.Building {
	return &models.Building{
		ID:         uuid.New(),
		Street:     "Storgatan",
		Number:     "12",
		PostalCode: "11122",
		Town:       "Stockholm",
		Country:    "SE",
		Units: []*models.Unit{
			testUnit("1001", 1, "4411", res.add("Jean-Paul", "Dupont")),
			testUnit("1002", 1, "1234", res.add("Erik", "Berg"), res.add("Anna", "Berg"), res.add("Karin", "Ek")),
			testUnit("0901", -1, "9000"),
			testUnit("1201", 2, "0042", res.add("Sara", "Lind")),
			testUnit("1202", 2, "3300", res.add("Olle", "Åberg")),
		},
	}
}

func testRenderer() *RosterRenderer {
	return NewRosterRenderer(testTemplates, NewTenantNameFormatter("sv"))
}

type stubRenderer struct {
	full, condensed, entry func(context.Context, RenderRequest) (*RenderedDocument, error)
	calls                  []string
}

func (s *stubRenderer) RenderFullRoster(ctx context.Context, req RenderRequest) (*RenderedDocument, error) {
	s.calls = append(s.calls, "full")
	return s.full(ctx, req)
}

func (s *stubRenderer) RenderCondensedRoster(ctx context.Context, req RenderRequest) (*RenderedDocument, error) {
	s.calls = append(s.calls, "condensed")
	return s.condensed(ctx, req)
}

func (s *stubRenderer) RenderEntryCodeRoster(ctx context.Context, req RenderRequest) (*RenderedDocument, error) {
	s.calls = append(s.calls, "entry")
	return s.entry(ctx, req)
}

type recordingArchiver struct {
	called bool
	inner  Archiver
}

func (r *recordingArchiver) Build(name, dir string, paths []string) (*ArchiveResult, error) {
	r.called = true
	if r.inner == nil {
		return nil, errors.New("no archiver")
	}
	return r.inner.Build(name, dir, paths)
}
