package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/benjaminschreck/go-stencil"
	"github.com/google/uuid"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/constants"
	internal_utils "github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/utils"
	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

// ResidentResolver looks up the resident behind a tenancy.
// (nil, nil) means the resident does not exist.
type ResidentResolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (*models.Resident, error)
}

// RenderRequest carries everything one render call needs. Nothing about
// a run is kept on the renderer itself.
type RenderRequest struct {
	Building  *models.Building
	OutputDir string
	Residents ResidentResolver
}

type RenderedDocument struct {
	FileName string
	Path     string
}

type RosterRenderer struct {
	templates *RosterTemplateSet
	names     *TenantNameFormatter
}

func NewRosterRenderer(templates *RosterTemplateSet, names *TenantNameFormatter) *RosterRenderer {
	return &RosterRenderer{templates: templates, names: names}
}

type floorGroup struct {
	floor int
	units []*models.Unit
}

// rosterRow is one table row of a rendered roster. Floor dividers and unit
// rows share the shape so a template needs a single row loop; "divider"
// lets a custom template style the floor rows with {{if row.divider}}.
type rosterRow = map[string]any

func dividerRow(floor int) rosterRow {
	return rosterRow{"label": fmt.Sprintf(constants.FloorLabelFormat, floor), "names": "", "code": "", "divider": true}
}

func unitRow(u *models.Unit, names string) rosterRow {
	return rosterRow{"label": u.UnitNumber, "names": names, "code": u.EntryCode, "divider": false}
}

// ----------------------------------------------------------------------
// Full roster: every unit, grouped by floor from the top down.
// ----------------------------------------------------------------------
func (r *RosterRenderer) RenderFullRoster(ctx context.Context, req RenderRequest) (*RenderedDocument, error) {
	return r.renderFloorRoster(ctx, req, r.templates.full, constants.FullRosterSuffix, false)
}

// ----------------------------------------------------------------------
// Condensed (A5) roster: as the full roster without empty units. A floor
// left without units is omitted entirely.
// ----------------------------------------------------------------------
func (r *RosterRenderer) RenderCondensedRoster(ctx context.Context, req RenderRequest) (*RenderedDocument, error) {
	return r.renderFloorRoster(ctx, req, r.templates.condensed, constants.CondensedRosterSuffix, true)
}

// ----------------------------------------------------------------------
// Entry-code board: one row per unit ordered by entry code.
// ----------------------------------------------------------------------
func (r *RosterRenderer) RenderEntryCodeRoster(ctx context.Context, req RenderRequest) (*RenderedDocument, error) {
	if err := validateRequest(ctx, req, "entry-code roster"); err != nil {
		return nil, err
	}
	b := req.Building

	var rows []any
	for _, u := range unitsByEntryCode(b.Units) {
		names, err := r.names.UnitNames(ctx, req.Residents, u)
		if err != nil {
			return nil, err
		}
		rows = append(rows, unitRow(u, names))
	}

	title := fmt.Sprintf(constants.EntryCodeTitleFormat, b.DisplayName())
	return renderDocument(r.templates.entryCode, req, constants.EntryCodeRosterSuffix, title, rows)
}

func (r *RosterRenderer) renderFloorRoster(
	ctx context.Context,
	req RenderRequest,
	tmpl *stencil.PreparedTemplate,
	suffix string,
	skipEmpty bool,
) (*RenderedDocument, error) {
	variant := "full roster"
	if skipEmpty {
		variant = "condensed roster"
	}
	if err := validateRequest(ctx, req, variant); err != nil {
		return nil, err
	}
	b := req.Building

	var rows []any
	for _, g := range groupByFloor(b.Units) {
		units := g.units
		if skipEmpty {
			units = withTenancies(units)
			if len(units) == 0 {
				continue
			}
		}
		rows = append(rows, dividerRow(g.floor))
		for _, u := range units {
			names, err := r.names.UnitNames(ctx, req.Residents, u)
			if err != nil {
				return nil, err
			}
			rows = append(rows, unitRow(u, names))
		}
	}

	return renderDocument(tmpl, req, suffix, b.DisplayName(), rows)
}

func validateRequest(ctx context.Context, req RenderRequest, variant string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Building == nil || countUnits(req.Building.Units) == 0 {
		return fmt.Errorf("%s: %w", variant, internal_utils.ErrEmptyRenderResult)
	}
	if req.Residents == nil {
		return fmt.Errorf("%s: no resident resolver", variant)
	}
	if req.OutputDir == "" {
		return fmt.Errorf("%s: no output directory", variant)
	}
	return nil
}

func countUnits(units []*models.Unit) int {
	n := 0
	for _, u := range units {
		if u != nil {
			n++
		}
	}
	return n
}

func renderDocument(
	tmpl *stencil.PreparedTemplate,
	req RenderRequest,
	suffix string,
	title string,
	rows []any,
) (*RenderedDocument, error) {
	if rows == nil {
		rows = []any{}
	}
	out, err := tmpl.Render(stencil.TemplateData{
		"title": title,
		"rows":  rows,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s template: %w", suffix, err)
	}

	name := RosterFileName(req.Building, suffix)
	path := filepath.Join(req.OutputDir, name)
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	utils.Logger.WithField("path", path).Debug("Rendered roster document")
	return &RenderedDocument{FileName: name, Path: path}, nil
}

// RosterFileName is {street}{number}{suffix}.docx.
func RosterFileName(b *models.Building, suffix string) string {
	return b.StreetAddress() + suffix + constants.RosterFileExtension
}

// groupByFloor partitions units by floor, highest floor first. Units keep
// their collection order inside a floor.
func groupByFloor(units []*models.Unit) []floorGroup {
	index := map[int]int{}
	var groups []floorGroup
	for _, u := range units {
		if u == nil {
			continue
		}
		i, ok := index[u.Floor]
		if !ok {
			i = len(groups)
			index[u.Floor] = i
			groups = append(groups, floorGroup{floor: u.Floor})
		}
		groups[i].units = append(groups[i].units, u)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].floor > groups[j].floor })
	return groups
}

func withTenancies(units []*models.Unit) []*models.Unit {
	out := make([]*models.Unit, 0, len(units))
	for _, u := range units {
		if u.HasTenancies() {
			out = append(out, u)
		}
	}
	return out
}

func unitsByEntryCode(units []*models.Unit) []*models.Unit {
	out := make([]*models.Unit, 0, len(units))
	for _, u := range units {
		if u != nil {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryCode < out[j].EntryCode })
	return out
}
