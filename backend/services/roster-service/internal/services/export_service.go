package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	internal_utils "github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/utils"
	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

// DocumentRenderer is the set of roster layouts an export bundles.
type DocumentRenderer interface {
	RenderFullRoster(ctx context.Context, req RenderRequest) (*RenderedDocument, error)
	RenderCondensedRoster(ctx context.Context, req RenderRequest) (*RenderedDocument, error)
	RenderEntryCodeRoster(ctx context.Context, req RenderRequest) (*RenderedDocument, error)
}

type Archiver interface {
	Build(name, dir string, paths []string) (*ArchiveResult, error)
}

type ExportService struct {
	renderer DocumentRenderer
	archiver Archiver
}

func NewExportService(renderer DocumentRenderer, archiver Archiver) *ExportService {
	return &ExportService{renderer: renderer, archiver: archiver}
}

// Export renders the three roster documents for building into dir and
// bundles them as {street}{number}.zip. dir is emptied of regular files
// first, or created. Any failure aborts the run; nothing is retried.
func (s *ExportService) Export(
	ctx context.Context,
	residents ResidentResolver,
	building *models.Building,
	dir string,
) (*ArchiveResult, error) {
	if building == nil {
		return nil, fmt.Errorf("%w: no building", internal_utils.ErrExportFailed)
	}
	log := utils.Logger.WithField("building_id", building.ID).WithField("dir", dir)

	if err := PrepareExportDir(dir); err != nil {
		return nil, err
	}

	req := RenderRequest{Building: building, OutputDir: dir, Residents: residents}
	steps := []struct {
		name   string
		render func(context.Context, RenderRequest) (*RenderedDocument, error)
	}{
		{"full roster", s.renderer.RenderFullRoster},
		{"condensed roster", s.renderer.RenderCondensedRoster},
		{"entry-code roster", s.renderer.RenderEntryCodeRoster},
	}

	paths := make([]string, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := step.render(ctx, req)
		if err != nil {
			if errors.Is(err, internal_utils.ErrEmptyRenderResult) {
				log.Warnf("Export aborted, %s is empty", step.name)
				return nil, fmt.Errorf("%w: %w", internal_utils.ErrExportFailed, err)
			}
			return nil, fmt.Errorf("render %s: %w", step.name, err)
		}
		if doc == nil || doc.Path == "" {
			log.Warnf("Export aborted, %s produced no document", step.name)
			return nil, fmt.Errorf("%w: %s: %w", internal_utils.ErrExportFailed, step.name, internal_utils.ErrEmptyRenderResult)
		}
		paths = append(paths, doc.Path)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := s.archiver.Build(building.StreetAddress(), dir, paths)
	if err != nil {
		return nil, err
	}
	log.Infof("Exported roster archive %s", result.FileName)
	return result, nil
}

// PrepareExportDir removes every regular file directly inside dir, or
// creates dir when it does not exist. Subdirectories are left alone.
func PrepareExportDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: no export directory", internal_utils.ErrDirectoryCleanup)
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %w", internal_utils.ErrDirectoryCleanup, dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: list %s: %w", internal_utils.ErrDirectoryCleanup, dir, err)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("%w: remove %s: %w", internal_utils.ErrDirectoryCleanup, p, err)
		}
	}
	return nil
}
