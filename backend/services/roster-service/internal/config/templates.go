package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/constants"
)

// RosterTemplates holds the .docx template of each roster layout. Fonts,
// page size and column widths live in the templates themselves, so swapping
// a file restyles a variant without touching code.
type RosterTemplates struct {
	Full      string `yaml:"full"`
	Condensed string `yaml:"condensed"`
	EntryCode string `yaml:"entry_code"`
}

func DefaultRosterTemplates(dir string) RosterTemplates {
	return RosterTemplates{
		Full:      filepath.Join(dir, constants.FullRosterTemplate),
		Condensed: filepath.Join(dir, constants.CondensedRosterTemplate),
		EntryCode: filepath.Join(dir, constants.EntryCodeRosterTemplate),
	}
}

// LoadRosterTemplates starts from the templates shipped in dir and applies
// the YAML manifest at manifestPath, if any. Relative paths in the manifest
// resolve against the manifest's own directory.
func LoadRosterTemplates(dir, manifestPath string) (RosterTemplates, error) {
	templates := DefaultRosterTemplates(dir)
	if manifestPath != "" {
		raw, err := os.ReadFile(manifestPath)
		if err != nil {
			return templates, fmt.Errorf("read roster templates %s: %w", manifestPath, err)
		}
		var overrides RosterTemplates
		if err := yaml.Unmarshal(raw, &overrides); err != nil {
			return templates, fmt.Errorf("parse roster templates %s: %w", manifestPath, err)
		}
		base := filepath.Dir(manifestPath)
		templates.Full = overlayPath(templates.Full, overrides.Full, base)
		templates.Condensed = overlayPath(templates.Condensed, overrides.Condensed, base)
		templates.EntryCode = overlayPath(templates.EntryCode, overrides.EntryCode, base)
	}
	if err := templates.Validate(); err != nil {
		return templates, err
	}
	return templates, nil
}

func overlayPath(current, override, base string) string {
	if override == "" {
		return current
	}
	if filepath.IsAbs(override) {
		return override
	}
	return filepath.Join(base, override)
}

// Validate checks that every variant points at an existing .docx file.
func (t RosterTemplates) Validate() error {
	for _, v := range []struct{ name, path string }{
		{"full", t.Full},
		{"condensed", t.Condensed},
		{"entry_code", t.EntryCode},
	} {
		if !strings.EqualFold(filepath.Ext(v.path), constants.RosterFileExtension) {
			return fmt.Errorf("%s template %q is not a %s file", v.name, v.path, constants.RosterFileExtension)
		}
		info, err := os.Stat(v.path)
		if err != nil {
			return fmt.Errorf("%s template: %w", v.name, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s template %q is a directory", v.name, v.path)
		}
	}
	return nil
}
