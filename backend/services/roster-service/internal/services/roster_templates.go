package services

import (
	"fmt"

	"github.com/benjaminschreck/go-stencil"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/config"
)

// RosterTemplateSet holds the prepared .docx template of every roster
// layout. Prepared templates are safe for concurrent Render calls, so one
// set serves the whole process.
type RosterTemplateSet struct {
	full      *stencil.PreparedTemplate
	condensed *stencil.PreparedTemplate
	entryCode *stencil.PreparedTemplate
}

func PrepareRosterTemplates(paths config.RosterTemplates) (*RosterTemplateSet, error) {
	set := &RosterTemplateSet{}
	var err error
	if set.full, err = stencil.PrepareFile(paths.Full); err != nil {
		return nil, fmt.Errorf("prepare full roster template: %w", err)
	}
	if set.condensed, err = stencil.PrepareFile(paths.Condensed); err != nil {
		set.Close()
		return nil, fmt.Errorf("prepare condensed roster template: %w", err)
	}
	if set.entryCode, err = stencil.PrepareFile(paths.EntryCode); err != nil {
		set.Close()
		return nil, fmt.Errorf("prepare entry-code roster template: %w", err)
	}
	return set, nil
}

func (s *RosterTemplateSet) Close() {
	for _, t := range []*stencil.PreparedTemplate{s.full, s.condensed, s.entryCode} {
		if t != nil {
			t.Close()
		}
	}
}
