package utils

import "errors"

/*
   Sentinel errors for the roster export pipeline.
   Wrapped with fmt.Errorf("...: %w"); controllers match with errors.Is.
*/
var (
	// A renderer produced no document, e.g. a building without units.
	ErrEmptyRenderResult = errors.New("empty_render_result")

	// Any export run that could not produce an archive. Wraps the cause.
	ErrExportFailed = errors.New("export_failed")

	// A stale file in the export directory could not be removed.
	ErrDirectoryCleanup = errors.New("directory_cleanup_failed")

	// A tenancy references a resident the resolver does not know.
	ErrResidentNotFound = errors.New("resident_not_found")

	ErrArchiveWrite     = errors.New("archive_write_failed")
	ErrBuildingNotFound = errors.New("building_not_found")
)
