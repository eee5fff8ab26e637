package constants

import "time"

// Roster document naming: {street}{number}{suffix}{ext}
const (
	RosterFileExtension      = ".docx"
	FullRosterSuffix         = ""
	CondensedRosterSuffix    = "A5"
	EntryCodeRosterSuffix    = "Portkodstavla"
	ArchiveFileExtension     = ".zip"
	SpreadsheetFileExtension = ".xlsx"
)

// Printed labels
const (
	FloorLabelFormat       = "Våning %d"
	EntryCodeTitleFormat   = "Portkodstavla %s"
	SpreadsheetSheetName   = "Boende"
	SpreadsheetHeaderFloor = "Våning"
	SpreadsheetHeaderUnit  = "Lgh"
	SpreadsheetHeaderCode  = "Portkod"
	SpreadsheetHeaderNames = "Namn"
)

const (
	DefaultCollationLocale = "sv"

	DefaultExportRootDir         = "/tmp/roster-exports"
	DefaultExportRetention       = 24 * time.Hour
	DefaultExportCleanupSchedule = "@every 1h"
	DefaultRosterTemplateDir     = "templates"
)

// Roster templates shipped in the service's templates/ directory
const (
	FullRosterTemplate      = "full_roster.docx"
	CondensedRosterTemplate = "condensed_roster.docx"
	EntryCodeRosterTemplate = "entry_code_roster.docx"
)
