package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/constants"
	internal_utils "github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/utils"
	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
)

type SpreadsheetRoster struct {
	FileName string
	Content  []byte
}

// SpreadsheetRosterService writes the full roster as a single worksheet:
// one row per unit, floors from the top down, same tenant-name rendering as
// the printed rosters.
type SpreadsheetRosterService struct {
	names *TenantNameFormatter
}

func NewSpreadsheetRosterService(names *TenantNameFormatter) *SpreadsheetRosterService {
	return &SpreadsheetRosterService{names: names}
}

var spreadsheetHeader = []any{
	constants.SpreadsheetHeaderFloor,
	constants.SpreadsheetHeaderUnit,
	constants.SpreadsheetHeaderCode,
	constants.SpreadsheetHeaderNames,
}

func (s *SpreadsheetRosterService) Build(
	ctx context.Context,
	residents ResidentResolver,
	building *models.Building,
) (*SpreadsheetRoster, error) {
	if building == nil || countUnits(building.Units) == 0 {
		return nil, fmt.Errorf("spreadsheet roster: %w", internal_utils.ErrEmptyRenderResult)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := constants.SpreadsheetSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &spreadsheetHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	row := 2
	for _, g := range groupByFloor(building.Units) {
		for _, u := range g.units {
			names, err := s.names.UnitNames(ctx, residents, u)
			if err != nil {
				return nil, err
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			values := []any{g.floor, u.UnitNumber, u.EntryCode, names}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetColWidth(sheet, "A", "C", 12); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "D", "D", 48); err != nil {
		return nil, err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &SpreadsheetRoster{
		FileName: building.StreetAddress() + constants.SpreadsheetFileExtension,
		Content:  buf.Bytes(),
	}, nil
}
