// Package export writes yearly summaries to an Excel workbook.
package export

import (
	"fmt"

	"mlb_scenarios/etl/internal/models"

	"github.com/xuri/excelize/v2"
)

// AllTeamsSheet is the name of the combined sheet
const AllTeamsSheet = "All Teams"

// WorkbookFile is the default workbook file name
const WorkbookFile = "all_teams_yearly_summary.xlsx"

// WriteWorkbook writes an "All Teams" sheet with every summary plus one sheet
// per team in first-seen order, and saves the workbook to path.
func WriteWorkbook(path string, summaries []models.TeamYearSummary) error {
	f, err := BuildWorkbook(summaries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// BuildWorkbook builds the summary workbook in memory. The caller closes the
// returned file; on error it is already closed.
func BuildWorkbook(summaries []models.TeamYearSummary) (_ *excelize.File, err error) {
	f := excelize.NewFile()
	defer func() {
		if err != nil {
			f.Close()
		}
	}()

	if err := f.SetSheetName("Sheet1", AllTeamsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheet(f, AllTeamsSheet, headerStyle, summaries); err != nil {
		return nil, err
	}

	var order []string
	byTeam := make(map[string][]models.TeamYearSummary)
	for _, s := range summaries {
		if _, ok := byTeam[s.Team]; !ok {
			order = append(order, s.Team)
		}
		byTeam[s.Team] = append(byTeam[s.Team], s)
	}

	for _, team := range order {
		if _, err := f.NewSheet(team); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", team, err)
		}
		if err := writeSheet(f, team, headerStyle, byTeam[team]); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, summaries []models.TeamYearSummary) error {
	for i, h := range models.SummaryColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header on %s: %w", sheet, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header on %s: %w", sheet, err)
	}

	for i, s := range summaries {
		for j, v := range s.Values() {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
			}
		}
	}

	last, _ := excelize.ColumnNumberToName(len(models.SummaryColumns))
	if err := f.SetColWidth(sheet, "A", "B", 10); err != nil {
		return fmt.Errorf("failed to size columns on %s: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "C", last, 20); err != nil {
		return fmt.Errorf("failed to size columns on %s: %w", sheet, err)
	}
	return nil
}
