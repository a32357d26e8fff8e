package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"scorelink/internal"
)

func ExportRowsToXLSX(rows []internal.ExportRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"input_line_no", "source", "raw_line", "match_label",
		"batsman", "team_innings", "batting_pos",
		"runs", "balls", "fours", "sixes", "strike_rate",
		"dismissal_status", "resolve_status", "match_id",
		"winner", "margin", "ground", "match_date",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.InputLineNo)
		set(2, row.Source)
		set(3, row.RawLine)
		set(4, row.MatchLabel)
		set(5, derefString(row.Batsman))
		set(6, derefString(row.TeamInnings))
		set(7, derefInt(row.Position))
		set(8, derefFloat(row.Runs))
		set(9, derefFloat(row.Balls))
		set(10, derefFloat(row.Fours))
		set(11, derefFloat(row.Sixes))
		set(12, derefFloat(row.StrikeRate))
		set(13, row.DismissalStatus)
		set(14, row.ResolveStatus)
		set(15, derefString(row.MatchID))
		set(16, derefString(row.Winner))
		set(17, derefString(row.Margin))
		set(18, derefString(row.Ground))
		set(19, derefString(row.MatchDate))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
