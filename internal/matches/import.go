package matches

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"scorelink/internal"
	"scorelink/internal/util"
)

// ImportFile reads an authoritative match list from a local XLSX or CSV
// export. The header row names the columns; team1, team2 and the
// scorecard id are required, the rest is descriptive.
func ImportFile(path string) ([]internal.MatchRecord, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls"):
		return parseMatchesXLSX(blob)
	case strings.HasSuffix(lower, ".csv"):
		return parseMatchesCSV(blob)
	default:
		return nil, fmt.Errorf("unsupported match list format: %s", path)
	}
}

func parseMatchesXLSX(content []byte) ([]internal.MatchRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := []internal.MatchRecord{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		records, ok := rowsToMatchRecords(rows)
		if ok {
			out = append(out, records...)
		}
	}
	return out, nil
}

func parseMatchesCSV(content []byte) ([]internal.MatchRecord, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	records, ok := rowsToMatchRecords(rows)
	if !ok {
		return nil, fmt.Errorf("no match list header row found")
	}
	return records, nil
}

func rowsToMatchRecords(rows [][]string) ([]internal.MatchRecord, bool) {
	if len(rows) < 2 {
		return nil, false
	}

	header := normalizeHeaderRow(rows[0])
	team1Idx := findColumn(header, "team1")
	team2Idx := findColumn(header, "team2")
	idIdx := findColumn(header, "scorecard", "matchid", "match id")
	if team1Idx < 0 || team2Idx < 0 || idIdx < 0 {
		return nil, false
	}

	winnerIdx := findColumn(header, "winner")
	marginIdx := findColumn(header, "margin")
	groundIdx := findColumn(header, "ground")
	dateIdx := findColumn(header, "matchdate", "match date", "date")

	out := make([]internal.MatchRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := internal.MatchRecord{
			MatchID: cellAt(row, idIdx),
			Team1:   cellAt(row, team1Idx),
			Team2:   cellAt(row, team2Idx),
		}
		if record.MatchID == "" && record.Team1 == "" && record.Team2 == "" {
			continue
		}
		record.Winner = cellPtrAt(row, winnerIdx)
		record.Margin = cellPtrAt(row, marginIdx)
		record.Ground = cellPtrAt(row, groundIdx)
		record.MatchDate = cellPtrAt(row, dateIdx)

		rawJSON, _ := json.Marshal(map[string]any{
			"team1": record.Team1, "team2": record.Team2, "scorecard": record.MatchID,
		})
		record.RawJSON = string(rawJSON)
		out = append(out, record)
	}
	return out, true
}

func normalizeHeaderRow(row []string) []string {
	out := make([]string, 0, len(row))
	for _, cell := range row {
		out = append(out, strings.ToLower(util.NormalizeSpaces(cell)))
	}
	return out
}

func findColumn(header []string, probes ...string) int {
	for i, h := range header {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return util.NormalizeSpaces(row[idx])
}

func cellPtrAt(row []string, idx int) *string {
	v := cellAt(row, idx)
	if v == "" {
		return nil
	}
	return util.StringPtr(v)
}
