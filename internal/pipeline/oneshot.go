package pipeline

import (
	"fmt"
	"os"

	"scorelink/internal"
)

func ExtractEntriesFromInput(inputType string, input string) ([]internal.BattingEntry, error) {
	switch inputType {
	case "email_text":
		return parseScorecardText(input), nil
	case "email_table":
		return parseScorecardHTMLTable(input), nil
	case "xlsx":
		blob, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		return parseScorecardXLSX(blob)
	case "csv":
		blob, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		return parseScorecardCSV(blob)
	case "pdf":
		blob, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		return parseScorecardPDF(blob)
	default:
		return nil, fmt.Errorf("unsupported input type: %s", inputType)
	}
}
