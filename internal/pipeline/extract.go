package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"scorelink/internal"
	"scorelink/internal/matches"
	"scorelink/internal/util"
)

var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^--+$`),
	regexp.MustCompile(`(?i)^thanks`),
	regexp.MustCompile(`(?i)^(kind |best )?regards`),
	regexp.MustCompile(`(?i)^tel[:\s]`),
	regexp.MustCompile(`(?i)^e-?mail[:\s]`),
	regexp.MustCompile(`(?i)^http`),
	regexp.MustCompile(`(?i)^(total|extras|did not bat|fall of wickets)`),
}

var reDismissalStart = regexp.MustCompile(`(?i)\b(not out|run out|retired(?: hurt| out)?|hit wicket|lbw\b|st |c & b |c |b )`)

func ExtractEntriesFromFeedRaw(raw []byte) ([]internal.BattingEntry, string, string, []string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, "", "", nil, err
	}

	entries := make([]internal.BattingEntry, 0)
	if env.Text != "" {
		entries = append(entries, parseScorecardText(env.Text)...)
	}
	if env.HTML != "" {
		entries = append(entries, parseScorecardHTMLTable(env.HTML)...)
	}

	attachmentNames := make([]string, 0, len(env.Attachments))
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		attachmentNames = append(attachmentNames, filename)
		lower := strings.ToLower(filename)

		var extra []internal.BattingEntry
		var parseErr error
		switch {
		case strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls"):
			extra, parseErr = parseScorecardXLSX(att.Content)
		case strings.HasSuffix(lower, ".csv"):
			extra, parseErr = parseScorecardCSV(att.Content)
		case strings.HasSuffix(lower, ".pdf"):
			extra, parseErr = parseScorecardPDF(att.Content)
		default:
			continue
		}
		if parseErr != nil {
			continue
		}
		for i := range extra {
			if extra[i].Meta == nil {
				extra[i].Meta = map[string]any{}
			}
			extra[i].Meta["attachment"] = filename
		}
		entries = append(entries, extra...)
	}

	entries = dedupeEntries(entries)
	for i := range entries {
		entries[i].LineNo = i + 1
	}

	return entries, env.GetHeader("Subject"), env.Text, attachmentNames, nil
}

// parseScorecardText handles plain-text scorecards: a line naming the
// match ("Namibia Vs Sri Lanka") followed by one batting line per
// batsman ("Kusal Mendis† c Smith b Jones 54 38 6 1 142.10").
func parseScorecardText(text string) []internal.BattingEntry {
	currentLabel := ""
	out := []internal.BattingEntry{}
	lineNo := 0

	for _, line := range splitLines(text) {
		compact := util.NormalizeSpaces(line)
		if compact == "" || isLikelyNoise(compact) {
			continue
		}

		parsed := util.ParseBattingFigures(compact)
		if parsed.Runs == nil && strings.Contains(compact, matches.LabelSeparator) {
			currentLabel = compact
			continue
		}
		if currentLabel == "" || parsed.Runs == nil || parsed.Balls == nil {
			continue
		}

		batsman, dismissal := splitBatsmanDismissal(parsed.Prefix)
		if batsman == "" {
			continue
		}

		lineNo++
		out = append(out, internal.BattingEntry{
			LineNo:     lineNo,
			Source:     internal.SourceEmailText,
			RawLine:    compact,
			MatchLabel: currentLabel,
			Batsman:    util.StringPtr(batsman),
			Dismissal:  dismissal,
			Runs:       parsed.Runs,
			Balls:      parsed.Balls,
			Fours:      parsed.Fours,
			Sixes:      parsed.Sixes,
			StrikeRate: parsed.StrikeRate,
			Meta:       map[string]any{},
		})
	}
	return out
}

func parseScorecardHTMLTable(html string) []internal.BattingEntry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	out := []internal.BattingEntry{}
	globalLine := 0
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.ToLower(strings.TrimSpace(cell.Text())))
		})

		cols := inferScorecardColumns(headers)
		if cols.match < 0 || cols.batsman < 0 {
			return
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			if len(cells) == 0 {
				return
			}

			entry := cellsToEntry(cells, cols, internal.SourceEmailHTMLTable)
			if entry == nil {
				return
			}
			globalLine++
			entry.LineNo = globalLine
			entry.Meta = map[string]any{"row": cells}
			out = append(out, *entry)
		})
	})

	return out
}

func parseScorecardXLSX(content []byte) ([]internal.BattingEntry, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lineNo := 0
	out := []internal.BattingEntry{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		cols := scorecardColumns{match: -1}
		for i, row := range rows {
			cells := normalizeCells(row)
			if len(cells) == 0 {
				continue
			}
			if i < 3 && cols.match < 0 {
				inferred := inferScorecardColumns(lowerCells(cells))
				if inferred.match >= 0 && inferred.batsman >= 0 {
					cols = inferred
					continue
				}
			}
			if cols.match < 0 {
				cols = defaultScorecardColumns()
			}

			entry := cellsToEntry(cells, cols, internal.SourceXLSX)
			if entry == nil {
				continue
			}
			lineNo++
			entry.LineNo = lineNo
			entry.Meta = map[string]any{"sheet": sheet, "rowNumber": i + 1}
			out = append(out, *entry)
		}
	}

	return out, nil
}

func parseScorecardCSV(content []byte) ([]internal.BattingEntry, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	lineNo := 0
	out := []internal.BattingEntry{}
	cols := scorecardColumns{match: -1}
	for i, row := range rows {
		cells := normalizeCells(row)
		if len(cells) == 0 {
			continue
		}
		if i < 3 && cols.match < 0 {
			inferred := inferScorecardColumns(lowerCells(cells))
			if inferred.match >= 0 && inferred.batsman >= 0 {
				cols = inferred
				continue
			}
		}
		if cols.match < 0 {
			cols = defaultScorecardColumns()
		}

		entry := cellsToEntry(cells, cols, internal.SourceCSV)
		if entry == nil {
			continue
		}
		lineNo++
		entry.LineNo = lineNo
		entry.Meta = map[string]any{"rowNumber": i + 1}
		out = append(out, *entry)
	}

	return out, nil
}

func parseScorecardPDF(content []byte) ([]internal.BattingEntry, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	out := []internal.BattingEntry{}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, entry := range parseScorecardText(text) {
			entry.Source = internal.SourcePDF
			out = append(out, entry)
		}
	}

	for i := range out {
		out[i].LineNo = i + 1
	}
	return out, nil
}

type scorecardColumns struct {
	match     int
	innings   int
	position  int
	batsman   int
	dismissal int
	runs      int
	balls     int
	fours     int
	sixes     int
	sr        int
}

func inferScorecardColumns(headers []string) scorecardColumns {
	return scorecardColumns{
		match:     findHeaderIndex(headers, []string{"match"}),
		innings:   findHeaderIndex(headers, []string{"innings", "team"}),
		position:  findHeaderIndex(headers, []string{"pos"}),
		batsman:   findHeaderIndex(headers, []string{"batsman", "player", "name"}),
		dismissal: findHeaderIndex(headers, []string{"dismissal", "wicket", "how out"}),
		runs:      findHeaderIndex(headers, []string{"runs"}),
		balls:     findHeaderIndex(headers, []string{"balls"}),
		fours:     findHeaderIndex(headers, []string{"4s", "fours"}),
		sixes:     findHeaderIndex(headers, []string{"6s", "sixes"}),
		sr:        findHeaderIndex(headers, []string{"sr", "strike"}),
	}
}

// defaultScorecardColumns matches the column order of the vendor's
// batting summary export when no header row is present.
func defaultScorecardColumns() scorecardColumns {
	return scorecardColumns{
		match: 0, innings: 1, position: 2, batsman: 3, dismissal: 4,
		runs: 5, balls: 6, fours: 7, sixes: 8, sr: 9,
	}
}

func cellsToEntry(cells []string, cols scorecardColumns, source internal.EntrySource) *internal.BattingEntry {
	label := pickCell(cells, cols.match, -1)
	batsman := pickCell(cells, cols.batsman, -1)
	if label == "" || batsman == "" {
		return nil
	}

	entry := internal.BattingEntry{
		Source:     source,
		RawLine:    strings.Join(cells, " | "),
		MatchLabel: label,
		Batsman:    util.StringPtr(batsman),
		Dismissal:  pickCell(cells, cols.dismissal, -1),
		Runs:       util.ParseFloatCell(pickCell(cells, cols.runs, -1)),
		Balls:      util.ParseFloatCell(pickCell(cells, cols.balls, -1)),
		Fours:      util.ParseFloatCell(pickCell(cells, cols.fours, -1)),
		Sixes:      util.ParseFloatCell(pickCell(cells, cols.sixes, -1)),
		StrikeRate: util.ParseFloatCell(pickCell(cells, cols.sr, -1)),
	}
	if v := pickCell(cells, cols.innings, -1); v != "" {
		entry.TeamInnings = util.StringPtr(v)
	}
	if v := util.ParseIntCell(pickCell(cells, cols.position, -1)); v != nil {
		entry.Position = v
	}
	return &entry
}

// splitBatsmanDismissal separates "Kusal Mendis† c Smith b Jones" into
// the batsman name and the dismissal text. A "not out" suffix becomes an
// empty dismissal, matching the dataset convention.
func splitBatsmanDismissal(prefix string) (string, string) {
	loc := reDismissalStart.FindStringIndex(prefix)
	if loc == nil || loc[0] == 0 {
		return strings.TrimSpace(prefix), ""
	}

	batsman := strings.TrimSpace(prefix[:loc[0]])
	dismissal := strings.TrimSpace(prefix[loc[0]:])
	if strings.EqualFold(dismissal, "not out") {
		dismissal = ""
	}
	return batsman, dismissal
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isLikelyNoise(line string) bool {
	for _, re := range ignorePatterns {
		if re.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func dedupeEntries(entries []internal.BattingEntry) []internal.BattingEntry {
	seen := map[string]struct{}{}
	out := make([]internal.BattingEntry, 0, len(entries))
	for _, entry := range entries {
		runsKey := "null"
		if entry.Runs != nil {
			runsKey = fmt.Sprintf("%g", *entry.Runs)
		}
		key := string(entry.Source) + "|" + entry.MatchLabel + "|" + entry.RawLine + "|" + runsKey
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	return out
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int, fallback int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	if fallback >= 0 && fallback < len(cells) {
		return strings.TrimSpace(cells[fallback])
	}
	return ""
}

func lowerCells(cells []string) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, strings.ToLower(c))
	}
	return out
}

func normalizeCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, util.NormalizeSpaces(c))
	}
	return out
}
