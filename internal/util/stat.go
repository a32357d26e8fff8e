package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	trailingFigures = regexp.MustCompile(`((?:\s+\d+(?:[.,]\d+)?){2,5})\s*$`)
	numberToken     = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// ParsedFigures holds the numeric tail of a free-text batting line:
// runs, balls and optionally fours, sixes and strike rate.
type ParsedFigures struct {
	Runs       *float64
	Balls      *float64
	Fours      *float64
	Sixes      *float64
	StrikeRate *float64
	Prefix     string
}

// ParseBattingFigures splits a scorecard line like
// "Kusal Mendis c Smith b Jones 54 38 6 1 142.10" into the text prefix
// and the trailing numeric columns. A trailing decimal token is the
// strike rate; the remaining numbers fill runs, balls, fours, sixes in
// order. Lines with fewer than two trailing numbers carry no figures.
func ParseBattingFigures(line string) ParsedFigures {
	compact := NormalizeSpaces(line)
	m := trailingFigures.FindStringIndex(compact)
	if m == nil {
		return ParsedFigures{Prefix: compact}
	}

	out := ParsedFigures{Prefix: strings.TrimSpace(compact[:m[0]])}
	tokens := numberToken.FindAllString(compact[m[0]:], -1)

	if len(tokens) > 0 {
		if last := tokens[len(tokens)-1]; strings.ContainsAny(last, ".,") {
			out.StrikeRate = parseFigure(last)
			tokens = tokens[:len(tokens)-1]
		}
	}

	slots := []**float64{&out.Runs, &out.Balls, &out.Fours, &out.Sixes, &out.StrikeRate}
	for i, tok := range tokens {
		if i >= len(slots) {
			break
		}
		if *slots[i] == nil {
			*slots[i] = parseFigure(tok)
		}
	}

	return out
}

func parseFigure(token string) *float64 {
	s := strings.ReplaceAll(token, ",", ".")
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return FloatPtr(parsed)
}
