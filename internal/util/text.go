package util

import (
	"regexp"
	"strconv"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

func NormalizeSpaces(input string) string {
	s := strings.ReplaceAll(input, "\u00A0", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// ParseFloatCell parses a spreadsheet cell into a number. Comma decimals
// are accepted; empty or non-numeric cells yield nil.
func ParseFloatCell(cell string) *float64 {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return nil
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return FloatPtr(parsed)
}

func ParseIntCell(cell string) *int {
	f := ParseFloatCell(cell)
	if f == nil {
		return nil
	}
	return IntPtr(int(*f))
}
