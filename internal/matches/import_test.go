package matches

import (
	"os"
	"path/filepath"
	"testing"
)

func TestImportMatchesCSV(t *testing.T) {
	csv := "Team1,Team2,Winner,Margin,Ground,Match Date,Scorecard\n" +
		"Namibia,Sri Lanka,Namibia,55 runs,Geelong,Oct 16 2022,T20I # 1823\n" +
		"Scotland,West Indies,Scotland,42 runs,Hobart,Oct 17 2022,T20I # 1825\n"

	path := filepath.Join(t.TempDir(), "matches.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ImportFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len=%d", len(records))
	}

	first := records[0]
	if first.MatchID != "T20I # 1823" || first.Team1 != "Namibia" || first.Team2 != "Sri Lanka" {
		t.Fatalf("first=%+v", first)
	}
	if first.Ground == nil || *first.Ground != "Geelong" {
		t.Fatalf("ground=%v", first.Ground)
	}
	if first.MatchDate == nil || *first.MatchDate != "Oct 16 2022" {
		t.Fatalf("matchDate=%v", first.MatchDate)
	}
}

func TestImportUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportFile(path); err == nil {
		t.Fatal("expected error")
	}
}
