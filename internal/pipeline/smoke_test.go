package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"scorelink/internal"
	"scorelink/internal/config"
	"scorelink/internal/storage"
)

func TestSmokeFeedToXLSX(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	authoritative := []internal.MatchRecord{
		{MatchID: "T20I # 1823", Team1: "Namibia", Team2: "Sri Lanka", Winner: strp("Namibia"), RawJSON: `{}`},
		{MatchID: "T20I # 1825", Team1: "Scotland", Team2: "West Indies", RawJSON: `{}`},
	}
	if err := db.UpsertMatches(authoritative); err != nil {
		t.Fatal(err)
	}

	rawSrc := filepath.Join("testdata", "sample_scorecard.eml")
	rawBlob, err := os.ReadFile(rawSrc)
	if err != nil {
		t.Fatal(err)
	}
	rawPath := filepath.Join(tmp, "fixture.eml")
	if err := os.WriteFile(rawPath, rawBlob, 0o644); err != nil {
		t.Fatal(err)
	}

	feedFile, err := db.UpsertFeedFile("gmail", "<fixture-1@example.com>", "T20 scorecard export", "exports@statsfeed.example", "2022-10-16T18:00:00Z", "hash", rawPath, "fetched")
	if err != nil {
		t.Fatal(err)
	}

	cfg, _ := config.Load()
	proc := NewProcessingService(db, cfg)
	res, err := proc.ProcessFeedFile(feedFile)
	if err != nil {
		t.Fatal(err)
	}
	if res.Processed != 3 {
		t.Fatalf("processed=%d", res.Processed)
	}

	rows, err := db.GetExportRows(feedFile.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d", len(rows))
	}

	// resolved rows sort first; the England Vs Ireland entry has no
	// authoritative match and stays unresolved but present
	last := rows[len(rows)-1]
	if last.ResolveStatus != string(internal.ResolveNotFound) || last.MatchID != nil {
		t.Fatalf("last=%+v", last)
	}
	if last.MatchLabel != "England Vs Ireland" {
		t.Fatalf("label=%q", last.MatchLabel)
	}

	first := rows[0]
	if first.ResolveStatus != string(internal.ResolveOK) || first.MatchID == nil || *first.MatchID != "T20I # 1823" {
		t.Fatalf("first=%+v", first)
	}
	if first.Winner == nil || *first.Winner != "Namibia" {
		t.Fatalf("winner=%v", first.Winner)
	}

	out := filepath.Join(tmp, "result.xlsx")
	if err := ExportRowsToXLSX(rows, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func strp(v string) *string { return &v }
