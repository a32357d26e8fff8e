package pipeline

import (
	"testing"

	"scorelink/internal"
	"scorelink/internal/matches"
)

func buildTestIndex(t *testing.T) *matches.Index {
	t.Helper()
	idx, err := matches.BuildIndex([]internal.MatchRecord{
		{MatchID: "T20I # 1823", Team1: "Namibia", Team2: "Sri Lanka"},
		{MatchID: "T20I # 1825", Team1: "Scotland", Team2: "West Indies"},
	}, matches.BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestEnrichResolvesReversedLabel(t *testing.T) {
	entries := []internal.BattingEntry{
		{LineNo: 1, MatchLabel: "Sri Lanka Vs Namibia", Batsman: strp("Kusal Mendis†"), Dismissal: ""},
	}
	normalized := NormalizeEntries(entries, NormalizeOptions{})
	enriched := NewEnricher(buildTestIndex(t)).Enrich(normalized)

	if len(enriched) != 1 {
		t.Fatalf("len=%d", len(enriched))
	}
	got := enriched[0]
	if got.ResolveStatus != internal.ResolveOK || got.MatchID == nil || *got.MatchID != "T20I # 1823" {
		t.Fatalf("enriched=%+v", got)
	}
	if got.DismissalStatus != internal.DismissedNotOut {
		t.Fatalf("dismissalStatus=%q", got.DismissalStatus)
	}
	if got.Batsman != "Kusal Mendis" {
		t.Fatalf("batsman=%q", got.Batsman)
	}
}

func TestEnrichMissKeepsEntry(t *testing.T) {
	entries := []internal.BattingEntry{
		{LineNo: 1, MatchLabel: "England Vs Ireland", Batsman: strp("Jos Buttler"), Dismissal: "b Little", Runs: fp(18)},
	}
	normalized := NormalizeEntries(entries, NormalizeOptions{})
	enriched := NewEnricher(buildTestIndex(t)).Enrich(normalized)

	got := enriched[0]
	if got.ResolveStatus != internal.ResolveNotFound || got.MatchID != nil {
		t.Fatalf("enriched=%+v", got)
	}
	// the miss degrades only the match id field
	if got.Batsman != "Jos Buttler" || got.DismissalStatus != internal.DismissedOut {
		t.Fatalf("enriched=%+v", got)
	}
	if got.Runs == nil || *got.Runs != 18 {
		t.Fatalf("runs=%v", got.Runs)
	}
	if got.MatchLabel != "England Vs Ireland" {
		t.Fatalf("label=%q", got.MatchLabel)
	}
}

func TestEnrichPreservesCountAndOrder(t *testing.T) {
	entries := []internal.BattingEntry{
		{LineNo: 1, MatchLabel: "Namibia Vs Sri Lanka", Batsman: strp("A")},
		{LineNo: 2, MatchLabel: "England Vs Ireland", Batsman: strp("B")},
		{LineNo: 3, MatchLabel: "West Indies Vs Scotland", Batsman: strp("C")},
	}
	normalized := NormalizeEntries(entries, NormalizeOptions{})
	enriched := NewEnricher(buildTestIndex(t)).Enrich(normalized)

	if len(enriched) != len(entries) {
		t.Fatalf("len=%d want %d", len(enriched), len(entries))
	}
	for i := range entries {
		if enriched[i].LineNo != entries[i].LineNo || enriched[i].MatchLabel != entries[i].MatchLabel {
			t.Fatalf("entry %d reordered: %+v", i, enriched[i])
		}
	}
	if enriched[1].ResolveStatus != internal.ResolveNotFound {
		t.Fatalf("entry1=%+v", enriched[1])
	}
	if enriched[2].MatchID == nil || *enriched[2].MatchID != "T20I # 1825" {
		t.Fatalf("entry2=%+v", enriched[2])
	}
}

func fp(v float64) *float64 { return &v }
