package pipeline

import "testing"

func TestParseScorecardText(t *testing.T) {
	text := "\nNamibia Vs Sri Lanka\nKusal Mendis† c Smith b Jones 54 38 6 1 142.10\nPathum Nissanka not out 41 30 5 0 136.66\n\nThanks,\nStatsFeed\n"
	entries := parseScorecardText(text)
	if len(entries) != 2 {
		t.Fatalf("len=%d", len(entries))
	}

	first := entries[0]
	if first.MatchLabel != "Namibia Vs Sri Lanka" {
		t.Fatalf("label=%q", first.MatchLabel)
	}
	if first.Batsman == nil || *first.Batsman != "Kusal Mendis†" {
		t.Fatalf("batsman=%v", first.Batsman)
	}
	if first.Dismissal != "c Smith b Jones" {
		t.Fatalf("dismissal=%q", first.Dismissal)
	}
	if first.Runs == nil || *first.Runs != 54 || first.Balls == nil || *first.Balls != 38 {
		t.Fatalf("figures=%+v", first)
	}
	if first.StrikeRate == nil || *first.StrikeRate != 142.10 {
		t.Fatalf("sr=%v", first.StrikeRate)
	}

	second := entries[1]
	if second.Dismissal != "" {
		t.Fatalf("not-out dismissal=%q", second.Dismissal)
	}
	if second.Batsman == nil || *second.Batsman != "Pathum Nissanka" {
		t.Fatalf("batsman=%v", second.Batsman)
	}
}

func TestParseScorecardTextMultipleMatches(t *testing.T) {
	text := "Namibia Vs Sri Lanka\nKusal Mendis† c Smith b Jones 54 38\nScotland Vs West Indies\nGeorge Munsey not out 66 53\n"
	entries := parseScorecardText(text)
	if len(entries) != 2 {
		t.Fatalf("len=%d", len(entries))
	}
	if entries[0].MatchLabel != "Namibia Vs Sri Lanka" || entries[1].MatchLabel != "Scotland Vs West Indies" {
		t.Fatalf("labels=%q %q", entries[0].MatchLabel, entries[1].MatchLabel)
	}
}
