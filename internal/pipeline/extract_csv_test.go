package pipeline

import "testing"

func TestParseScorecardCSV(t *testing.T) {
	csv := "match,teamInnings,battingPos,batsmanName,dismissal,runs,balls,4s,6s,SR\n" +
		"Namibia Vs Sri Lanka,Sri Lanka,1,Kusal Mendis†,c Smith b Jones,54,38,6,1,142.10\n" +
		"Namibia Vs Sri Lanka,Sri Lanka,2,Pathum Nissanka,,41,30,5,0,136.66\n"

	entries, err := parseScorecardCSV([]byte(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len=%d", len(entries))
	}

	first := entries[0]
	if first.MatchLabel != "Namibia Vs Sri Lanka" || first.Dismissal != "c Smith b Jones" {
		t.Fatalf("first=%+v", first)
	}
	if first.Fours == nil || *first.Fours != 6 || first.Sixes == nil || *first.Sixes != 1 {
		t.Fatalf("boundaries=%+v", first)
	}
	if entries[1].Dismissal != "" {
		t.Fatalf("dismissal=%q", entries[1].Dismissal)
	}
	if entries[1].StrikeRate == nil || *entries[1].StrikeRate != 136.66 {
		t.Fatalf("sr=%v", entries[1].StrikeRate)
	}
}

func TestParseScorecardCSVWithoutHeader(t *testing.T) {
	csv := "Namibia Vs Sri Lanka,Sri Lanka,1,Kusal Mendis†,c Smith b Jones,54,38,6,1,142.10\n"
	entries, err := parseScorecardCSV([]byte(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("len=%d", len(entries))
	}
	if entries[0].Runs == nil || *entries[0].Runs != 54 {
		t.Fatalf("runs=%v", entries[0].Runs)
	}
}
