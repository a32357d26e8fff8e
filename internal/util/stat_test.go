package util

import "testing"

func TestParseBattingFigures(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		runs   float64
		balls  float64
		prefix string
	}{
		{name: "full line", input: "Kusal Mendis c Smith b Jones 54 38 6 1 142.10", runs: 54, balls: 38, prefix: "Kusal Mendis c Smith b Jones"},
		{name: "runs and balls only", input: "George Munsey not out 66 53", runs: 66, balls: 53, prefix: "George Munsey not out"},
		{name: "extra spacing", input: "Babar Azam  b Rashid   12  9", runs: 12, balls: 9, prefix: "Babar Azam b Rashid"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := ParseBattingFigures(tc.input)
			if parsed.Runs == nil || *parsed.Runs != tc.runs {
				t.Fatalf("runs=%v", parsed.Runs)
			}
			if parsed.Balls == nil || *parsed.Balls != tc.balls {
				t.Fatalf("balls=%v", parsed.Balls)
			}
			if parsed.Prefix != tc.prefix {
				t.Fatalf("prefix=%q", parsed.Prefix)
			}
		})
	}
}

func TestParseBattingFiguresStrikeRate(t *testing.T) {
	parsed := ParseBattingFigures("Kusal Mendis c Smith b Jones 54 38 6 1 142.10")
	if parsed.Fours == nil || *parsed.Fours != 6 || parsed.Sixes == nil || *parsed.Sixes != 1 {
		t.Fatalf("boundaries=%+v", parsed)
	}
	if parsed.StrikeRate == nil || *parsed.StrikeRate != 142.10 {
		t.Fatalf("sr=%v", parsed.StrikeRate)
	}
}

func TestParseBattingFiguresNoFigures(t *testing.T) {
	parsed := ParseBattingFigures("Namibia Vs Sri Lanka")
	if parsed.Runs != nil || parsed.Balls != nil {
		t.Fatalf("parsed=%+v", parsed)
	}
	if parsed.Prefix != "Namibia Vs Sri Lanka" {
		t.Fatalf("prefix=%q", parsed.Prefix)
	}
}

func TestParseFloatCell(t *testing.T) {
	if v := ParseFloatCell("136,66"); v == nil || *v != 136.66 {
		t.Fatalf("v=%v", v)
	}
	if v := ParseFloatCell(""); v != nil {
		t.Fatalf("v=%v", v)
	}
	if v := ParseFloatCell("n/a"); v != nil {
		t.Fatalf("v=%v", v)
	}
}
