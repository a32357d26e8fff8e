package pipeline

import (
	"testing"

	"scorelink/internal"
)

func TestClassifyDismissal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  internal.DismissalStatus
	}{
		{name: "empty", input: "", want: internal.DismissedNotOut},
		{name: "whitespace only", input: "   ", want: internal.DismissedNotOut},
		{name: "tab and newline", input: "\t\n", want: internal.DismissedNotOut},
		{name: "caught", input: "c Smith b Jones", want: internal.DismissedOut},
		{name: "bowled", input: "b Rashid", want: internal.DismissedOut},
		{name: "run out", input: "run out (Buttler)", want: internal.DismissedOut},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyDismissal(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestCleanBatsmanName(t *testing.T) {
	if got := CleanBatsmanName("Kusal Mendis†"); got != "Kusal Mendis" {
		t.Fatalf("got %q", got)
	}
	if got := CleanBatsmanName("Babar Azam"); got != "Babar Azam" {
		t.Fatalf("got %q", got)
	}
	// idempotent
	once := CleanBatsmanName("Quinton de Kock†")
	if twice := CleanBatsmanName(once); twice != once {
		t.Fatalf("once=%q twice=%q", once, twice)
	}
	// captain marker untouched by default
	if got := CleanBatsmanName("Jos Buttler (c)"); got != "Jos Buttler (c)" {
		t.Fatalf("got %q", got)
	}
}

func TestStripCaptainMarker(t *testing.T) {
	if got := StripCaptainMarker("Jos Buttler (c)"); got != "Jos Buttler" {
		t.Fatalf("got %q", got)
	}
	if got := StripCaptainMarker("Jos Buttler"); got != "Jos Buttler" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeEntries(t *testing.T) {
	entries := []internal.BattingEntry{
		{LineNo: 1, MatchLabel: "Namibia Vs Sri Lanka", Batsman: strp("Kusal Mendis†"), Dismissal: "c Smith b Jones"},
		{LineNo: 2, MatchLabel: "Namibia Vs Sri Lanka", Batsman: strp("Pathum Nissanka"), Dismissal: ""},
		{LineNo: 3, MatchLabel: "Namibia Vs Sri Lanka"},
	}

	out := NormalizeEntries(entries, NormalizeOptions{})
	if len(out) != 3 {
		t.Fatalf("len=%d", len(out))
	}
	if out[0].Batsman != "Kusal Mendis" || out[0].DismissalStatus != internal.DismissedOut {
		t.Fatalf("entry0=%+v", out[0])
	}
	if out[1].Batsman != "Pathum Nissanka" || out[1].DismissalStatus != internal.DismissedNotOut {
		t.Fatalf("entry1=%+v", out[1])
	}
	// missing batsman is a no-op, not a failure
	if out[2].Batsman != "" || out[2].DismissalStatus != internal.DismissedNotOut {
		t.Fatalf("entry2=%+v", out[2])
	}
}
