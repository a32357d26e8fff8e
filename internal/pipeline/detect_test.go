package pipeline

import "testing"

func TestDetectScorecardExport(t *testing.T) {
	positive := DetectScorecardExport(
		"T20 scorecard export - Namibia Vs Sri Lanka",
		"Namibia Vs Sri Lanka\nKusal Mendis c Smith b Jones 54 38\n",
		"",
		[]string{"batting_summary.csv"},
	)
	if !positive.IsScorecard {
		t.Fatalf("score=%v", positive.Score)
	}

	negative := DetectScorecardExport(
		"Invoice 2022-10",
		"Please find attached the invoice for October.",
		"",
		nil,
	)
	if negative.IsScorecard {
		t.Fatalf("score=%v", negative.Score)
	}
}
