package matches

import (
	"errors"
	"testing"

	"scorelink/internal"
)

func TestBuildIndexBothOrderings(t *testing.T) {
	records := []internal.MatchRecord{
		{MatchID: "T20I # 1823", Team1: "Namibia", Team2: "Sri Lanka"},
		{MatchID: "T20I # 1825", Team1: "Scotland", Team2: "West Indies"},
	}
	idx, err := BuildIndex(records, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 4 {
		t.Fatalf("len=%d", idx.Len())
	}

	for _, label := range []string{"Namibia Vs Sri Lanka", "Sri Lanka Vs Namibia"} {
		id, ok := idx.Resolve(label)
		if !ok || id != "T20I # 1823" {
			t.Fatalf("resolve %q: id=%q ok=%v", label, id, ok)
		}
	}
}

func TestBuildIndexSameTeamNames(t *testing.T) {
	records := []internal.MatchRecord{
		{MatchID: "X # 1", Team1: "XI", Team2: "XI"},
	}
	idx, err := BuildIndex(records, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 1 {
		t.Fatalf("len=%d", idx.Len())
	}
	if id, ok := idx.Resolve("XI Vs XI"); !ok || id != "X # 1" {
		t.Fatalf("id=%q ok=%v", id, ok)
	}
}

func TestBuildIndexRematchLastWins(t *testing.T) {
	records := []internal.MatchRecord{
		{MatchID: "T20I # 1800", Team1: "India", Team2: "Pakistan"},
		{MatchID: "T20I # 1842", Team1: "Pakistan", Team2: "India"},
	}
	idx, err := BuildIndex(records, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for _, label := range []string{"India Vs Pakistan", "Pakistan Vs India"} {
		if id, _ := idx.Resolve(label); id != "T20I # 1842" {
			t.Fatalf("resolve %q: id=%q", label, id)
		}
	}

	dupes := DuplicatePairs(records)
	if len(dupes) != 1 {
		t.Fatalf("dupes=%v", dupes)
	}
}

func TestBuildIndexMalformed(t *testing.T) {
	records := []internal.MatchRecord{
		{MatchID: "T20I # 1823", Team1: "Namibia", Team2: "Sri Lanka"},
		{MatchID: "", Team1: "England", Team2: "Ireland"},
	}

	_, err := BuildIndex(records, BuildOptions{})
	var malformed *MalformedMatchError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedMatchError, got %v", err)
	}
	if malformed.Row != 2 || malformed.Field != "matchId" {
		t.Fatalf("row=%d field=%s", malformed.Row, malformed.Field)
	}

	idx, err := BuildIndex(records, BuildOptions{SkipMalformed: true})
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 2 {
		t.Fatalf("len=%d", idx.Len())
	}
	if len(idx.Skipped) != 1 || idx.Skipped[0].Row != 2 {
		t.Fatalf("skipped=%v", idx.Skipped)
	}
}

func TestResolveMissIsNotAnError(t *testing.T) {
	idx, err := BuildIndex([]internal.MatchRecord{
		{MatchID: "T20I # 1823", Team1: "Namibia", Team2: "Sri Lanka"},
	}, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if id, ok := idx.Resolve("England Vs Ireland"); ok || id != "" {
		t.Fatalf("id=%q ok=%v", id, ok)
	}
	// exact matching: casing and spacing differences are misses
	if _, ok := idx.Resolve("namibia Vs sri lanka"); ok {
		t.Fatal("case-insensitive hit")
	}
	if _, ok := idx.Resolve("Namibia vs Sri Lanka"); ok {
		t.Fatal("separator-insensitive hit")
	}
}
