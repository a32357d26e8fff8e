package matches

import (
	"fmt"
	"sort"

	"scorelink/internal"
)

// LabelSeparator is the literal token between the two team names in a
// scorecard label. Both datasets use it verbatim, so index keys and
// probe labels match byte for byte.
const LabelSeparator = " Vs "

// Index maps a scorecard label to the canonical match id. Every
// well-formed match contributes both orderings of its team pair
// ("A Vs B" and "B Vs A"); a rematch between the same two teams
// overwrites the earlier entry (last-write-wins). Built once,
// read-only afterwards.
type Index struct {
	IDByLabel map[string]string
	Skipped   []MalformedMatchError
}

type BuildOptions struct {
	// SkipMalformed excludes rows with a missing team name or match id
	// from the index instead of failing the build. Skipped rows are
	// recorded on Index.Skipped.
	SkipMalformed bool
}

type MalformedMatchError struct {
	Row   int
	Field string
}

func (e *MalformedMatchError) Error() string {
	return fmt.Sprintf("malformed match row %d: empty %s", e.Row, e.Field)
}

func Label(team1, team2 string) string {
	return team1 + LabelSeparator + team2
}

func BuildIndex(records []internal.MatchRecord, opts BuildOptions) (*Index, error) {
	idx := &Index{IDByLabel: make(map[string]string, 2*len(records))}

	for i, m := range records {
		if field := malformedField(m); field != "" {
			err := MalformedMatchError{Row: i + 1, Field: field}
			if !opts.SkipMalformed {
				return nil, &err
			}
			idx.Skipped = append(idx.Skipped, err)
			continue
		}

		idx.IDByLabel[Label(m.Team1, m.Team2)] = m.MatchID
		idx.IDByLabel[Label(m.Team2, m.Team1)] = m.MatchID
	}

	return idx, nil
}

// Resolve looks up a label exactly as built: case- and
// whitespace-sensitive. A miss is not an error; the dependent dataset
// may reference matches absent from the authoritative list.
func (idx *Index) Resolve(label string) (string, bool) {
	id, ok := idx.IDByLabel[label]
	return id, ok
}

func (idx *Index) Len() int {
	return len(idx.IDByLabel)
}

// DuplicatePairs reports labels whose unordered team pair occurs more
// than once in the authoritative list. Such rematches are ambiguous in
// the index: the later row wins both label keys.
func DuplicatePairs(records []internal.MatchRecord) []string {
	count := map[string]int{}
	for _, m := range records {
		if m.Team1 == "" || m.Team2 == "" {
			continue
		}
		key := Label(m.Team1, m.Team2)
		if m.Team2 < m.Team1 {
			key = Label(m.Team2, m.Team1)
		}
		count[key]++
	}

	out := []string{}
	for label, n := range count {
		if n > 1 {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

func malformedField(m internal.MatchRecord) string {
	switch {
	case m.Team1 == "":
		return "team1"
	case m.Team2 == "":
		return "team2"
	case m.MatchID == "":
		return "matchId"
	default:
		return ""
	}
}
