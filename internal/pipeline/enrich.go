package pipeline

import (
	"scorelink/internal"
	"scorelink/internal/matches"
	"scorelink/internal/util"
)

// Enricher joins normalized batting entries against the authoritative
// match index. The index is read-only here; build it before any call.
type Enricher struct {
	index *matches.Index
}

func NewEnricher(index *matches.Index) *Enricher {
	return &Enricher{index: index}
}

// Enrich is 1:1 and order-preserving: one enriched entry per input, in
// input order. A label that does not resolve leaves MatchID nil and
// marks the entry NOT_FOUND; nothing is dropped.
func (e *Enricher) Enrich(entries []NormalizedEntry) []internal.EnrichedEntry {
	out := make([]internal.EnrichedEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, e.EnrichOne(entry))
	}
	return out
}

func (e *Enricher) EnrichOne(entry NormalizedEntry) internal.EnrichedEntry {
	enriched := internal.EnrichedEntry{
		BattingEntry:    entry.BattingEntry,
		Batsman:         entry.Batsman,
		DismissalStatus: entry.DismissalStatus,
		ResolveStatus:   internal.ResolveNotFound,
	}

	if id, ok := e.index.Resolve(entry.MatchLabel); ok {
		enriched.ResolveStatus = internal.ResolveOK
		enriched.MatchID = util.StringPtr(id)
	}

	return enriched
}
