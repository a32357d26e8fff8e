package pipeline

import (
	"regexp"
	"strings"

	"scorelink/internal"
)

// WicketKeeperMarker decorates the keeper's name in scorecard exports
// ("Kusal Mendis†"). It carries no identity information.
const WicketKeeperMarker = "†"

var reCaptainMarker = regexp.MustCompile(`\s*\((?i:c)\)\s*$`)

// CleanBatsmanName strips every wicket-keeper marker. Casing, internal
// spacing and captain markers are left alone.
func CleanBatsmanName(raw string) string {
	return strings.ReplaceAll(raw, WicketKeeperMarker, "")
}

// StripCaptainMarker drops a trailing "(c)". Applied only when the
// STRIP_CAPTAIN_MARKER option is on.
func StripCaptainMarker(name string) string {
	return reCaptainMarker.ReplaceAllString(name, "")
}

// ClassifyDismissal maps raw dismissal text to a status. Only a blank
// (or whitespace-only) dismissal means the batsman was not out.
func ClassifyDismissal(raw string) internal.DismissalStatus {
	if strings.TrimSpace(raw) == "" {
		return internal.DismissedNotOut
	}
	return internal.DismissedOut
}

type NormalizedEntry struct {
	internal.BattingEntry
	Batsman         string
	DismissalStatus internal.DismissalStatus
}

type NormalizeOptions struct {
	StripCaptainMarker bool
}

func NormalizeEntries(entries []internal.BattingEntry, opts NormalizeOptions) []NormalizedEntry {
	out := make([]NormalizedEntry, 0, len(entries))
	for _, entry := range entries {
		name := ""
		if entry.Batsman != nil {
			name = CleanBatsmanName(*entry.Batsman)
			if opts.StripCaptainMarker {
				name = StripCaptainMarker(name)
			}
		}
		out = append(out, NormalizedEntry{
			BattingEntry:    entry,
			Batsman:         name,
			DismissalStatus: ClassifyDismissal(entry.Dismissal),
		})
	}
	return out
}
