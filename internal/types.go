package internal

type EntrySource string

const (
	SourceEmailText      EntrySource = "email_text"
	SourceEmailHTMLTable EntrySource = "email_html_table"
	SourceXLSX           EntrySource = "xlsx"
	SourceCSV            EntrySource = "csv"
	SourcePDF            EntrySource = "pdf"
)

// MatchRecord is one row of the authoritative match list. MatchID is the
// scorecard identifier (e.g. "T20I # 1823"), unique across the dataset.
type MatchRecord struct {
	MatchID   string
	Team1     string
	Team2     string
	Winner    *string
	Margin    *string
	Ground    *string
	MatchDate *string
	RawJSON   string
}

// BattingEntry is one batsman-innings row extracted from a scorecard
// export. MatchLabel is the free-text "<Team A> Vs <Team B>" label.
// Dismissal is the raw dismissal text; empty means the batsman was not out.
type BattingEntry struct {
	LineNo      int
	Source      EntrySource
	RawLine     string
	MatchLabel  string
	TeamInnings *string
	Position    *int
	Batsman     *string
	Dismissal   string
	Runs        *float64
	Balls       *float64
	Fours       *float64
	Sixes       *float64
	StrikeRate  *float64
	Meta        map[string]any
}

type DismissalStatus string

type ResolveStatus string

const (
	DismissedOut    DismissalStatus = "Out"
	DismissedNotOut DismissalStatus = "Not out"

	ResolveOK       ResolveStatus = "RESOLVED"
	ResolveNotFound ResolveStatus = "NOT_FOUND"
)

// EnrichedEntry is a BattingEntry plus the derived fields. MatchID is nil
// when the label did not resolve against the authoritative index; the
// rest of the entry stays populated.
type EnrichedEntry struct {
	BattingEntry
	Batsman         string
	DismissalStatus DismissalStatus
	ResolveStatus   ResolveStatus
	MatchID         *string
}

type FeedFileRow struct {
	ID         int
	Provider   string
	MessageID  string
	Subject    string
	Sender     string
	ReceivedAt string
	Hash       string
	Status     string
	RawRef     string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}

type ExportRow struct {
	InputLineNo     int
	Source          string
	RawLine         string
	MatchLabel      string
	Batsman         *string
	TeamInnings     *string
	Position        *int
	Runs            *float64
	Balls           *float64
	Fours           *float64
	Sixes           *float64
	StrikeRate      *float64
	DismissalStatus string
	ResolveStatus   string
	MatchID         *string
	Winner          *string
	Margin          *string
	Ground          *string
	MatchDate       *string
}
