package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"scorelink/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS matches (
  matchId TEXT PRIMARY KEY,
  team1 TEXT NOT NULL,
  team2 TEXT NOT NULL,
  winner TEXT,
  margin TEXT,
  ground TEXT,
  matchDate TEXT,
  raw_json TEXT NOT NULL,
  lastSeenAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_matches_teams ON matches(team1, team2);

CREATE TABLE IF NOT EXISTS feed_files (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  provider TEXT NOT NULL,
  messageId TEXT NOT NULL,
  subject TEXT,
  sender TEXT,
  receivedAt TEXT,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'fetched',
  rawRef TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(provider, messageId)
);

CREATE TABLE IF NOT EXISTS entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  feedFileId INTEGER NOT NULL,
  lineNo INTEGER NOT NULL,
  source TEXT NOT NULL,
  rawLine TEXT NOT NULL,
  matchLabel TEXT NOT NULL,
  teamInnings TEXT,
  position INTEGER,
  batsman TEXT,
  dismissal TEXT NOT NULL DEFAULT '',
  runs REAL,
  balls REAL,
  fours REAL,
  sixes REAL,
  strikeRate REAL,
  parsedJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(feedFileId, lineNo, source, rawLine),
  FOREIGN KEY(feedFileId) REFERENCES feed_files(id)
);

CREATE TABLE IF NOT EXISTS enrichments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  entryId INTEGER NOT NULL UNIQUE,
  resolveStatus TEXT NOT NULL,
  dismissalStatus TEXT NOT NULL,
  batsman TEXT NOT NULL,
  matchId TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(entryId) REFERENCES entries(id)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  feedFileId INTEGER,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(feedFileId) REFERENCES feed_files(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertMatches(records []internal.MatchRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO matches (matchId, team1, team2, winner, margin, ground, matchDate, raw_json, lastSeenAt)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(matchId) DO UPDATE SET
  team1=excluded.team1,
  team2=excluded.team2,
  winner=excluded.winner,
  margin=excluded.margin,
  ground=excluded.ground,
  matchDate=excluded.matchDate,
  raw_json=excluded.raw_json,
  lastSeenAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range records {
		if _, err := stmt.Exec(m.MatchID, m.Team1, m.Team2, m.Winner, m.Margin, m.Ground, m.MatchDate, m.RawJSON); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListMatches() ([]internal.MatchRecord, error) {
	rows, err := d.conn.Query(`
SELECT matchId, team1, team2, winner, margin, ground, matchDate, raw_json
FROM matches`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.MatchRecord
	for rows.Next() {
		var m internal.MatchRecord
		if err := rows.Scan(&m.MatchID, &m.Team1, &m.Team2, &m.Winner, &m.Margin, &m.Ground, &m.MatchDate, &m.RawJSON); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (d *DB) UpsertFeedFile(provider, messageID, subject, sender, receivedAt, hash, rawRef, status string) (internal.FeedFileRow, error) {
	_, err := d.conn.Exec(`
INSERT INTO feed_files (provider, messageId, subject, sender, receivedAt, hash, status, rawRef)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(provider, messageId) DO UPDATE SET
  subject=excluded.subject,
  sender=excluded.sender,
  receivedAt=excluded.receivedAt,
  hash=excluded.hash,
  rawRef=excluded.rawRef,
  updatedAt=CURRENT_TIMESTAMP
`, provider, messageID, subject, sender, receivedAt, hash, status, rawRef)
	if err != nil {
		return internal.FeedFileRow{}, err
	}

	row, err := d.GetFeedFileByProviderMessageID(provider, messageID)
	if err != nil {
		return internal.FeedFileRow{}, err
	}
	if row == nil {
		return internal.FeedFileRow{}, errors.New("failed to upsert feed file")
	}
	return *row, nil
}

func (d *DB) GetFeedFileByProviderMessageID(provider, messageID string) (*internal.FeedFileRow, error) {
	var row internal.FeedFileRow
	err := d.conn.QueryRow(`
SELECT id, provider, messageId, subject, sender, receivedAt, hash, status, rawRef
FROM feed_files WHERE provider = ? AND messageId = ?
`, provider, messageID).Scan(
		&row.ID, &row.Provider, &row.MessageID, &row.Subject, &row.Sender, &row.ReceivedAt, &row.Hash, &row.Status, &row.RawRef,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) GetFeedFileByID(id int) (*internal.FeedFileRow, error) {
	var row internal.FeedFileRow
	err := d.conn.QueryRow(`
SELECT id, provider, messageId, subject, sender, receivedAt, hash, status, rawRef
FROM feed_files WHERE id = ?
`, id).Scan(
		&row.ID, &row.Provider, &row.MessageID, &row.Subject, &row.Sender, &row.ReceivedAt, &row.Hash, &row.Status, &row.RawRef,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) ListFeedFilesByStatus(status string, limit int) ([]internal.FeedFileRow, error) {
	rows, err := d.conn.Query(`
SELECT id, provider, messageId, subject, sender, receivedAt, hash, status, rawRef
FROM feed_files WHERE status = ? ORDER BY receivedAt ASC LIMIT ?
`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.FeedFileRow
	for rows.Next() {
		var row internal.FeedFileRow
		if err := rows.Scan(&row.ID, &row.Provider, &row.MessageID, &row.Subject, &row.Sender, &row.ReceivedAt, &row.Hash, &row.Status, &row.RawRef); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) UpdateFeedFileStatus(feedFileID int, status string) error {
	_, err := d.conn.Exec(`UPDATE feed_files SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, status, feedFileID)
	return err
}

func (d *DB) ClearFeedFileProcessing(feedFileID int) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query(`SELECT id FROM entries WHERE feedFileId = ?`, feedFileID)
	if err != nil {
		return err
	}
	var entryIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return err
		}
		entryIDs = append(entryIDs, id)
	}
	_ = rows.Close()

	for _, id := range entryIDs {
		if _, err := tx.Exec(`DELETE FROM enrichments WHERE entryId = ?`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM entries WHERE id = ?`, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) InsertEntry(feedFileID int, entry internal.BattingEntry) (int64, error) {
	metaJSON, _ := json.Marshal(entry.Meta)
	result, err := d.conn.Exec(`
INSERT INTO entries (feedFileId, lineNo, source, rawLine, matchLabel, teamInnings, position, batsman, dismissal, runs, balls, fours, sixes, strikeRate, parsedJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, feedFileID, entry.LineNo, string(entry.Source), entry.RawLine, entry.MatchLabel, entry.TeamInnings, entry.Position, entry.Batsman, entry.Dismissal,
		entry.Runs, entry.Balls, entry.Fours, entry.Sixes, entry.StrikeRate, string(metaJSON))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *DB) InsertEnrichment(entryID int64, enriched internal.EnrichedEntry) error {
	_, err := d.conn.Exec(`
INSERT INTO enrichments (entryId, resolveStatus, dismissalStatus, batsman, matchId)
VALUES (?, ?, ?, ?, ?)
`, entryID, string(enriched.ResolveStatus), string(enriched.DismissalStatus), enriched.Batsman, enriched.MatchID)
	return err
}

func (d *DB) InsertRun(traceID string, feedFileID int, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, feedFileId, timingsJson, countsJson) VALUES (?, ?, ?, ?)`, traceID, feedFileID, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (d *DB) GetExportRows(feedFileID int) ([]internal.ExportRow, error) {
	rows, err := d.conn.Query(`
SELECT
  e.lineNo,
  e.source,
  e.rawLine,
  e.matchLabel,
  en.batsman,
  e.teamInnings,
  e.position,
  e.runs,
  e.balls,
  e.fours,
  e.sixes,
  e.strikeRate,
  en.dismissalStatus,
  en.resolveStatus,
  en.matchId,
  m.winner,
  m.margin,
  m.ground,
  m.matchDate
FROM entries e
JOIN enrichments en ON en.entryId = e.id
LEFT JOIN matches m ON m.matchId = en.matchId
WHERE e.feedFileId = ?
ORDER BY
  CASE en.resolveStatus WHEN 'RESOLVED' THEN 1 ELSE 2 END,
  e.lineNo ASC
`, feedFileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ExportRow
	for rows.Next() {
		var row internal.ExportRow
		var batsman string
		if err := rows.Scan(
			&row.InputLineNo,
			&row.Source,
			&row.RawLine,
			&row.MatchLabel,
			&batsman,
			&row.TeamInnings,
			&row.Position,
			&row.Runs,
			&row.Balls,
			&row.Fours,
			&row.Sixes,
			&row.StrikeRate,
			&row.DismissalStatus,
			&row.ResolveStatus,
			&row.MatchID,
			&row.Winner,
			&row.Margin,
			&row.Ground,
			&row.MatchDate,
		); err != nil {
			return nil, err
		}
		row.Batsman = &batsman
		out = append(out, row)
	}

	return out, rows.Err()
}

func (d *DB) MustFeedFileByProviderMessageID(provider, messageID string) (internal.FeedFileRow, error) {
	row, err := d.GetFeedFileByProviderMessageID(provider, messageID)
	if err != nil {
		return internal.FeedFileRow{}, err
	}
	if row == nil {
		return internal.FeedFileRow{}, fmt.Errorf("feed file not found: provider=%s messageId=%s", provider, messageID)
	}
	return *row, nil
}
