package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"scorelink/internal"
	"scorelink/internal/storage"
)

// FeedStoreService keeps the raw .eml bytes on disk, content-addressed,
// and registers the message in the feed_files table. Re-fetching the
// same message is a no-op on disk.
type FeedStoreService struct {
	db         *storage.DB
	rawFeedDir string
}

func NewFeedStoreService(db *storage.DB, rawFeedDir string) *FeedStoreService {
	return &FeedStoreService{db: db, rawFeedDir: rawFeedDir}
}

func (s *FeedStoreService) Store(msg internal.FetchedMailMessage) (internal.FeedFileRow, error) {
	hashBytes := sha256.Sum256(msg.Raw)
	hash := hex.EncodeToString(hashBytes[:])

	if err := os.MkdirAll(s.rawFeedDir, 0o755); err != nil {
		return internal.FeedFileRow{}, err
	}

	rawPath := filepath.Join(s.rawFeedDir, hash+".eml")
	if _, err := os.Stat(rawPath); os.IsNotExist(err) {
		if err := os.WriteFile(rawPath, msg.Raw, 0o644); err != nil {
			return internal.FeedFileRow{}, err
		}
	}

	return s.db.UpsertFeedFile(msg.Provider, msg.MessageID, msg.Subject, msg.From, msg.ReceivedAt, hash, rawPath, "fetched")
}
