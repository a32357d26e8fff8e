package matches

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"scorelink/internal/config"
	"scorelink/internal/storage"
)

type SyncService struct {
	db     *storage.DB
	client *Client
	cfg    config.Config
}

func NewSyncService(db *storage.DB, cfg config.Config) *SyncService {
	return &SyncService{db: db, client: NewClient(cfg), cfg: cfg}
}

func (s *SyncService) InitialSync(ctx context.Context) (int, error) {
	records, err := s.client.GetMatchesScrollAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.db.UpsertMatches(records); err != nil {
		return 0, err
	}
	_ = s.db.SetMetadata("matches.last_initial_sync", time.Now().UTC().Format(time.RFC3339))
	if err := s.refreshSeriesListIfNeeded(ctx, true); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *SyncService) IncrementalSync(ctx context.Context, mode string) (int, error) {
	records, err := s.client.GetMatchesIncremental(ctx, mode)
	if err != nil {
		return 0, err
	}
	if len(records) > 0 {
		if err := s.db.UpsertMatches(records); err != nil {
			return 0, err
		}
	}
	_ = s.db.SetMetadata("matches.last_incremental_sync."+mode, time.Now().UTC().Format(time.RFC3339))
	if err := s.refreshSeriesListIfNeeded(ctx, false); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *SyncService) refreshSeriesListIfNeeded(ctx context.Context, force bool) error {
	const key = "matches.last_series_list_sync"
	last, err := s.db.GetMetadata(key)
	if err != nil {
		return err
	}

	if !force && last != nil {
		if parsed, err := time.Parse(time.RFC3339, *last); err == nil {
			if time.Since(parsed) < 30*24*time.Hour {
				return nil
			}
		}
	}

	series, err := s.client.GetSeriesList(ctx)
	if err != nil {
		return err
	}
	blob, _ := json.MarshalIndent(series, "", "  ")
	seriesPath := filepath.Join(s.cfg.OutputDir, "series-list.json")
	if err := os.MkdirAll(filepath.Dir(seriesPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(seriesPath, blob, 0o644); err != nil {
		return err
	}
	return s.db.SetMetadata(key, time.Now().UTC().Format(time.RFC3339))
}
