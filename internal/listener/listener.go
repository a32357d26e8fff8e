package listener

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"scorelink/internal/config"
	"scorelink/internal/connectors"
	gmailconnector "scorelink/internal/connectors/gmail"
	imapconnector "scorelink/internal/connectors/imap"
	"scorelink/internal/pipeline"
	"scorelink/internal/storage"
)

// Service polls the provider mailbox, processes new scorecard exports
// and optionally writes the enriched XLSX for each processed file.
type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			fmt.Printf("listener cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.FeedListenerIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.FeedListenerProvider))
	mailConnector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	fetchService := connectors.NewFetchService(s.db, s.cfg.RawFeedDir, mailConnector)
	fetchResult, err := fetchService.FetchAndStore(s.cfg.FeedListenerLabel, s.cfg.FeedListenerFetchMax)
	if err != nil {
		return err
	}

	processor := pipeline.NewProcessingService(s.db, s.cfg)
	processedFiles, _, err := processor.ProcessPending(s.cfg.FeedListenerProcessBatch, provider)
	if err != nil {
		return err
	}

	if s.cfg.FeedListenerAutoExport {
		if err := s.exportProcessed(provider); err != nil {
			return err
		}
	}

	fmt.Printf("listener cycle done provider=%s fetched=%d stored=%d processed=%d\n", provider, fetchResult.Fetched, fetchResult.Stored, processedFiles)
	return nil
}

func (s *Service) exportProcessed(provider string) error {
	feedFiles, err := s.db.ListFeedFilesByStatus("processed", 200)
	if err != nil {
		return err
	}

	for _, feedFile := range feedFiles {
		if feedFile.Provider != provider {
			continue
		}
		rows, err := s.db.GetExportRows(feedFile.ID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			continue
		}
		filename := fmt.Sprintf("%d_%s.xlsx", feedFile.ID, sanitizeMessageID(feedFile.MessageID))
		outputPath := filepath.Join(s.cfg.OutputDir, "listener", filename)
		if err := pipeline.ExportRowsToXLSX(rows, outputPath); err != nil {
			return err
		}
		_ = s.db.UpdateFeedFileStatus(feedFile.ID, "exported")
	}
	return nil
}

func (s *Service) makeConnector(provider string) (connectors.MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported listener provider: %s", provider)
	}
}

func sanitizeMessageID(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
