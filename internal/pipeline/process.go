package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"scorelink/internal"
	"scorelink/internal/config"
	"scorelink/internal/matches"
	"scorelink/internal/storage"
)

type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg}
}

type ProcessResult struct {
	FeedFileID int
	Processed  int
}

func (s *ProcessingService) ProcessByProviderMessageID(provider, messageID string) (ProcessResult, error) {
	feedFile, err := s.db.MustFeedFileByProviderMessageID(provider, messageID)
	if err != nil {
		return ProcessResult{}, err
	}
	return s.ProcessFeedFile(feedFile)
}

func (s *ProcessingService) ProcessPending(limit int, provider string) (int, int, error) {
	pending, err := s.db.ListFeedFilesByStatus("fetched", limit)
	if err != nil {
		return 0, 0, err
	}
	processedFiles := 0
	processedLines := 0
	for _, feedFile := range pending {
		if provider != "" && feedFile.Provider != provider {
			continue
		}
		res, err := s.ProcessFeedFile(feedFile)
		if err != nil {
			return processedFiles, processedLines, err
		}
		processedFiles++
		processedLines += res.Processed
	}
	return processedFiles, processedLines, nil
}

func (s *ProcessingService) ProcessFeedFile(feedFile internal.FeedFileRow) (ProcessResult, error) {
	start := time.Now()
	raw, err := os.ReadFile(feedFile.RawRef)
	if err != nil {
		return ProcessResult{}, err
	}

	entries, subject, text, attachmentNames, err := ExtractEntriesFromFeedRaw(raw)
	if err != nil {
		return ProcessResult{}, err
	}

	detect := DetectScorecardExport(firstNonEmpty(subject, feedFile.Subject), text, "", attachmentNames)
	if err := s.db.ClearFeedFileProcessing(feedFile.ID); err != nil {
		return ProcessResult{}, err
	}

	if !detect.IsScorecard {
		_ = s.db.UpdateFeedFileStatus(feedFile.ID, "skipped")
		_ = s.db.InsertRun(traceID(), feedFile.ID, map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())}, map[string]int{"extracted": 0, "resolved": 0, "notFound": 0})
		return ProcessResult{FeedFileID: feedFile.ID, Processed: 0}, nil
	}

	normalized := NormalizeEntries(entries, NormalizeOptions{StripCaptainMarker: s.cfg.StripCaptainMarker})

	authoritative, err := s.db.ListMatches()
	if err != nil {
		return ProcessResult{}, err
	}
	index, err := matches.BuildIndex(authoritative, matches.BuildOptions{SkipMalformed: s.cfg.IndexSkipMalformed})
	if err != nil {
		return ProcessResult{}, err
	}
	for _, skipped := range index.Skipped {
		fmt.Printf("index build: skipped row: %s\n", skipped.Error())
	}

	enriched := NewEnricher(index).Enrich(normalized)

	resolvedCount, notFoundCount := 0, 0
	for i, entry := range normalized {
		entryID, err := s.db.InsertEntry(feedFile.ID, entry.BattingEntry)
		if err != nil {
			return ProcessResult{}, err
		}
		if err := s.db.InsertEnrichment(entryID, enriched[i]); err != nil {
			return ProcessResult{}, err
		}

		switch enriched[i].ResolveStatus {
		case internal.ResolveOK:
			resolvedCount++
		case internal.ResolveNotFound:
			notFoundCount++
		}
	}

	if err := s.db.UpdateFeedFileStatus(feedFile.ID, "processed"); err != nil {
		return ProcessResult{}, err
	}
	_ = s.db.InsertRun(traceID(), feedFile.ID, map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())}, map[string]int{"extracted": len(normalized), "resolved": resolvedCount, "notFound": notFoundCount})

	return ProcessResult{FeedFileID: feedFile.ID, Processed: len(normalized)}, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
