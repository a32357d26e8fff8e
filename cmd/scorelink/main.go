package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"scorelink/internal"
	"scorelink/internal/config"
	"scorelink/internal/connectors"
	gmailconnector "scorelink/internal/connectors/gmail"
	imapconnector "scorelink/internal/connectors/imap"
	"scorelink/internal/listener"
	"scorelink/internal/matches"
	"scorelink/internal/pipeline"
	"scorelink/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "matches:sync":
		svc := matches.NewSyncService(db, cfg)
		count, err := svc.InitialSync(context.Background())
		must(err)
		fmt.Printf("initial sync complete: %d matches\n", count)
		warnDuplicatePairs(db)
	case "matches:sync-incremental":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mode := fs.String("mode", "", "day|hour")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*mode) == "" {
			must(fmt.Errorf("--mode is required"))
		}
		svc := matches.NewSyncService(db, cfg)
		count, err := svc.IncrementalSync(context.Background(), *mode)
		must(err)
		fmt.Printf("incremental sync complete mode=%s matches=%d\n", *mode, count)
		warnDuplicatePairs(db)
	case "matches:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "match list xlsx/csv path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		records, err := matches.ImportFile(*file)
		must(err)
		must(db.UpsertMatches(records))
		fmt.Printf("imported %d matches from %s\n", len(records), *file)
		warnDuplicatePairs(db)
	case "feed:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "gmail", "gmail|imap")
		label := fs.String("label", "INBOX", "mailbox/label")
		max := fs.Int("max", 50, "max messages")
		_ = fs.Parse(os.Args[2:])
		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetch := connectors.NewFetchService(db, cfg.RawFeedDir, conn)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("feed fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, result.Stored)
	case "feed:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "gmail", "gmail|imap")
		messageID := fs.String("messageId", "", "specific message-id")
		batch := fs.Int("batch", 20, "batch size")
		_ = fs.Parse(os.Args[2:])
		processor := pipeline.NewProcessingService(db, cfg)
		if strings.TrimSpace(*messageID) != "" {
			res, err := processor.ProcessByProviderMessageID(*provider, *messageID)
			must(err)
			fmt.Printf("processed feed file id=%d entries=%d\n", res.FeedFileID, res.Processed)
			return
		}
		processedFiles, processedLines, err := processor.ProcessPending(*batch, *provider)
		must(err)
		fmt.Printf("processed pending files=%d entries=%d\n", processedFiles, processedLines)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		fileID := fs.Int("fileId", 0, "internal feed file id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *fileID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--fileId and --out are required"))
		}
		rows, err := db.GetExportRows(*fileID)
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no export rows for fileId=%d", *fileID))
		}
		must(pipeline.ExportRowsToXLSX(rows, *out))
		fmt.Printf("exported %d rows to %s\n", len(rows), *out)
	case "feed:listen":
		s := listener.NewService(db, cfg)
		must(s.Run(context.Background()))
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		matchList := fs.String("matches", "", "match list xlsx/csv (default: matches already in db)")
		input := fs.String("input", "", "input file path or raw text")
		inType := fs.String("type", "", "xlsx|csv|pdf|email_text|email_table")
		output := fs.String("output", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || *inType == "" || *output == "" {
			must(fmt.Errorf("--input --type --output are required"))
		}

		var authoritative []internal.MatchRecord
		var err error
		if strings.TrimSpace(*matchList) != "" {
			authoritative, err = matches.ImportFile(*matchList)
		} else {
			authoritative, err = db.ListMatches()
		}
		must(err)

		index, err := matches.BuildIndex(authoritative, matches.BuildOptions{SkipMalformed: cfg.IndexSkipMalformed})
		must(err)
		for _, skipped := range index.Skipped {
			fmt.Printf("index build: skipped row: %s\n", skipped.Error())
		}

		entries, err := pipeline.ExtractEntriesFromInput(*inType, *input)
		must(err)
		normalized := pipeline.NormalizeEntries(entries, pipeline.NormalizeOptions{StripCaptainMarker: cfg.StripCaptainMarker})
		enriched := pipeline.NewEnricher(index).Enrich(normalized)

		exportRows := make([]internal.ExportRow, 0, len(enriched))
		for _, entry := range enriched {
			exportRows = append(exportRows, toExportRow(entry))
		}
		must(pipeline.ExportRowsToXLSX(exportRows, *output))
		fmt.Printf("run done rows=%d output=%s\n", len(exportRows), *output)
	default:
		usage()
		os.Exit(1)
	}
}

func toExportRow(entry internal.EnrichedEntry) internal.ExportRow {
	batsman := entry.Batsman
	return internal.ExportRow{
		InputLineNo:     entry.LineNo,
		Source:          string(entry.Source),
		RawLine:         entry.RawLine,
		MatchLabel:      entry.MatchLabel,
		Batsman:         &batsman,
		TeamInnings:     entry.TeamInnings,
		Position:        entry.Position,
		Runs:            entry.Runs,
		Balls:           entry.Balls,
		Fours:           entry.Fours,
		Sixes:           entry.Sixes,
		StrikeRate:      entry.StrikeRate,
		DismissalStatus: string(entry.DismissalStatus),
		ResolveStatus:   string(entry.ResolveStatus),
		MatchID:         entry.MatchID,
	}
}

func warnDuplicatePairs(db *storage.DB) {
	records, err := db.ListMatches()
	if err != nil {
		return
	}
	for _, label := range matches.DuplicatePairs(records) {
		fmt.Printf("warning: ambiguous label %q (multiple matches share this team pair; last one wins)\n", label)
	}
}

func makeConnector(cfg config.Config, provider string) (connectors.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func usage() {
	fmt.Println("usage: scorelink <command>")
	fmt.Println("commands:")
	fmt.Println("  matches:sync")
	fmt.Println("  matches:sync-incremental --mode=day|hour")
	fmt.Println("  matches:import --file=./matches.xlsx")
	fmt.Println("  feed:fetch --provider=gmail|imap --label=INBOX --max=50")
	fmt.Println("  feed:process --provider=gmail|imap [--messageId=...] [--batch=20]")
	fmt.Println("  feed:listen")
	fmt.Println("  export:xlsx --fileId=1 --out=./out/result.xlsx")
	fmt.Println("  run [--matches=...] --input=... --type=xlsx|csv|pdf|email_text|email_table --output=...xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
