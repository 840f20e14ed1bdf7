package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mgarciaq/finsa-quotes/internal/common"
	"github.com/mgarciaq/finsa-quotes/internal/export"
	"github.com/mgarciaq/finsa-quotes/internal/ingest"
	"github.com/mgarciaq/finsa-quotes/internal/pipeline"
	"github.com/mgarciaq/finsa-quotes/internal/repository"
	"github.com/mgarciaq/finsa-quotes/internal/schema"
	"github.com/mgarciaq/finsa-quotes/internal/textextract"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir     = flag.String("dir", "", "directory of quote PDFs to process (required)")
		out     = flag.String("out", "", "output file path (optional, defaults to parent directory)")
		mapping = flag.String("mapping", "", "mapping file whose header defines output columns (.csv/.xlsx/.json)")
		format  = flag.String("format", "csv", "output format: csv or xlsx")
		strict  = flag.Bool("strict", false, "fail the run when required fields are missing")
		workers = flag.Int("workers", 0, "parallel document workers (default from BATCH_WORKERS)")
	)
	flag.Parse()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *format != "csv" && *format != "xlsx" {
		printError("Error: --format must be csv or xlsx\n")
		os.Exit(1)
	}

	// If output file not specified, use parent directory with default filename
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "finsa_parsed."+*format)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}

	// Resolve output columns
	fields := schema.Default()
	if *mapping != "" {
		var err error
		fields, err = schema.Load(*mapping)
		if err != nil {
			logger.Error("failed to load mapping", "path", *mapping, "error", err)
			os.Exit(1)
		}
		logger.Info("using mapping", "path", *mapping, "fields", len(fields))
	}

	// Wire the row store, text extractor and processor
	rowsRepo, err := repository.NewQuoteRowRepository(ctx, logger)
	if err != nil {
		logger.Error("failed to open row store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = rowsRepo.Close() }()

	extractor := textextract.NewExtractor(textextract.Config{Pdftotext: cfg.Extract.Pdftotext}, logger)
	proc := pipeline.NewProcessor(logger, extractor, rowsRepo, fields)
	proc.DocTimeout = cfg.Extract.DocTimeout
	proc.Workers = cfg.Batch.Workers

	// Ingest directory
	ingestor := ingest.NewFSIngestor(logger)
	ingestor.MaxFiles = cfg.Batch.MaxFiles
	ingestor.MaxFileBytes = int64(cfg.Batch.MaxFileMB) << 20

	logger.Info("starting ingestion", "dir", *dir)
	files, skips, stats, err := ingestor.IngestDirectory(*dir)
	if err != nil {
		logger.Error("failed to ingest directory", "error", err)
		os.Exit(1)
	}
	for _, sk := range skips {
		logger.Warn("file skipped", "path", sk.Path, "reason", sk.Reason)
	}

	// Parse the batch
	batchID := uuid.New()
	results, err := proc.ProcessBatch(ctx, batchID, files)
	if err != nil {
		logger.Error("batch processing failed", "error", err)
		os.Exit(1)
	}

	parsed := 0
	failures := 0
	var problems []string
	for _, res := range results {
		if res.Err != "" {
			failures++
			problems = append(problems, fmt.Sprintf("%s: %s", res.SourceName, res.Err))
			continue
		}
		parsed++
		for _, warn := range res.Warnings {
			problems = append(problems, fmt.Sprintf("%s: %s", res.SourceName, warn))
		}
	}
	if len(problems) > 0 {
		logger.Warn("review problems", "count", len(problems))
		for _, p := range problems {
			printError("review: %s\n", p)
		}
		if *strict {
			printError("Error: strict validation failed (%d problems)\n", len(problems))
			os.Exit(1)
		}
	}

	// Export
	svc := export.NewService(rowsRepo, logger)
	var payload []byte
	if *format == "xlsx" {
		payload, err = svc.ExportXLSX(ctx, batchID, fields)
	} else {
		payload, err = svc.ExportCSV(ctx, batchID, fields)
	}
	if err != nil {
		logger.Error("failed to export batch", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, payload, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("batch complete",
		"files_ingested", len(files),
		"files_parsed", parsed,
		"failures", failures,
		"deduplicated", stats.Deduplicated,
		"skipped", stats.Skipped,
		"output_file", *out,
	)

	fmt.Printf("Batch complete!\n")
	fmt.Printf("- Files ingested: %d\n", len(files))
	fmt.Printf("- Files parsed: %d\n", parsed)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Output: %s\n", *out)
	if len(problems) > 0 {
		fmt.Printf("- Review problems: %d\n%s\n", len(problems), strings.Join(problems, "\n"))
	}
}
