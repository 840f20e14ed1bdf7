// Package pipeline coordinates the two per-document stages: text recovery,
// then field extraction. One bad document never aborts the batch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mgarciaq/finsa-quotes/constants"
	"github.com/mgarciaq/finsa-quotes/internal/extract"
	"github.com/mgarciaq/finsa-quotes/internal/ingest"
	"github.com/mgarciaq/finsa-quotes/internal/repository"
	"github.com/mgarciaq/finsa-quotes/internal/textextract"
)

// Result is the per-document outcome.
type Result struct {
	SourceName string
	Status     constants.JobStatus
	Record     *extract.Record
	Warnings   []string // review warnings (missing required fields)
	Err        string
}

// Processor runs documents through textextract and the field engine, and
// stages one row per document for export.
type Processor struct {
	Logger     *slog.Logger
	Extractor  *textextract.Extractor
	Cache      *textextract.Cache
	Rows       repository.QuoteRowRepository
	Fields     []string
	DocTimeout time.Duration
	Workers    int
}

func NewProcessor(logger *slog.Logger, ex *textextract.Extractor, rows repository.QuoteRowRepository, fields []string) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if len(fields) == 0 {
		fields = extract.DefaultSchema()
	}
	return &Processor{
		Logger:    logger,
		Extractor: ex,
		Cache:     textextract.NewCache(),
		Rows:      rows,
		Fields:    fields,
		Workers:   1,
	}
}

// ProcessBatch parses every file and stages the rows in input order. The
// extractors are pure functions of their input text, so documents may be
// parsed by parallel workers; staging stays sequential to keep export order
// deterministic.
func (p *Processor) ProcessBatch(ctx context.Context, batchID uuid.UUID, files []*ingest.SourceFile) ([]Result, error) {
	results := make([]Result, len(files))

	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	if workers <= 1 {
		for i, sf := range files {
			results[i] = p.processOne(ctx, sf)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = p.processOne(ctx, files[i])
				}
			}()
		}
		for i := range files {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	for i, res := range results {
		row := &repository.QuoteRow{
			BatchID:    batchID,
			SourceName: res.SourceName,
		}
		if res.Record != nil {
			row.Values = res.Record.Map()
		} else {
			// error marker row: no partial record is half-applied
			row.Values = map[string]string{
				"PDF":                res.SourceName,
				constants.ErrorField: res.Err,
			}
			row.Err = res.Err
		}
		if err := p.Rows.Add(ctx, row); err != nil {
			return results, fmt.Errorf("stage row %d: %w", i, err)
		}
	}
	return results, nil
}

// processOne runs both stages for one document. Unexpected failures are
// contained here and become an error marker result.
func (p *Processor) processOne(ctx context.Context, sf *ingest.SourceFile) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.Error("pipeline.doc.panic", "source", res.SourceName, "panic", r)
			res = Result{
				SourceName: res.SourceName,
				Status:     constants.JobStatusFailed,
				Err:        fmt.Sprintf("panic: %v", r),
			}
		}
	}()
	res.SourceName = sf.Name
	res.Status = constants.JobStatusRunning

	if p.DocTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.DocTimeout)
		defer cancel()
	}

	// Stage 1: text recovery, memoized by content hash. Failure degrades
	// to an empty blob: the record comes back fully blank, not missing.
	text := ""
	key := sf.HashHex
	if key == "" {
		key = textextract.Key(sf.Data)
	}
	if cached, ok := p.Cache.Get(key); ok {
		text = cached.Text
		p.Logger.Debug("pipeline.text.cached", "source", sf.Name)
	} else {
		tr, err := p.Extractor.ExtractBytes(ctx, sf.Name, sf.Data)
		if err != nil {
			p.Logger.Warn("pipeline.text.unreadable", "source", sf.Name, "error", err)
			tr = textextract.Result{}
		}
		p.Cache.Put(key, tr)
		text = tr.Text
	}
	res.Status = constants.JobStatusTextOK

	// Stage 2: field extraction and review.
	rec := extract.Parse(sf.Name, text, p.Fields)
	res.Record = rec
	res.Warnings = extract.Review(rec)
	res.Status = constants.JobStatusParsed

	p.Logger.Info("pipeline.doc.ok",
		"source", sf.Name,
		"quote_number", rec.Get("QuoteNumber"),
		"missing", len(res.Warnings),
	)
	return res
}
