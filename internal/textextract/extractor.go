package textextract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"

	"github.com/mgarciaq/finsa-quotes/constants"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
}

type Result struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-fitz" | "plain-text"
	Duration time.Duration
	Warnings []string
}

// Extractor recovers linearized text from source documents. Failures
// degrade to an empty Result rather than aborting the batch: downstream
// field extraction treats no text as "nothing found".
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// ExtractBytes picks a strategy from the file name's extension. The data
// has already been read (and size-checked) by the caller.
func (e *Extractor) ExtractBytes(ctx context.Context, name string, data []byte) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(name))
	e.logger.Debug("starting text extraction", "name", name, "ext", ext)

	var res Result
	var err error
	switch ext {
	case "pdf":
		res, err = e.extractPDF(ctx, data)
	case "txt":
		res = Result{Text: string(data), Pages: 1, Method: "plain-text"}
	default:
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}
	res.Duration = time.Since(start)
	return res, err
}

// extractPDF prefers pdftotext with layout preservation; when the binary is
// missing or fails it renders text in-process with go-fitz.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (Result, error) {
	res, err := e.pdfToText(ctx, data)
	if err == nil {
		return res, nil
	}
	warn := err.Error()
	res, err = e.pdfFitzText(data)
	res.Warnings = append([]string{warn}, res.Warnings...)
	if err != nil {
		e.logger.Warn("pdf text extraction failed", "error", err)
		return Result{Warnings: res.Warnings}, nil
	}
	return res, nil
}

func (e *Extractor) pdfToText(ctx context.Context, data []byte) (Result, error) {
	tmp, err := os.CreateTemp("", "fq-pdf-*.pdf")
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil {
			e.logger.Warn("failed to remove temp pdf", "path", tmp.Name(), "error", rmErr)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return Result{}, err
	}
	if err := tmp.Close(); err != nil {
		return Result{}, err
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", tmp.Name(), "-")
	if err != nil {
		return Result{}, fmt.Errorf("pdftotext: %v: %s", err, truncate(string(errb), 512))
	}
	text := string(out)
	// A form-feed \f is used as page separator by default
	pages := 1 + strings.Count(text, "\f")
	return Result{Text: text, Pages: pages, Method: "pdf-text"}, nil
}

func (e *Extractor) pdfFitzText(data []byte) (Result, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return Result{}, fmt.Errorf("fitz open: %w", err)
	}
	defer func() {
		if closeErr := doc.Close(); closeErr != nil {
			e.logger.Warn("fitz close failed", "error", closeErr)
		}
	}()

	var b strings.Builder
	var warns []string
	pages := doc.NumPage()
	for i := 0; i < pages; i++ {
		txt, err := doc.Text(i)
		if err != nil {
			warns = append(warns, fmt.Sprintf("page %d: %v", i+1, err))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
	}
	return Result{Text: b.String(), Pages: pages, Method: "pdf-fitz", Warnings: warns}, nil
}
