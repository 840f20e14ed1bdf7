package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mgarciaq/finsa-quotes/constants"
	"github.com/mgarciaq/finsa-quotes/internal/export"
	"github.com/mgarciaq/finsa-quotes/internal/ingest"
	"github.com/mgarciaq/finsa-quotes/internal/pipeline"
	"github.com/mgarciaq/finsa-quotes/internal/repository"
	"github.com/mgarciaq/finsa-quotes/internal/schema"
)

const maxMultipartMemory = 32 << 20

type extractResponseProblems struct {
	BatchID  string   `json:"batch_id"`
	Problems []string `json:"problems"`
	Skipped  []string `json:"skipped,omitempty"`
}

// handleExtract accepts multipart uploads: quote documents under "files",
// an optional mapping file under "mapping", plus "format" (csv|xlsx) and
// "strict" form values. Documents over the size cap or past the batch cap
// are skipped with a warning, never failing the request. In strict mode a
// batch with missing required fields returns 422 with the problem list
// instead of the table.
func (s *Service) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		http.Error(w, "invalid multipart request: "+err.Error(), http.StatusBadRequest)
		return
	}

	fields, err := s.resolveMapping(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	uploads := r.MultipartForm.File["files"]
	if len(uploads) == 0 {
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return
	}

	var skipped []string
	if len(uploads) > s.cfg.Batch.MaxFiles {
		skipped = append(skipped, fmt.Sprintf("only the first %d of %d files were processed", s.cfg.Batch.MaxFiles, len(uploads)))
		uploads = uploads[:s.cfg.Batch.MaxFiles]
	}

	maxBytes := int64(s.cfg.Batch.MaxFileMB) << 20
	var files []*ingest.SourceFile
	for _, fh := range uploads {
		sf, err := readUpload(fh, maxBytes)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: %v", fh.Filename, err))
			continue
		}
		files = append(files, sf)
	}

	rowsRepo, err := repository.NewQuoteRowRepository(ctx, s.logger)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = rowsRepo.Close() }()

	proc := pipeline.NewProcessor(s.logger, s.extractor, rowsRepo, fields)
	proc.DocTimeout = s.cfg.Extract.DocTimeout
	proc.Workers = s.cfg.Batch.Workers

	batchID := uuid.New()
	results, err := proc.ProcessBatch(ctx, batchID, files)
	if err != nil {
		s.logger.Error("server.extract.failed", "batch_id", batchID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var problems []string
	for _, res := range results {
		for _, warn := range res.Warnings {
			problems = append(problems, fmt.Sprintf("%s: %s", res.SourceName, warn))
		}
		if res.Err != "" {
			problems = append(problems, fmt.Sprintf("%s: %s", res.SourceName, res.Err))
		}
	}

	strict := s.cfg.Batch.Strict
	if v := r.FormValue("strict"); v != "" {
		strict, _ = strconv.ParseBool(v)
	}
	if strict && len(problems) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(extractResponseProblems{
			BatchID:  batchID.String(),
			Problems: problems,
			Skipped:  skipped,
		})
		return
	}

	svc := export.NewService(rowsRepo, s.logger)
	format := r.FormValue("format")

	w.Header().Set("X-Batch-Id", batchID.String())
	w.Header().Set("X-Review-Problems", strconv.Itoa(len(problems)))
	w.Header().Set("X-Skipped-Files", strconv.Itoa(len(skipped)))

	var payload []byte
	switch format {
	case "", "csv":
		payload, err = svc.ExportCSV(ctx, batchID, fields)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="finsa_parsed.csv"`)
	case "xlsx":
		payload, err = svc.ExportXLSX(ctx, batchID, fields)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="finsa_parsed.xlsx"`)
	default:
		http.Error(w, "unsupported format: "+format, http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("server.export.failed", "batch_id", batchID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	_, _ = w.Write(payload)
	s.logger.Info("server.extract.ok",
		"batch_id", batchID.String(),
		"files", len(files),
		"problems", len(problems),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}

// resolveMapping reads the optional mapping upload; its header row (or
// "fields" list for JSON) defines the output columns and their order.
func (s *Service) resolveMapping(r *http.Request) ([]string, error) {
	mf, mfh, err := r.FormFile("mapping")
	if err != nil {
		if err == http.ErrMissingFile {
			return schema.Default(), nil
		}
		return nil, fmt.Errorf("read mapping upload: %w", err)
	}
	defer func() { _ = mf.Close() }()

	switch constants.NormalizeExt(filepath.Ext(mfh.Filename)) {
	case "csv":
		return schema.FromCSVHeader(mf)
	case "xlsx":
		return schema.FromXLSXHeader(mf)
	case "json":
		data, err := io.ReadAll(mf)
		if err != nil {
			return nil, err
		}
		return schema.FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported mapping format: %s", mfh.Filename)
	}
}

func readUpload(fh *multipart.FileHeader, maxBytes int64) (*ingest.SourceFile, error) {
	if fh.Size > maxBytes {
		return nil, fmt.Errorf("exceeds %d MB limit", maxBytes>>20)
	}
	ext := constants.NormalizeExt(filepath.Ext(fh.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("unsupported extension: %q", ext)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("exceeds %d MB limit", maxBytes>>20)
	}
	sum := sha256.Sum256(data)
	return &ingest.SourceFile{
		Name:    fh.Filename,
		Ext:     ext,
		Size:    int64(len(data)),
		HashHex: hex.EncodeToString(sum[:]),
		Data:    data,
		ReadAt:  time.Now().UTC(),
	}, nil
}
