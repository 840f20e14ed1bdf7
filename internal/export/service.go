// Package export renders one batch's staged rows as a delimited table.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mgarciaq/finsa-quotes/internal/repository"
)

// Service is a tiny façade over the row store that produces CSV or XLSX
// bytes for a batch.
type Service struct {
	rowsRepo repository.QuoteRowRepository
	logger   *slog.Logger
}

func NewService(rowsRepo repository.QuoteRowRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{rowsRepo: rowsRepo, logger: logger}
}

// utf8BOM makes the CSV open cleanly in Excel with accented text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV returns the batch as UTF-8 CSV with a BOM, one row per
// document, columns exactly the mapping fields in order.
func (s *Service) ExportCSV(ctx context.Context, batchID uuid.UUID, fields []string) ([]byte, error) {
	start := time.Now()
	rows, err := s.rowsRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch rows: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, r := range rows {
		line := make([]string, len(fields))
		for i, f := range fields {
			line[i] = r.Values[f]
		}
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}

	s.logger.Info("export.csv.ok",
		"batch_id", batchID.String(),
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ExportXLSX returns the batch as an XLSX workbook (as bytes).
func (s *Service) ExportXLSX(ctx context.Context, batchID uuid.UUID, fields []string) ([]byte, error) {
	start := time.Now()
	rows, err := s.rowsRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch rows: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Quotes"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range fields {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, r := range rows {
		for colIdx, field := range fields {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, r.Values[field])
		}
	}

	// Widen the identity columns; the defaults truncate company names.
	_ = f.SetColWidth(sheet, "A", "B", 20)
	_ = f.SetColWidth(sheet, "C", "F", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"batch_id", batchID.String(),
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
