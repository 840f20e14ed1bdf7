// Package schema resolves the output mapping: the ordered list of field
// names a batch should emit. Callers supply it as the header row of a CSV
// or XLSX file, or as a JSON mapping config; with no mapping the canonical
// column set applies.
package schema

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mgarciaq/finsa-quotes/constants"
)

// Default returns the canonical column list.
func Default() []string {
	return append([]string(nil), constants.DefaultFields...)
}

// Load reads a mapping file, dispatching on extension (.csv, .xlsx, .json).
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	switch constants.NormalizeExt(filepath.Ext(path)) {
	case "csv":
		return FromCSVHeader(bytes.NewReader(data))
	case "xlsx":
		return FromXLSXHeader(bytes.NewReader(data))
	case "json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported mapping format: %s", path)
	}
}

// FromCSVHeader takes the first row of a CSV as the field list.
func FromCSVHeader(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read mapping header: %w", err)
	}
	return normalize(header)
}

// FromXLSXHeader takes the first row of the first sheet as the field list.
func FromXLSXHeader(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open mapping workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("mapping workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read mapping sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("mapping sheet is empty")
	}
	return normalize(rows[0])
}

// FromJSON validates a {"fields": [...]} document against the mapping
// schema and returns the list.
func FromJSON(data []byte) ([]string, error) {
	if err := validateMapping(data); err != nil {
		return nil, err
	}
	var cfg struct {
		Fields []string `json:"fields"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal mapping: %w", err)
	}
	return normalize(cfg.Fields)
}

// normalize trims names and enforces the schema invariants: non-empty,
// distinct field names.
func normalize(fields []string) ([]string, error) {
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			return nil, fmt.Errorf("duplicate field name %q in mapping", f)
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("mapping contains no field names")
	}
	return out, nil
}
