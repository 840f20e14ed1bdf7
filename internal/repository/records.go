// Package repository stages parsed quote rows for the duration of one run.
// The store is an in-memory SQLite database: rows live only as long as the
// batch, which keeps the no-persistence contract while letting the exporter
// read them back in insert order.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// QuoteRow is one parsed document staged for export. Values holds the
// record's field values; Err carries the per-document error note for
// documents whose extraction failed outright.
type QuoteRow struct {
	ID         uuid.UUID
	BatchID    uuid.UUID
	SourceName string
	Values     map[string]string
	Err        string
	CreatedAt  time.Time
}

type QuoteRowRepository interface {
	Add(ctx context.Context, row *QuoteRow) error
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*QuoteRow, error)
	Close() error
}

type quoteRowRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS quote_rows (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL,
	batch_id    TEXT NOT NULL,
	source_name TEXT NOT NULL,
	payload     TEXT NOT NULL,
	error_note  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quote_rows_batch ON quote_rows(batch_id);`

// NewQuoteRowRepository opens a fresh in-memory store. A single connection
// is pinned so every statement sees the same memory database.
func NewQuoteRowRepository(ctx context.Context, logger *slog.Logger) (QuoteRowRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}
	return &quoteRowRepository{db: db, logger: logger}, nil
}

func (r *quoteRowRepository) Add(ctx context.Context, row *QuoteRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(row.Values)
	if err != nil {
		return fmt.Errorf("encode row payload: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quote_rows (id, batch_id, source_name, payload, error_note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		row.ID.String(), row.BatchID.String(), row.SourceName, string(payload), row.Err, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote row: %w", err)
	}
	r.logger.Debug("store.row.added", "batch_id", row.BatchID, "source", row.SourceName)
	return nil
}

func (r *quoteRowRepository) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*QuoteRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, batch_id, source_name, payload, error_note, created_at
		 FROM quote_rows WHERE batch_id = ? ORDER BY seq`,
		batchID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query quote rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*QuoteRow
	for rows.Next() {
		var (
			q       QuoteRow
			id, bid string
			payload string
		)
		if err := rows.Scan(&id, &bid, &q.SourceName, &payload, &q.Err, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote row: %w", err)
		}
		if q.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse row id: %w", err)
		}
		if q.BatchID, err = uuid.Parse(bid); err != nil {
			return nil, fmt.Errorf("parse batch id: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &q.Values); err != nil {
			return nil, fmt.Errorf("decode row payload: %w", err)
		}
		out = append(out, &q)
	}
	return out, rows.Err()
}

func (r *quoteRowRepository) Close() error {
	return r.db.Close()
}
