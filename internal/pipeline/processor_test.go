package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarciaq/finsa-quotes/constants"
	"github.com/mgarciaq/finsa-quotes/internal/ingest"
	"github.com/mgarciaq/finsa-quotes/internal/repository"
	"github.com/mgarciaq/finsa-quotes/internal/textextract"
)

const quoteText = `FINSA INDUSTRIAL S.A. DE C.V.
COTIZACION
No. 445566                         15/03/2024
Cliente: Aceros del Norte S.A.
Monterrey TEL: 8112345678
Moneda: MXN

Modelo                 Cantidad   Precio     Importe
TRX-90210 Banda transportadora
2 PIEZA                           1,500.00   3,000.00

Sub-Total                                    3,000.00
IVA                                            480.00
Total                                        3,480.00
`

func srcFile(name, content string) *ingest.SourceFile {
	data := []byte(content)
	sum := sha256.Sum256(data)
	return &ingest.SourceFile{
		Name:    name,
		Ext:     "txt",
		Size:    int64(len(data)),
		HashHex: hex.EncodeToString(sum[:]),
		Data:    data,
	}
}

func newTestProcessor(t *testing.T) (*Processor, repository.QuoteRowRepository) {
	t.Helper()
	ctx := context.Background()
	repo, err := repository.NewQuoteRowRepository(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	ex := textextract.NewExtractor(textextract.Config{}, nil)
	return NewProcessor(nil, ex, repo, nil), repo
}

func TestProcessBatch(t *testing.T) {
	ctx := context.Background()
	p, repo := newTestProcessor(t)
	batchID := uuid.New()

	files := []*ingest.SourceFile{
		srcFile("quote_a.txt", quoteText),
		srcFile("empty.txt", ""),
	}
	results, err := p.ProcessBatch(ctx, batchID, files)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, constants.JobStatusParsed, results[0].Status)
	require.NotNil(t, results[0].Record)
	assert.Equal(t, "445566", results[0].Record.Get("QuoteNumber"))
	assert.Equal(t, "3480.00", results[0].Record.Get("TotalSales"))
	assert.Empty(t, results[0].Warnings)

	// blank document parses but misses every required field
	assert.Equal(t, constants.JobStatusParsed, results[1].Status)
	assert.Len(t, results[1].Warnings, len(constants.RequiredFields))

	rows, err := repo.ListByBatch(ctx, batchID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "quote_a.txt", rows[0].SourceName)
	assert.Equal(t, "445566", rows[0].Values["QuoteNumber"])
	assert.Equal(t, "empty.txt", rows[1].SourceName)
}

func TestProcessBatchCachesByContent(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestProcessor(t)

	files := []*ingest.SourceFile{
		srcFile("first.txt", quoteText),
		srcFile("second.txt", quoteText),
	}
	_, err := p.ProcessBatch(ctx, uuid.New(), files)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Cache.Len(), "identical content should hit the cache")
}

func TestProcessBatchContainsPanics(t *testing.T) {
	ctx := context.Background()
	p, repo := newTestProcessor(t)
	batchID := uuid.New()

	// nil entry panics inside processOne and must come back as a marker row
	files := []*ingest.SourceFile{
		srcFile("good.txt", quoteText),
		nil,
	}
	results, err := p.ProcessBatch(ctx, batchID, files)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, constants.JobStatusParsed, results[0].Status)
	assert.Equal(t, constants.JobStatusFailed, results[1].Status)
	assert.Contains(t, results[1].Err, "panic")

	rows, err := repo.ListByBatch(ctx, batchID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.NotEmpty(t, rows[1].Err)
	assert.Contains(t, rows[1].Values[constants.ErrorField], "panic")
}

func TestProcessBatchWorkersKeepOrder(t *testing.T) {
	ctx := context.Background()
	p, repo := newTestProcessor(t)
	p.Workers = 4
	batchID := uuid.New()

	files := []*ingest.SourceFile{
		srcFile("a.txt", quoteText),
		srcFile("b.txt", "No. 111111"),
		srcFile("c.txt", "No. 222222"),
		srcFile("d.txt", "No. 333333"),
	}
	results, err := p.ProcessBatch(ctx, batchID, files)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, want := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		assert.Equal(t, want, results[i].SourceName)
	}

	rows, err := repo.ListByBatch(ctx, batchID)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "b.txt", rows[1].SourceName)
	assert.Equal(t, "111111", rows[1].Values["QuoteNumber"])
}

func TestProcessBatchEmpty(t *testing.T) {
	p, repo := newTestProcessor(t)
	batchID := uuid.New()
	results, err := p.ProcessBatch(context.Background(), batchID, nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	rows, err := repo.ListByBatch(context.Background(), batchID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
