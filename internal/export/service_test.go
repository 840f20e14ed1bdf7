package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mgarciaq/finsa-quotes/internal/repository"
)

func seedBatch(t *testing.T) (repository.QuoteRowRepository, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	repo, err := repository.NewQuoteRowRepository(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	batchID := uuid.New()
	require.NoError(t, repo.Add(ctx, &repository.QuoteRow{
		BatchID:    batchID,
		SourceName: "a.pdf",
		Values: map[string]string{
			"QuoteNumber": "123456",
			"Company":     "Aceros del Norte",
			"TotalSales":  "64375.36",
		},
	}))
	require.NoError(t, repo.Add(ctx, &repository.QuoteRow{
		BatchID:    batchID,
		SourceName: "b.pdf",
		Values: map[string]string{
			"QuoteNumber": "654321",
			"Company":     "Química López",
		},
	}))
	return repo, batchID
}

var testFields = []string{"QuoteNumber", "Company", "TotalSales"}

func TestExportCSV(t *testing.T) {
	repo, batchID := seedBatch(t)
	svc := NewService(repo, nil)

	out, err := svc.ExportCSV(context.Background(), batchID, testFields)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, utf8BOM), "csv should start with a UTF-8 BOM")
	recs, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, utf8BOM))).ReadAll()
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, testFields, recs[0])
	assert.Equal(t, []string{"123456", "Aceros del Norte", "64375.36"}, recs[1])
	assert.Equal(t, []string{"654321", "Química López", ""}, recs[2])
}

func TestExportCSVEmptyBatch(t *testing.T) {
	repo, _ := seedBatch(t)
	svc := NewService(repo, nil)

	out, err := svc.ExportCSV(context.Background(), uuid.New(), testFields)
	require.NoError(t, err)

	recs, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 1, "header only")
	assert.Equal(t, testFields, recs[0])
}

func TestExportXLSX(t *testing.T) {
	repo, batchID := seedBatch(t)
	svc := NewService(repo, nil)

	out, err := svc.ExportXLSX(context.Background(), batchID, testFields)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Quotes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, testFields, rows[0])
	assert.Equal(t, []string{"123456", "Aceros del Norte", "64375.36"}, rows[1])
	assert.Equal(t, "Química López", rows[2][1])
}
