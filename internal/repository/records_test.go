package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) QuoteRowRepository {
	t.Helper()
	repo, err := NewQuoteRowRepository(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAddAndListByBatch(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	batchID := uuid.New()

	rows := []*QuoteRow{
		{BatchID: batchID, SourceName: "a.pdf", Values: map[string]string{"QuoteNumber": "111111"}},
		{BatchID: batchID, SourceName: "b.pdf", Values: map[string]string{"QuoteNumber": "222222"}},
		{BatchID: batchID, SourceName: "c.pdf", Values: map[string]string{"PDF": "c.pdf", "_ERROR": "boom"}, Err: "boom"},
	}
	for _, r := range rows {
		require.NoError(t, repo.Add(ctx, r))
	}

	got, err := repo.ListByBatch(ctx, batchID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// insert order preserved
	assert.Equal(t, "a.pdf", got[0].SourceName)
	assert.Equal(t, "b.pdf", got[1].SourceName)
	assert.Equal(t, "c.pdf", got[2].SourceName)

	assert.Equal(t, "111111", got[0].Values["QuoteNumber"])
	assert.Equal(t, "boom", got[2].Err)
	assert.NotEqual(t, uuid.Nil, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestListByBatchIsolation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	batchA, batchB := uuid.New(), uuid.New()
	require.NoError(t, repo.Add(ctx, &QuoteRow{BatchID: batchA, SourceName: "a.pdf", Values: map[string]string{}}))
	require.NoError(t, repo.Add(ctx, &QuoteRow{BatchID: batchB, SourceName: "b.pdf", Values: map[string]string{}}))

	got, err := repo.ListByBatch(ctx, batchA)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.pdf", got[0].SourceName)
}

func TestListByBatchEmpty(t *testing.T) {
	repo := newTestRepo(t)
	got, err := repo.ListByBatch(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}
