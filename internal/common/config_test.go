package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "pdftotext", cfg.Extract.Pdftotext)
	assert.Equal(t, 30*time.Second, cfg.Extract.DocTimeout)
	assert.Equal(t, 100, cfg.Batch.MaxFiles)
	assert.Equal(t, 25, cfg.Batch.MaxFileMB)
	assert.True(t, cfg.Batch.Strict)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DOC_TIMEOUT", "5s")
	t.Setenv("BATCH_WORKERS", "4")
	t.Setenv("BATCH_STRICT", "false")

	cfg := LoadConfig()
	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.Extract.DocTimeout)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.False(t, cfg.Batch.Strict)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := LoadConfig()
	cfg.Server.HTTPAddr = ""
	cfg.Batch.MaxFiles = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_ADDR")
	assert.Contains(t, err.Error(), "BATCH_MAX_FILES")
}

func TestValidateNormalizesWorkers(t *testing.T) {
	cfg := LoadConfig()
	cfg.Batch.Workers = -1
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Batch.Workers)
}
