package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgarciaq/finsa-quotes/constants"
	"github.com/mgarciaq/finsa-quotes/internal/common"
)

// FSIngestor reads from the local filesystem.
type FSIngestor struct {
	AllowedExts  map[string]struct{} // lowercased sans '.'; nil -> default set
	MaxFileBytes int64               // 0 -> constants.MaxFileBytes
	MaxFiles     int                 // 0 -> constants.MaxBatchFiles
	Logger       *slog.Logger
}

func NewFSIngestor(logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{Logger: logger}
}

func (i *FSIngestor) allowed(ext string) bool {
	exts := i.AllowedExts
	if exts == nil {
		exts = constants.AllowedExtensions
	}
	_, ok := exts[ext]
	return ok
}

func (i *FSIngestor) maxBytes() int64 {
	if i.MaxFileBytes > 0 {
		return i.MaxFileBytes
	}
	return constants.MaxFileBytes
}

func (i *FSIngestor) maxFiles() int {
	if i.MaxFiles > 0 {
		return i.MaxFiles
	}
	return constants.MaxBatchFiles
}

// IngestPath reads one file, enforcing the extension filter and size cap,
// and computes its content hash.
func (i *FSIngestor) IngestPath(path string) (*SourceFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if ext == "" || !i.allowed(ext) {
		return nil, fmt.Errorf("%w: unsupported or missing extension %q", common.ErrInvalidInput, ext)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadable, err)
	}
	if info.Size() > i.maxBytes() {
		return nil, fmt.Errorf("%w: exceeds %d MB limit", common.ErrInvalidInput, i.maxBytes()>>20)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadable, err)
	}
	sum := sha256.Sum256(data)

	return &SourceFile{
		Path:    abs,
		Name:    filepath.Base(abs),
		Ext:     ext,
		Size:    info.Size(),
		HashHex: hex.EncodeToString(sum[:]),
		Data:    data,
		ReadAt:  time.Now().UTC(),
	}, nil
}

// IngestDirectory walks root, filters by allowed extensions, skips hidden
// entries, and reads each matching file. Oversized files and read failures
// become SkipReasons; the walk never aborts on one bad file. Duplicate
// content (same hash) is kept once. At most MaxFiles documents are
// returned, the rest are skipped with a warning, matching the upload
// surface's batch cap.
func (i *FSIngestor) IngestDirectory(root string) ([]*SourceFile, []SkipReason, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, nil, DirStats{}, errors.New("root path is required")
	}

	var (
		files []*SourceFile
		skips []SkipReason
		stats DirStats
		seen  = map[string]struct{}{}
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			skips = append(skips, SkipReason{Path: path, Reason: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !i.allowed(constants.NormalizeExt(filepath.Ext(path))) {
			return nil
		}
		stats.Matched++

		if len(files) >= i.maxFiles() {
			skips = append(skips, SkipReason{Path: path, Reason: fmt.Sprintf("batch cap of %d files reached", i.maxFiles())})
			stats.Skipped++
			return nil
		}

		sf, err := i.IngestPath(path)
		if err != nil {
			skips = append(skips, SkipReason{Path: path, Reason: err.Error()})
			stats.Skipped++
			return nil
		}
		if _, dup := seen[sf.HashHex]; dup {
			stats.Deduplicated++
			return nil
		}
		seen[sf.HashHex] = struct{}{}
		files = append(files, sf)
		stats.Succeeded++
		return nil
	})
	if err != nil {
		return files, skips, stats, fmt.Errorf("walk: %w", err)
	}

	i.Logger.Info("ingest.dir.ok",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"skipped", stats.Skipped,
	)
	return files, skips, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
