// Package ingest collects candidate quote documents from the filesystem:
// extension filtering, size caps, and content hashing for dedup. Nothing is
// copied or persisted; ingestion yields the bytes the pipeline parses.
package ingest

import "time"

// SourceFile is one document handed to the pipeline.
type SourceFile struct {
	Path    string
	Name    string
	Ext     string
	Size    int64
	HashHex string
	Data    []byte
	ReadAt  time.Time
}

// SkipReason marks a document excluded before extraction was attempted.
// Reported as a warning, never as an extraction error.
type SkipReason struct {
	Path   string
	Reason string
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Skipped      uint32
	Failed       uint32
}
