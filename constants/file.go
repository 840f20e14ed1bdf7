package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for quote ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// MaxFileBytes is the default per-file size cap (25 MB, matching the
// issuer portal's upload limit). Larger files are skipped with a warning.
const MaxFileBytes = 25 << 20

// MaxBatchFiles is the default cap on documents per batch.
const MaxBatchFiles = 100

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
