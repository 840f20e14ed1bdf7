package textextract

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Cache memoizes extraction results keyed by document content, so an
// identical document seen twice in one batch is converted once. It lives
// outside the field-extraction engine, which stays a pure function of text.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Result
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]Result)}
}

// Key is the content address of a document: its SHA-256, hex-encoded.
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c *Cache) Get(key string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	return res, ok
}

func (c *Cache) Put(key string, res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res
}

// Len reports how many distinct documents have been cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
