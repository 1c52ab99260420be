// Package cache provides the key/value stores behind export history.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/greensynth/internal/dedupe"
)

// Store is a byte-valued key/value store with per-entry expiry.
type Store interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte, ttl time.Duration) error
	Remove(key string) error
	Purge() error
}

// HistoryKey derives the store key for a snippet. Snippets that dedupe to the
// same key share a history entry.
func HistoryKey(text string) string {
	hash := sha256.Sum256([]byte(dedupe.Key(text)))
	return "greensynth:v1:" + hex.EncodeToString(hash[:])
}
