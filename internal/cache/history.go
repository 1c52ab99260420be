package cache

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ppiankov/greensynth/internal/export"
	"github.com/ppiankov/greensynth/internal/model"
)

// HistoryEntry points at the export a snippet was first seen in.
type HistoryEntry struct {
	Path string `json:"path"`
}

// History remembers snippets already present in earlier exports so they can
// be skipped. It is rebuilt from the JSONL files on every run; nothing is
// persisted besides the exports themselves.
type History struct {
	store  Store
	logger *zap.Logger
}

// NewHistory creates an empty in-memory history.
func NewHistory(logger *zap.Logger) *History {
	return NewHistoryWithStore(NewMemoryStore(NoExpiration, 0), logger)
}

// NewHistoryWithStore creates a history over an existing store.
func NewHistoryWithStore(store Store, logger *zap.Logger) *History {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &History{store: store, logger: logger}
}

// LoadGlob loads every export matching pattern and returns the number of
// snippets added.
func (h *History) LoadGlob(pattern string) (int, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("history pattern %q: %w", pattern, err)
	}
	return h.Load(paths...)
}

// Load reads the given exports. Invalid lines are ignored.
func (h *History) Load(paths ...string) (int, error) {
	added := 0
	for _, path := range paths {
		claims, invalid, err := export.ReadJSONL(path)
		if err != nil {
			return added, fmt.Errorf("load history: %w", err)
		}
		if len(invalid) > 0 {
			h.logger.Debug("ignoring invalid lines in earlier export",
				zap.String("path", path), zap.Int("lines", len(invalid)))
		}
		n, err := h.Record(claims, path)
		if err != nil {
			return added, err
		}
		added += n
	}
	h.logger.Debug("export history loaded", zap.Int("files", len(paths)), zap.Int("snippets", added))
	return added, nil
}

// Lookup returns the history entry for a snippet, if any.
func (h *History) Lookup(text string) (HistoryEntry, bool) {
	data, ok := h.store.Get(HistoryKey(text))
	if !ok {
		return HistoryEntry{}, false
	}
	var entry HistoryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return HistoryEntry{}, false
	}
	return entry, true
}

// Filter drops claims found in the history and returns the remaining claims
// in order along with the number skipped.
func (h *History) Filter(claims []model.Claim) ([]model.Claim, int) {
	fresh := make([]model.Claim, 0, len(claims))
	for _, c := range claims {
		if entry, ok := h.Lookup(c.TextSnippet); ok {
			h.logger.Debug("skipping previously exported claim", zap.String("export", entry.Path))
			continue
		}
		fresh = append(fresh, c)
	}
	return fresh, len(claims) - len(fresh)
}

// Record adds claims exported to path. Snippets already known keep their
// original entry. It returns the number of new snippets.
func (h *History) Record(claims []model.Claim, path string) (int, error) {
	data, err := json.Marshal(HistoryEntry{Path: path})
	if err != nil {
		return 0, fmt.Errorf("marshal history entry: %w", err)
	}

	added := 0
	for _, c := range claims {
		key := HistoryKey(c.TextSnippet)
		if _, ok := h.store.Get(key); ok {
			continue
		}
		if err := h.store.Put(key, data, 0); err != nil {
			return added, fmt.Errorf("record history: %w", err)
		}
		added++
	}
	return added, nil
}

// Clear forgets every snippet.
func (h *History) Clear() error {
	return h.store.Purge()
}
