package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/greensynth/internal/cache"
	"github.com/ppiankov/greensynth/internal/dedupe"
	"github.com/ppiankov/greensynth/internal/export"
	"github.com/ppiankov/greensynth/internal/model"
	"github.com/ppiankov/greensynth/internal/stats"
)

// Exporter deduplicates a claim set, optionally drops claims found in
// earlier exports, and writes the rest as JSONL.
type Exporter struct {
	history *cache.History // nil disables cross-run suppression
	logger  *zap.Logger
}

// NewExporter creates an exporter. history may be nil.
func NewExporter(history *cache.History, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{history: history, logger: logger}
}

// ExportResult describes what was written.
type ExportResult struct {
	Claims  []model.Claim // claims as written, in order
	Stats   model.Stats   // computed over Claims
	Summary model.ExportSummary
}

// Export writes claims to path. Violations found by the stats pass are
// reported but never block the write. An I/O failure is returned and the
// history is left untouched.
func (e *Exporter) Export(claims []model.Claim, path string) (*ExportResult, error) {
	unique, removed := dedupe.Claims(claims)

	seen := 0
	if e.history != nil {
		unique, seen = e.history.Filter(unique)
	}

	st := stats.Calculate(unique)

	written, err := export.WriteJSONL(path, unique)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	if e.history != nil {
		if _, err := e.history.Record(unique, path); err != nil {
			e.logger.Warn("failed to update export history", zap.Error(err))
		}
	}

	e.logger.Info("exported claims",
		zap.String("path", path),
		zap.Int("written", written),
		zap.Int("duplicates_removed", removed),
		zap.Int("previously_seen", seen),
		zap.Int("violations", len(st.Errors)))

	return &ExportResult{
		Claims: unique,
		Stats:  st,
		Summary: model.ExportSummary{
			Path:              path,
			Input:             len(claims),
			DuplicatesRemoved: removed,
			PreviouslySeen:    seen,
			Written:           written,
		},
	}, nil
}
