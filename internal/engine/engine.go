// Package engine implements the adaptive content-moderation decision engine:
// it records AI approve/reject decisions, reconciles them with human
// moderator verdicts, learns per-bucket accuracy patterns from the labeled
// window, and uses those patterns to adjust future decisions.
package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/goccy/go-json"
	"github.com/roadwatch/vigil/internal/config"
	"github.com/roadwatch/vigil/internal/db"
	"github.com/roadwatch/vigil/pkg/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// Engine is the single owner of the training-record window, the rolling model
// stats and the learned-pattern snapshot. All mutations go through its
// methods; persistence is best-effort and never blocks moderation.
type Engine struct {
	cfg     *config.Config
	store   db.KV
	clock   Clock
	log     zerolog.Logger
	metrics *engineMetrics

	mu       sync.RWMutex
	records  []*models.TrainingRecord
	stats    *models.ModelStats
	patterns *models.LearnedPatterns // nil until the first completed training pass

	trainSem *semaphore.Weighted
	wg       sync.WaitGroup
}

// New creates an engine backed by the given store, using the system clock.
func New(cfg *config.Config, store db.KV, log zerolog.Logger) *Engine {
	return NewWithClock(cfg, store, log, SystemClock())
}

// NewWithClock creates an engine with an injected clock.
func NewWithClock(cfg *config.Config, store db.KV, log zerolog.Logger, clock Clock) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    store,
		clock:    clock,
		log:      log.With().Str("component", "moderation-engine").Logger(),
		metrics:  newEngineMetrics(),
		stats:    models.NewModelStats(),
		trainSem: semaphore.NewWeighted(1),
	}
}

// Load restores the persisted state. Missing or corrupt blobs are logged and
// replaced with defaults; Load itself never fails the caller.
func (e *Engine) Load(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if data, err := e.store.Get(ctx, db.KeyTrainingRecords); err == nil {
		var records []*models.TrainingRecord
		if err := json.Unmarshal(data, &records); err != nil {
			e.log.Warn().Err(err).Msg("Stored training records are corrupt, starting empty")
		} else {
			if len(records) > e.cfg.MaxRecords {
				records = records[len(records)-e.cfg.MaxRecords:]
			}
			e.records = records
		}
	} else if !errors.Is(err, db.ErrNotFound) {
		e.log.Warn().Err(err).Msg("Failed to load training records, starting empty")
	}

	if data, err := e.store.Get(ctx, db.KeyModelStats); err == nil {
		var stats models.ModelStats
		if err := json.Unmarshal(data, &stats); err != nil {
			e.log.Warn().Err(err).Msg("Stored model stats are corrupt, starting fresh")
		} else {
			e.stats = &stats
		}
	} else if !errors.Is(err, db.ErrNotFound) {
		e.log.Warn().Err(err).Msg("Failed to load model stats, starting fresh")
	}

	if data, err := e.store.Get(ctx, db.KeyLearnedPatterns); err == nil {
		var patterns models.LearnedPatterns
		if err := json.Unmarshal(data, &patterns); err != nil {
			e.log.Warn().Err(err).Msg("Stored patterns are corrupt, adjustments disabled until retraining")
		} else {
			e.patterns = &patterns
		}
	} else if !errors.Is(err, db.ErrNotFound) {
		e.log.Warn().Err(err).Msg("Failed to load learned patterns")
	}

	e.log.Info().
		Int("records", len(e.records)).
		Int64("total_decisions", e.stats.TotalDecisions).
		Str("model_version", e.stats.ModelVersion).
		Bool("patterns_loaded", e.patterns != nil).
		Msg("Engine state loaded")
}

// Close waits for any in-flight asynchronous training pass to finish.
// Training is all-or-nothing, so a pass that already started is allowed to
// complete rather than being interrupted.
func (e *Engine) Close() {
	e.wg.Wait()
}

// Stats returns a copy of the current model statistics.
func (e *Engine) Stats() models.ModelStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return *e.stats
}

// Records returns a copy of the retained training-record window, oldest
// first. The records themselves are shared; callers must not mutate them.
func (e *Engine) Records() []*models.TrainingRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*models.TrainingRecord, len(e.records))
	copy(out, e.records)
	return out
}

// Patterns returns the current learned-pattern snapshot, or nil before the
// first completed training pass. The snapshot is read-only: training replaces
// it wholesale and never mutates a published one.
func (e *Engine) Patterns() *models.LearnedPatterns {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.patterns
}

// LabeledCount returns the number of reconciled records in the window.
func (e *Engine) LabeledCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.labeledCountLocked()
}

func (e *Engine) labeledCountLocked() int {
	count := 0
	for _, r := range e.records {
		if r.Labeled() {
			count++
		}
	}
	return count
}

// Prune drops records older than the retention window and persists the
// result. It returns the number of dropped records. The record cap is
// enforced at insertion time instead, so Prune only looks at age.
func (e *Engine) Prune(ctx context.Context) int {
	cutoff := e.clock.Now().Add(-e.cfg.Retention()).UnixMilli()

	e.mu.Lock()
	kept := e.records[:0]
	for _, r := range e.records {
		if r.CreatedAtEpoch > cutoff {
			kept = append(kept, r)
		}
	}
	dropped := len(e.records) - len(kept)
	e.records = kept
	var payload []byte
	if dropped > 0 {
		payload = e.marshalRecordsLocked()
	}
	e.mu.Unlock()

	if dropped > 0 {
		e.persist(ctx, db.KeyTrainingRecords, payload)
		e.log.Info().Int("dropped", dropped).Msg("Pruned expired training records")
	}
	return dropped
}

// marshalRecordsLocked serializes the record window. Callers must hold mu.
func (e *Engine) marshalRecordsLocked() []byte {
	data, err := json.Marshal(e.records)
	if err != nil {
		e.log.Error().Err(err).Msg("Failed to serialize training records")
		return nil
	}
	return data
}

// marshalStatsLocked serializes the model stats. Callers must hold mu.
func (e *Engine) marshalStatsLocked() []byte {
	data, err := json.Marshal(e.stats)
	if err != nil {
		e.log.Error().Err(err).Msg("Failed to serialize model stats")
		return nil
	}
	return data
}

// persist writes one serialized blob. Failures are logged and swallowed:
// moderation proceeds on in-memory state regardless of storage health.
// Blobs are marshaled under the state lock but written outside it, so
// concurrent recordings can land out of order and a stale snapshot can
// briefly win; every mutation rewrites the full blob, so the store converges
// on the in-memory state at the next write.
func (e *Engine) persist(ctx context.Context, key string, data []byte) {
	if data == nil {
		return
	}
	if err := e.store.Set(ctx, key, data); err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("Failed to persist engine state")
	}
}
