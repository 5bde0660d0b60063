package engine

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/roadwatch/vigil/internal/db"
	"github.com/roadwatch/vigil/internal/pattern"
	"github.com/roadwatch/vigil/pkg/models"
)

// TrainOutcome describes how a training request was resolved.
type TrainOutcome string

const (
	// TrainCompleted means a new pattern snapshot was published.
	TrainCompleted TrainOutcome = "completed"
	// TrainSkippedInFlight means another pass was already running; the
	// request was dropped, not queued.
	TrainSkippedInFlight TrainOutcome = "skipped_in_flight"
	// TrainSkippedMinSamples means fewer labeled records exist than the
	// configured minimum; nothing changed.
	TrainSkippedMinSamples TrainOutcome = "skipped_min_samples"
	// TrainSkippedCooldown means the cooldown since the last completed pass
	// has not elapsed yet.
	TrainSkippedCooldown TrainOutcome = "skipped_cooldown"
)

// TrainResult reports the outcome of one training request.
type TrainResult struct {
	Outcome TrainOutcome
	Labeled int
	Version string
}

// Train runs one training pass: it aggregates per-bucket accuracy from the
// labeled subset of the retained window, atomically replaces the pattern
// snapshot, advances the model version and records the training time.
//
// At most one pass executes at a time; a concurrent call returns immediately
// with TrainSkippedInFlight. With fewer labeled records than the configured
// minimum the call is a no-op: neither the snapshot nor the stats change.
// Persistence failures are logged, never raised - the in-memory snapshot
// still serves adjustments for the rest of the process lifetime.
func (e *Engine) Train(ctx context.Context) TrainResult {
	if !e.trainSem.TryAcquire(1) {
		e.log.Debug().Msg("Training already in flight, request dropped")
		return TrainResult{Outcome: TrainSkippedInFlight}
	}
	defer e.trainSem.Release(1)

	e.mu.RLock()
	window := make([]*models.TrainingRecord, len(e.records))
	copy(window, e.records)
	e.mu.RUnlock()

	labeled := pattern.Labeled(window)
	if len(labeled) < e.cfg.MinTrainingSamples {
		e.log.Debug().
			Int("labeled", len(labeled)).
			Int("required", e.cfg.MinTrainingSamples).
			Msg("Not enough labeled records for training")
		return TrainResult{Outcome: TrainSkippedMinSamples, Labeled: len(labeled)}
	}

	snapshot := pattern.Aggregate(labeled)
	version := models.VersionForLabeledCount(len(labeled))

	e.mu.Lock()
	e.patterns = snapshot
	e.stats.ModelVersion = version
	e.stats.LastTrainingEpoch = e.clock.Now().UnixMilli()
	patternsPayload, err := json.Marshal(snapshot)
	if err != nil {
		e.log.Error().Err(err).Msg("Failed to serialize pattern snapshot")
		patternsPayload = nil
	}
	statsPayload := e.marshalStatsLocked()
	e.mu.Unlock()

	e.persist(ctx, db.KeyLearnedPatterns, patternsPayload)
	e.persist(ctx, db.KeyModelStats, statsPayload)

	e.metrics.trainings.Add(ctx, 1)
	e.log.Info().
		Int("labeled", len(labeled)).
		Str("model_version", version).
		Msg("Training pass completed")

	return TrainResult{Outcome: TrainCompleted, Labeled: len(labeled), Version: version}
}

// TrainIfReady runs a training pass only when the labeled window has reached
// the minimum sample count and the cooldown since the last completed pass has
// elapsed. The scheduler uses this as its periodic safety net.
func (e *Engine) TrainIfReady(ctx context.Context) TrainResult {
	e.mu.RLock()
	labeled := e.labeledCountLocked()
	sinceTraining := e.clock.Now().Sub(e.stats.LastTrainingDate())
	e.mu.RUnlock()

	if labeled < e.cfg.MinTrainingSamples {
		return TrainResult{Outcome: TrainSkippedMinSamples, Labeled: labeled}
	}
	if sinceTraining <= e.cfg.TrainingCooldown() {
		return TrainResult{Outcome: TrainSkippedCooldown, Labeled: labeled}
	}
	return e.Train(ctx)
}
