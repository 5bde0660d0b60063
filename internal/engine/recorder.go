package engine

import (
	"context"

	"github.com/roadwatch/vigil/internal/db"
	"github.com/roadwatch/vigil/pkg/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RecordAIDecision appends a training record for an AI decision made now and
// increments the total-decision counter. Confidence is clamped to [0,1] and
// the time context is derived from the engine clock at call time. The window
// is capped at the configured maximum, oldest records dropped first.
//
// Returns the created record, or nil if the post is missing its id or type.
func (e *Engine) RecordAIDecision(ctx context.Context, post *models.Post, decision models.Decision, confidence float64) *models.TrainingRecord {
	if post == nil || post.ID == "" || post.Type == "" {
		e.log.Warn().Msg("Ignoring AI decision for post without id or type")
		return nil
	}
	confidence = clamp01(confidence)

	e.mu.Lock()
	record := models.NewTrainingRecord(post, decision, confidence, e.clock.Now())
	e.records = append(e.records, record)
	if len(e.records) > e.cfg.MaxRecords {
		e.records = e.records[len(e.records)-e.cfg.MaxRecords:]
	}
	e.stats.TotalDecisions++
	recordsPayload := e.marshalRecordsLocked()
	statsPayload := e.marshalStatsLocked()
	e.mu.Unlock()

	e.persist(ctx, db.KeyTrainingRecords, recordsPayload)
	e.persist(ctx, db.KeyModelStats, statsPayload)

	e.metrics.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("decision", string(decision)),
		attribute.String("post_type", string(post.Type)),
	))
	e.log.Debug().
		Str("post_id", post.ID).
		Str("decision", string(decision)).
		Float64("confidence", confidence).
		Msg("AI decision recorded")

	return record
}

// RecordModeratorDecision reconciles a human verdict with the unlabeled
// records for the given post, updating the rolling counters. Records that
// already carry a moderator decision are left untouched, so a second call for
// the same post is a no-op and never double-counts.
//
// When the labeled window has reached the minimum sample count and the
// training cooldown has elapsed, a training pass is triggered asynchronously;
// this call does not block on its completion.
func (e *Engine) RecordModeratorDecision(ctx context.Context, postID string, decision models.ModeratorDecision) {
	if postID == "" {
		return
	}

	e.mu.Lock()
	reconciled := 0
	for _, r := range e.records {
		if r.PostID != postID || r.Labeled() {
			continue
		}
		r.ModeratorDecision = decision
		e.stats.Reconcile(r.AIDecision, decision)
		reconciled++
	}
	if reconciled == 0 {
		e.mu.Unlock()
		return
	}
	labeled := e.labeledCountLocked()
	sinceTraining := e.clock.Now().Sub(e.stats.LastTrainingDate())
	recordsPayload := e.marshalRecordsLocked()
	statsPayload := e.marshalStatsLocked()
	e.mu.Unlock()

	e.persist(ctx, db.KeyTrainingRecords, recordsPayload)
	e.persist(ctx, db.KeyModelStats, statsPayload)

	e.metrics.reconciliations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("verdict", string(decision)),
	))
	e.log.Debug().
		Str("post_id", postID).
		Str("verdict", string(decision)).
		Int("records", reconciled).
		Msg("Moderator decision reconciled")

	if labeled >= e.cfg.MinTrainingSamples && sinceTraining > e.cfg.TrainingCooldown() {
		e.trainAsync(ctx)
	}
}

// RecordUserFeedback attaches end-user feedback to the records for a post.
// Feedback is write-once and informational only: it never feeds into the
// rolling stats or training.
func (e *Engine) RecordUserFeedback(ctx context.Context, postID string, feedback models.UserFeedback) {
	if postID == "" {
		return
	}

	e.mu.Lock()
	updated := 0
	for _, r := range e.records {
		if r.PostID != postID || r.UserFeedback != "" {
			continue
		}
		r.UserFeedback = feedback
		updated++
	}
	var payload []byte
	if updated > 0 {
		payload = e.marshalRecordsLocked()
	}
	e.mu.Unlock()

	if updated == 0 {
		return
	}
	e.persist(ctx, db.KeyTrainingRecords, payload)
	e.log.Debug().
		Str("post_id", postID).
		Str("feedback", string(feedback)).
		Msg("User feedback recorded")
}

// trainAsync starts a training pass without blocking the caller. The pass
// outlives the triggering request's context.
func (e *Engine) trainAsync(ctx context.Context) {
	detached := context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.Train(detached)
	}()
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
