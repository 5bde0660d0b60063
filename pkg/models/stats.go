package models

import (
	"fmt"
	"time"
)

// ModelStats is the engine's rolling aggregate over all recorded decisions.
// One instance lives for the application lifetime and is persisted across
// restarts. Counters only ever grow; Accuracy is derived.
type ModelStats struct {
	TotalDecisions    int64   `json:"total_decisions"`
	CorrectDecisions  int64   `json:"correct_decisions"`
	FalsePositives    int64   `json:"false_positives"`
	FalseNegatives    int64   `json:"false_negatives"`
	Accuracy          float64 `json:"accuracy"`
	LastTrainingEpoch int64   `json:"last_training_epoch"`
	ModelVersion      string  `json:"model_version"`
}

// NewModelStats returns zeroed stats with the initial model version.
// A zero LastTrainingEpoch means no training pass has completed yet, so
// cooldown gating never delays the first pass.
func NewModelStats() *ModelStats {
	return &ModelStats{ModelVersion: "1.0.0"}
}

// Reconcile applies one moderator verdict to the counters. Exactly one of
// CorrectDecisions, FalsePositives or FalseNegatives increments:
// a false positive is an AI approval the moderator rejected, a false
// negative an AI rejection the moderator approved.
func (s *ModelStats) Reconcile(ai Decision, human ModeratorDecision) {
	correct := (ai == DecisionApprove && human == ModeratorApproved) ||
		(ai == DecisionReject && human == ModeratorRejected)

	switch {
	case correct:
		s.CorrectDecisions++
	case ai == DecisionApprove:
		s.FalsePositives++
	default:
		s.FalseNegatives++
	}

	s.RecomputeAccuracy()
}

// RecomputeAccuracy refreshes the derived accuracy percentage.
func (s *ModelStats) RecomputeAccuracy() {
	if s.TotalDecisions <= 0 {
		s.Accuracy = 0
		return
	}
	s.Accuracy = float64(s.CorrectDecisions) / float64(s.TotalDecisions) * 100
}

// LastTrainingDate returns the time of the most recent completed training
// pass, or the Unix epoch when no pass has completed.
func (s *ModelStats) LastTrainingDate() time.Time {
	return time.UnixMilli(s.LastTrainingEpoch)
}

// VersionForLabeledCount derives the model version from the number of labeled
// records the model was trained on. It advances monotonically as labeled data
// grows.
func VersionForLabeledCount(labeled int) string {
	return fmt.Sprintf("1.%d.%d", labeled/100, labeled%100)
}
