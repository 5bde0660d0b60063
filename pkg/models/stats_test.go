package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// StatsSuite is a test suite for ModelStats.
type StatsSuite struct {
	suite.Suite
	stats *ModelStats
}

func (s *StatsSuite) SetupTest() {
	s.stats = NewModelStats()
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsSuite))
}

// =============================================================================
// GOOD SCENARIOS - Classification of reconciled verdicts
// =============================================================================

func (s *StatsSuite) TestNewModelStats_NoTrainingCompleted() {
	s.Equal("1.0.0", s.stats.ModelVersion)
	s.Zero(s.stats.LastTrainingEpoch)
	s.True(s.stats.LastTrainingDate().Before(time.Unix(1, 0)))
}

func (s *StatsSuite) TestReconcile_CorrectApproval() {
	s.stats.TotalDecisions = 1
	s.stats.Reconcile(DecisionApprove, ModeratorApproved)

	s.EqualValues(1, s.stats.CorrectDecisions)
	s.EqualValues(0, s.stats.FalsePositives)
	s.EqualValues(0, s.stats.FalseNegatives)
	s.InDelta(100.0, s.stats.Accuracy, 0.001)
}

func (s *StatsSuite) TestReconcile_CorrectRejection() {
	s.stats.TotalDecisions = 1
	s.stats.Reconcile(DecisionReject, ModeratorRejected)

	s.EqualValues(1, s.stats.CorrectDecisions)
	s.EqualValues(0, s.stats.FalsePositives)
	s.EqualValues(0, s.stats.FalseNegatives)
}

func (s *StatsSuite) TestReconcile_FalsePositive() {
	// AI approved, moderator rejected
	s.stats.TotalDecisions = 1
	s.stats.Reconcile(DecisionApprove, ModeratorRejected)

	s.EqualValues(0, s.stats.CorrectDecisions)
	s.EqualValues(1, s.stats.FalsePositives)
	s.EqualValues(0, s.stats.FalseNegatives)
	s.InDelta(0.0, s.stats.Accuracy, 0.001)
}

func (s *StatsSuite) TestReconcile_FalseNegative() {
	// AI rejected, moderator approved
	s.stats.TotalDecisions = 1
	s.stats.Reconcile(DecisionReject, ModeratorApproved)

	s.EqualValues(0, s.stats.CorrectDecisions)
	s.EqualValues(0, s.stats.FalsePositives)
	s.EqualValues(1, s.stats.FalseNegatives)
}

func (s *StatsSuite) TestReconcile_ExactlyOneCounterPerVerdict() {
	s.stats.TotalDecisions = 3
	s.stats.Reconcile(DecisionApprove, ModeratorApproved)
	s.stats.Reconcile(DecisionApprove, ModeratorRejected)
	s.stats.Reconcile(DecisionReject, ModeratorApproved)

	total := s.stats.CorrectDecisions + s.stats.FalsePositives + s.stats.FalseNegatives
	s.EqualValues(3, total)
}

// =============================================================================
// EDGE CASES
// =============================================================================

func (s *StatsSuite) TestRecomputeAccuracy_ZeroDecisions() {
	s.stats.CorrectDecisions = 5
	s.stats.TotalDecisions = 0
	s.stats.RecomputeAccuracy()

	s.Zero(s.stats.Accuracy)
}

func (s *StatsSuite) TestVersionForLabeledCount() {
	s.Equal("1.0.0", VersionForLabeledCount(0))
	s.Equal("1.0.20", VersionForLabeledCount(20))
	s.Equal("1.0.99", VersionForLabeledCount(99))
	s.Equal("1.1.0", VersionForLabeledCount(100))
	s.Equal("1.2.47", VersionForLabeledCount(247))
}
