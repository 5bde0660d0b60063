package engine

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// engineMetrics holds the engine's instrument handles. Instruments come from
// the global meter provider, so they are no-ops unless the host application
// installs one.
type engineMetrics struct {
	decisions       metric.Int64Counter
	reconciliations metric.Int64Counter
	trainings       metric.Int64Counter
}

func newEngineMetrics() *engineMetrics {
	meter := otel.Meter("github.com/roadwatch/vigil/internal/engine")

	decisions, _ := meter.Int64Counter("vigil.decisions.recorded",
		metric.WithDescription("AI moderation decisions recorded"))
	reconciliations, _ := meter.Int64Counter("vigil.decisions.reconciled",
		metric.WithDescription("Moderator verdicts reconciled against AI decisions"))
	trainings, _ := meter.Int64Counter("vigil.training.passes",
		metric.WithDescription("Completed training passes"))

	return &engineMetrics{
		decisions:       decisions,
		reconciliations: reconciliations,
		trainings:       trainings,
	}
}
