// Package severity implements the deterministic severity/approval heuristic
// that sits upstream of the moderation engine. It supplies the base
// decision/confidence pair the engine's adjuster refines; it never consults
// learned patterns itself.
package severity

import (
	"strings"
	"time"

	"github.com/roadwatch/vigil/pkg/models"
)

// defaultSeverities contains the baseline severity per event category.
var defaultSeverities = map[models.PostType]models.Severity{
	models.PostTypeDPS:      models.SeverityLow,
	models.PostTypePatrol:   models.SeverityMedium,
	models.PostTypeAccident: models.SeverityHigh,
	models.PostTypeCamera:   models.SeverityLow,
	models.PostTypeRoadwork: models.SeverityMedium,
	models.PostTypeAnimals:  models.SeverityMedium,
	models.PostTypeOther:    models.SeverityMedium,
}

// Estimate returns the severity for an event of the given type reported at
// now. The baseline per-type severity is escalated one level in the evening,
// at night (poor visibility) and in winter (ice and snow).
func Estimate(postType models.PostType, now time.Time) models.Severity {
	sev, ok := defaultSeverities[postType]
	if !ok {
		sev = models.SeverityMedium
	}

	switch models.TimeOfDayAt(now) {
	case models.TimeNight:
		sev = escalate(escalate(sev))
	case models.TimeEvening:
		sev = escalate(sev)
	}
	if models.SeasonAt(now) == models.SeasonWinter {
		sev = escalate(sev)
	}
	return sev
}

func escalate(s models.Severity) models.Severity {
	switch s {
	case models.SeverityLow:
		return models.SeverityMedium
	case models.SeverityMedium:
		return models.SeverityHigh
	default:
		return models.SeverityHigh
	}
}

// BaseDecision produces the base approve/reject verdict and confidence for a
// submitted post. Posts with supporting evidence (a photo, a substantive
// description) earn confidence; bare submissions lose it. The returned
// confidence is always within [0,1].
func BaseDecision(post *models.Post) (models.Decision, float64) {
	confidence := 0.5

	if post.HasPhoto() {
		confidence += 0.25
	}
	desc := strings.TrimSpace(post.Description)
	switch {
	case len(desc) >= 20:
		confidence += 0.15
	case len(desc) == 0:
		confidence -= 0.15
	}
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}

	if confidence >= 0.5 {
		return models.DecisionApprove, confidence
	}
	return models.DecisionReject, confidence
}
