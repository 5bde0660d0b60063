package engine

import "github.com/roadwatch/vigil/pkg/models"

// EnhancedResult is the adjuster's output. Applied distinguishes a real
// pattern-based adjustment from a fallback to the base decision, so callers
// and tests can tell which path was taken.
type EnhancedResult struct {
	Decision   models.Decision
	Confidence float64
	Applied    bool // a learned-pattern adjustment was applied
	Flipped    bool // the adjusted confidence crossed the flip threshold
	Factors    int  // number of bucket accuracies averaged into the adjustment
}

// EnhancedDecision combines a base heuristic decision with the learned
// bucket accuracies. For each of the four bucket dimensions (current time of
// day, post type, photo presence, current season) with a non-empty bucket,
// the bucket's accuracy ratio joins the adjustment list; the base confidence
// is scaled by the list's average. An adjusted confidence below the flip
// threshold inverts the decision with confidence 1-adjusted; otherwise the
// base decision keeps the adjusted confidence, capped at 1.
//
// Before any training pass, or when no applicable bucket exists, the base
// decision and confidence come back unchanged. The method is read-only with
// respect to engine state and always produces a decision.
func (e *Engine) EnhancedDecision(baseDecision models.Decision, baseConfidence float64, postType models.PostType, hasPhoto bool) EnhancedResult {
	baseConfidence = clamp01(baseConfidence)
	base := EnhancedResult{Decision: baseDecision, Confidence: baseConfidence}

	e.mu.RLock()
	patterns := e.patterns
	now := e.clock.Now()
	threshold := e.cfg.FlipThreshold
	e.mu.RUnlock()

	if patterns == nil {
		return base
	}

	var factors []float64
	if b := patterns.ByTimeOfDay[models.TimeOfDayAt(now)]; b != nil && b.Total > 0 {
		factors = append(factors, b.Accuracy())
	}
	if b := patterns.ByPostType[postType]; b != nil && b.Total > 0 {
		factors = append(factors, b.Accuracy())
	}
	if b := patterns.ByPhoto[models.PhotoKey(hasPhoto)]; b != nil && b.Total > 0 {
		factors = append(factors, b.Accuracy())
	}
	if b := patterns.BySeason[models.SeasonAt(now)]; b != nil && b.Total > 0 {
		factors = append(factors, b.Accuracy())
	}

	if len(factors) == 0 {
		return base
	}

	sum := 0.0
	for _, f := range factors {
		sum += f
	}
	adjusted := baseConfidence * (sum / float64(len(factors)))

	result := EnhancedResult{
		Decision:   baseDecision,
		Confidence: min(adjusted, 1),
		Applied:    true,
		Factors:    len(factors),
	}
	if adjusted < threshold {
		result.Flipped = true
		result.Confidence = 1 - adjusted
		if baseDecision == models.DecisionApprove {
			result.Decision = models.DecisionReject
		} else {
			result.Decision = models.DecisionApprove
		}
	}
	return result
}
