// Package pattern aggregates per-bucket accuracy statistics from labeled
// training records.
package pattern

import "github.com/roadwatch/vigil/pkg/models"

// Labeled returns the subset of records a human moderator has reconciled.
func Labeled(records []*models.TrainingRecord) []*models.TrainingRecord {
	labeled := make([]*models.TrainingRecord, 0, len(records))
	for _, r := range records {
		if r.Labeled() {
			labeled = append(labeled, r)
		}
	}
	return labeled
}

// Aggregate computes a fresh pattern snapshot from labeled records, grouping
// correct/total counts by time of day, post type, photo presence and season.
// The result is a full replacement for any previous snapshot; unlabeled
// records must be filtered out by the caller.
func Aggregate(labeled []*models.TrainingRecord) *models.LearnedPatterns {
	patterns := models.NewLearnedPatterns()
	for _, r := range labeled {
		patterns.Observe(r)
	}
	return patterns
}
