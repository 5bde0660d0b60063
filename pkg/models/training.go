// Package models contains domain models for vigil.
package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Decision represents the engine's verdict on a submitted post.
type Decision string

const (
	// DecisionApprove publishes the post immediately.
	DecisionApprove Decision = "approve"
	// DecisionReject holds the post for human review.
	DecisionReject Decision = "reject"
)

// ModeratorDecision is a human moderator's verdict on a post.
type ModeratorDecision string

const (
	ModeratorApproved ModeratorDecision = "approved"
	ModeratorRejected ModeratorDecision = "rejected"
)

// UserFeedback is an end-user's reaction to a moderation outcome.
// It is stored as an auxiliary signal and never feeds into training.
type UserFeedback string

const (
	FeedbackPositive UserFeedback = "positive"
	FeedbackNegative UserFeedback = "negative"
)

// TimeOfDay is the daypart bucket a timestamp falls into.
type TimeOfDay string

const (
	TimeMorning TimeOfDay = "morning"
	TimeDay     TimeOfDay = "day"
	TimeEvening TimeOfDay = "evening"
	TimeNight   TimeOfDay = "night"
)

// Season is the season bucket a timestamp falls into
// (Northern-hemisphere convention).
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// ExcerptLength bounds the description snapshot stored on a training record.
const ExcerptLength = 200

// TimeOfDayAt returns the daypart bucket for t.
// Every hour of the day maps to exactly one bucket.
func TimeOfDayAt(t time.Time) TimeOfDay {
	switch hour := t.Hour(); {
	case hour >= 6 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 18:
		return TimeDay
	case hour >= 18 && hour < 22:
		return TimeEvening
	default:
		return TimeNight
	}
}

// SeasonAt returns the season bucket for t.
// Every month maps to exactly one bucket.
func SeasonAt(t time.Time) Season {
	switch month := int(t.Month()); {
	case month >= 3 && month <= 5:
		return SeasonSpring
	case month >= 6 && month <= 8:
		return SeasonSummer
	case month >= 9 && month <= 11:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// Context is the categorical context derived from a submission timestamp.
type Context struct {
	TimeOfDay TimeOfDay `json:"time_of_day"`
	Season    Season    `json:"season"`
}

// DeriveContext derives the full categorical context for t.
func DeriveContext(t time.Time) Context {
	return Context{
		TimeOfDay: TimeOfDayAt(t),
		Season:    SeasonAt(t),
	}
}

// TrainingRecord is one observation of a moderation decision. The AI fields
// are fixed at creation; ModeratorDecision and UserFeedback are each set at
// most once, later, by reconciliation and end-user feedback respectively.
type TrainingRecord struct {
	ID                 string            `json:"id"`
	PostID             string            `json:"post_id"`
	PostType           PostType          `json:"post_type"`
	DescriptionExcerpt string            `json:"description_excerpt"`
	HasPhoto           bool              `json:"has_photo"`
	AIDecision         Decision          `json:"ai_decision"`
	AIConfidence       float64           `json:"ai_confidence"`
	ModeratorDecision  ModeratorDecision `json:"moderator_decision,omitempty"`
	UserFeedback       UserFeedback      `json:"user_feedback,omitempty"`
	CreatedAtEpoch     int64             `json:"created_at_epoch"`
	TimeOfDay          TimeOfDay         `json:"time_of_day"`
	Season             Season            `json:"season"`
}

// NewTrainingRecord creates a record for an AI decision made at now.
// The description is truncated to at most ExcerptLength bytes on a rune
// boundary, and the time context is derived once, here, from the creation
// timestamp.
func NewTrainingRecord(post *Post, decision Decision, confidence float64, now time.Time) *TrainingRecord {
	excerpt := post.Description
	if len(excerpt) > ExcerptLength {
		cut := ExcerptLength
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}

	return &TrainingRecord{
		ID:                 uuid.NewString(),
		PostID:             post.ID,
		PostType:           post.Type,
		DescriptionExcerpt: excerpt,
		HasPhoto:           post.HasPhoto(),
		AIDecision:         decision,
		AIConfidence:       confidence,
		CreatedAtEpoch:     now.UnixMilli(),
		TimeOfDay:          TimeOfDayAt(now),
		Season:             SeasonAt(now),
	}
}

// Labeled reports whether a human moderator has reconciled this record.
func (r *TrainingRecord) Labeled() bool {
	return r.ModeratorDecision != ""
}

// CorrectAgainst reports whether the AI decision agrees with the given
// moderator verdict.
func (r *TrainingRecord) CorrectAgainst(decision ModeratorDecision) bool {
	return (r.AIDecision == DecisionApprove && decision == ModeratorApproved) ||
		(r.AIDecision == DecisionReject && decision == ModeratorRejected)
}

// CreatedAt returns the record's creation time.
func (r *TrainingRecord) CreatedAt() time.Time {
	return time.UnixMilli(r.CreatedAtEpoch)
}
