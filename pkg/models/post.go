package models

import "time"

// PostType is the category of a reported road event.
type PostType string

const (
	PostTypeDPS      PostType = "dps"
	PostTypePatrol   PostType = "patrol"
	PostTypeAccident PostType = "accident"
	PostTypeCamera   PostType = "camera"
	PostTypeRoadwork PostType = "roadwork"
	PostTypeAnimals  PostType = "animals"
	PostTypeOther    PostType = "other"
)

// Severity is the estimated importance of a reported event.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// PostLifetimes contains how long each event category stays relevant.
// Stationary objects (cameras, roadwork) live far longer than moving ones.
var PostLifetimes = map[PostType]time.Duration{
	PostTypeDPS:      4 * time.Hour,
	PostTypePatrol:   2 * time.Hour,
	PostTypeAccident: 3 * time.Hour,
	PostTypeCamera:   30 * 24 * time.Hour,
	PostTypeRoadwork: 7 * 24 * time.Hour,
	PostTypeAnimals:  1 * time.Hour,
	PostTypeOther:    2 * time.Hour,
}

// RelevanceCheckIntervals contains how often each category should be
// re-checked for relevance.
var RelevanceCheckIntervals = map[PostType]time.Duration{
	PostTypeDPS:      30 * time.Minute,
	PostTypePatrol:   20 * time.Minute,
	PostTypeAccident: 45 * time.Minute,
	PostTypeCamera:   24 * time.Hour,
	PostTypeRoadwork: 24 * time.Hour,
	PostTypeAnimals:  15 * time.Minute,
	PostTypeOther:    30 * time.Minute,
}

// Lifetime returns how long posts of this type stay relevant.
func (t PostType) Lifetime() time.Duration {
	if d, ok := PostLifetimes[t]; ok {
		return d
	}
	return PostLifetimes[PostTypeOther]
}

// RelevanceCheckInterval returns how often posts of this type should be
// re-checked for relevance.
func (t PostType) RelevanceCheckInterval() time.Duration {
	if d, ok := RelevanceCheckIntervals[t]; ok {
		return d
	}
	return RelevanceCheckIntervals[PostTypeOther]
}

// Post is the minimal shape of a road-event post the engine consumes.
// Only ID, Type, photo presence and a bounded description excerpt are used;
// the description is stored for audit, never parsed.
type Post struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id,omitempty"`
	Type           PostType `json:"type"`
	Description    string   `json:"description,omitempty"`
	Severity       Severity `json:"severity,omitempty"`
	Photo          string   `json:"photo,omitempty"`
	Latitude       float64  `json:"latitude,omitempty"`
	Longitude      float64  `json:"longitude,omitempty"`
	CreatedAtEpoch int64    `json:"created_at_epoch,omitempty"`
}

// HasPhoto reports whether the post carries a photo attachment.
func (p *Post) HasPhoto() bool {
	return p.Photo != ""
}

// ExpiresAt returns when the post stops being relevant, based on its type's
// lifetime.
func (p *Post) ExpiresAt() time.Time {
	return time.UnixMilli(p.CreatedAtEpoch).Add(p.Type.Lifetime())
}
