package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostTypeLifetime(t *testing.T) {
	assert.Equal(t, 4*time.Hour, PostTypeDPS.Lifetime())
	assert.Equal(t, 30*24*time.Hour, PostTypeCamera.Lifetime())
	assert.Equal(t, 2*time.Hour, PostType("unknown").Lifetime())
}

func TestPostTypeRelevanceCheckInterval(t *testing.T) {
	assert.Equal(t, 15*time.Minute, PostTypeAnimals.RelevanceCheckInterval())
	assert.Equal(t, 30*time.Minute, PostType("unknown").RelevanceCheckInterval())
}

func TestPostHasPhoto(t *testing.T) {
	assert.False(t, (&Post{}).HasPhoto())
	assert.True(t, (&Post{Photo: "photo.jpg"}).HasPhoto())
}

func TestPostExpiresAt(t *testing.T) {
	created := time.Date(2025, time.June, 15, 14, 0, 0, 0, time.UTC)
	post := &Post{Type: PostTypePatrol, CreatedAtEpoch: created.UnixMilli()}

	assert.Equal(t, created.Add(2*time.Hour), post.ExpiresAt().UTC())
}
