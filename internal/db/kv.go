// Package db defines the persistence contract for the engine's state.
package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("db: key not found")

// Storage keys for the engine's three persisted blobs.
const (
	KeyTrainingRecords = "ai_training_data"
	KeyModelStats      = "ai_model_stats"
	KeyLearnedPatterns = "ai_learned_patterns"
)

// KV is the minimal persistent key-value store the engine needs. Values are
// opaque serialized blobs; the engine owns their encoding.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
