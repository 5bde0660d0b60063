// Package scheduler runs the engine's periodic retraining and pruning tasks.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/roadwatch/vigil/internal/engine"
	"github.com/rs/zerolog"
)

// Trainer is the subset of engine methods the scheduler drives.
type Trainer interface {
	TrainIfReady(ctx context.Context) engine.TrainResult
	Prune(ctx context.Context) int
}

// Config contains the scheduling intervals.
type Config struct {
	// RetrainInterval is the period of the retraining safety net (default 1h).
	RetrainInterval time.Duration `json:"retrain_interval"`
	// PruneInterval is the period between retention pruning runs (default 24h).
	PruneInterval time.Duration `json:"prune_interval"`
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		RetrainInterval: time.Hour,
		PruneInterval:   24 * time.Hour,
	}
}

// Scheduler owns the retraining safety net and the retention pruning loop.
// Reactive training triggers live in the engine; the periodic pass here
// catches the cases those triggers miss (e.g. the app was backgrounded).
type Scheduler struct {
	eng    Trainer
	config Config
	log    zerolog.Logger
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	running bool
}

// New creates a scheduler for the given engine.
func New(eng Trainer, config Config, log zerolog.Logger) *Scheduler {
	if config.RetrainInterval <= 0 {
		config.RetrainInterval = DefaultConfig().RetrainInterval
	}
	if config.PruneInterval <= 0 {
		config.PruneInterval = DefaultConfig().PruneInterval
	}
	return &Scheduler{
		eng:    eng,
		config: config,
		log:    log.With().Str("component", "scheduler").Logger(),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start begins the periodic loops. Call from a goroutine; returns when the
// context is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(s.doneCh)
	}()

	s.log.Info().
		Dur("retrain_interval", s.config.RetrainInterval).
		Dur("prune_interval", s.config.PruneInterval).
		Msg("Scheduler started")

	retrainTicker := time.NewTicker(s.config.RetrainInterval)
	pruneTicker := time.NewTicker(s.config.PruneInterval)
	defer retrainTicker.Stop()
	defer pruneTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Scheduler stopping (context done)")
			return
		case <-s.stopCh:
			s.log.Info().Msg("Scheduler stopping (stop signal)")
			return
		case <-retrainTicker.C:
			s.runRetrain(ctx)
		case <-pruneTicker.C:
			s.runPrune(ctx)
		}
	}
}

// Stop signals the scheduler to shut down gracefully. An in-flight training
// pass is allowed to finish.
func (s *Scheduler) Stop() {
	select {
	case <-s.stopCh:
		// Already stopped
	default:
		close(s.stopCh)
	}
}

// Wait blocks until the scheduler loop has exited.
func (s *Scheduler) Wait() {
	<-s.doneCh
}

func (s *Scheduler) runRetrain(ctx context.Context) {
	start := time.Now()
	result := s.eng.TrainIfReady(ctx)

	switch result.Outcome {
	case engine.TrainCompleted:
		s.log.Info().
			Int("labeled", result.Labeled).
			Str("model_version", result.Version).
			Dur("elapsed", time.Since(start)).
			Msg("Periodic retraining completed")
	default:
		s.log.Debug().
			Str("outcome", string(result.Outcome)).
			Int("labeled", result.Labeled).
			Msg("Periodic retraining skipped")
	}
}

func (s *Scheduler) runPrune(ctx context.Context) {
	dropped := s.eng.Prune(ctx)
	if dropped > 0 {
		s.log.Info().Int("dropped", dropped).Msg("Prune cycle complete")
	}
}
