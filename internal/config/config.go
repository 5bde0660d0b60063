// Package config provides configuration management for vigil.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxRecords caps the retained training-record window.
	DefaultMaxRecords = 1000

	// DefaultRetentionDays is how long training records are kept.
	DefaultRetentionDays = 7

	// DefaultMinTrainingSamples is the minimum number of labeled records
	// before a training pass may run.
	DefaultMinTrainingSamples = 20
)

// Config holds the engine configuration.
type Config struct {
	// Database settings
	DBPath      string `yaml:"db_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
	MaxConns    int    `yaml:"max_conns"`

	// Training-window settings
	MaxRecords    int `yaml:"max_records"`
	RetentionDays int `yaml:"retention_days"`

	// Trainer gating
	MinTrainingSamples      int `yaml:"min_training_samples"`
	TrainingCooldownMinutes int `yaml:"training_cooldown_minutes"`

	// Scheduler intervals
	RetrainIntervalMinutes int `yaml:"retrain_interval_minutes"`
	PruneIntervalHours     int `yaml:"prune_interval_hours"`

	// Adjuster settings
	FlipThreshold float64 `yaml:"flip_threshold"`
}

// DataDir returns the data directory path (~/.vigil).
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vigil")
}

// DBPath returns the default database file path.
func DBPath() string {
	return filepath.Join(DataDir(), "vigil.db")
}

// SettingsPath returns the settings file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), "settings.yaml")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0750)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DBPath:                  DBPath(),
		MaxConns:                4,
		MaxRecords:              DefaultMaxRecords,
		RetentionDays:           DefaultRetentionDays,
		MinTrainingSamples:      DefaultMinTrainingSamples,
		TrainingCooldownMinutes: 60,
		RetrainIntervalMinutes:  60,
		PruneIntervalHours:      24,
		FlipThreshold:           0.5,
	}
}

// Load loads configuration from the settings file, merging with defaults.
// A missing or unparsable file yields the defaults.
func Load() (*Config, error) {
	return LoadFile(SettingsPath())
}

// LoadFile loads configuration from the given YAML file, merging with
// defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), nil
	}

	cfg.normalize()
	return cfg, nil
}

// normalize backfills zero or out-of-range values with defaults so a sparse
// settings file never disables the engine's safety gates.
func (c *Config) normalize() {
	d := Default()
	if c.MaxConns <= 0 {
		c.MaxConns = d.MaxConns
	}
	if c.MaxRecords <= 0 {
		c.MaxRecords = d.MaxRecords
	}
	if c.RetentionDays <= 0 {
		c.RetentionDays = d.RetentionDays
	}
	if c.MinTrainingSamples <= 0 {
		c.MinTrainingSamples = d.MinTrainingSamples
	}
	if c.TrainingCooldownMinutes <= 0 {
		c.TrainingCooldownMinutes = d.TrainingCooldownMinutes
	}
	if c.RetrainIntervalMinutes <= 0 {
		c.RetrainIntervalMinutes = d.RetrainIntervalMinutes
	}
	if c.PruneIntervalHours <= 0 {
		c.PruneIntervalHours = d.PruneIntervalHours
	}
	if c.FlipThreshold <= 0 || c.FlipThreshold >= 1 {
		c.FlipThreshold = d.FlipThreshold
	}
}

// TrainingCooldown returns the minimum time between completed training passes.
func (c *Config) TrainingCooldown() time.Duration {
	return time.Duration(c.TrainingCooldownMinutes) * time.Minute
}

// RetrainInterval returns the period of the scheduler's retraining safety net.
func (c *Config) RetrainInterval() time.Duration {
	return time.Duration(c.RetrainIntervalMinutes) * time.Minute
}

// PruneInterval returns the period of the scheduler's pruning task.
func (c *Config) PruneInterval() time.Duration {
	return time.Duration(c.PruneIntervalHours) * time.Hour
}

// Retention returns how long training records are kept.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
