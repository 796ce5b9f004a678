// Package config centralizes the runtime knobs a scheduler run is
// parameterized by: seed, timeout, thread count, per-tier verbosity,
// analyzer threshold direction, partition size, and a snapshot
// directory. It follows the functional-options idiom used throughout
// this repo's builders, assembled once by Option constructors and read
// thereafter as a plain value.
package config

import "time"

// ThresholdMode selects which direction the analyzer's acceptance
// threshold moves as a job tightens its search.
type ThresholdMode int

const (
	// Ascending accepts scores at or below the threshold; it starts
	// strict and raises the threshold over time.
	Ascending ThresholdMode = iota
	// Descending accepts scores at or above the threshold; it starts
	// strict and lowers the threshold over time.
	Descending
)

// Config holds the environment/flag-level settings a run is launched
// with. Zero value is a usable, fully deterministic single-threaded
// configuration.
type Config struct {
	Seed          int64
	Timeout       time.Duration
	Threads       int
	Verbosity     []int
	ThresholdMode ThresholdMode
	// PartitionSize is accepted for compatibility with the environment
	// this was ported from but is not consulted by anything in this
	// repo; partitioning is out of scope.
	PartitionSize int
	SnapshotDir   string
}

// Option customizes a Config by mutating it before a run begins. As a
// rule, option constructors never panic at runtime and ignore
// meaningless inputs (zero/nil) rather than rejecting them, matching
// this repo's builder options.
type Option func(*Config)

// New returns a Config initialized with defaults, then applies each
// Option in order. Defaults: Seed 1, no timeout, Threads 1, no
// verbosity overrides, Ascending threshold mode, PartitionSize 0, no
// snapshot directory.
func New(opts ...Option) Config {
	cfg := Config{
		Seed:          1,
		Threads:       1,
		ThresholdMode: Ascending,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSeed sets the RNG seed driving oracle sampling and fan-in policy
// choice.
func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithTimeout sets the soft deadline a scheduler run honors. A
// non-positive value is a no-op, leaving the run untimed.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithThreads sets the worker pool size. A non-positive value is a
// no-op.
func WithThreads(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Threads = n
		}
	}
}

// WithVerbosity sets per-tier verbosity levels. A nil slice is a
// no-op.
func WithVerbosity(levels []int) Option {
	return func(c *Config) {
		if levels != nil {
			c.Verbosity = levels
		}
	}
}

// WithThresholdMode sets the analyzer's threshold direction.
func WithThresholdMode(m ThresholdMode) Option {
	return func(c *Config) {
		c.ThresholdMode = m
	}
}

// WithPartitionSize records a partition size for environment
// compatibility. Accepted and stored but otherwise ignored.
func WithPartitionSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.PartitionSize = n
		}
	}
}

// WithSnapshotDir sets the directory periodic snapshots would be
// written to. An empty string is a no-op.
func WithSnapshotDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.SnapshotDir = dir
		}
	}
}
