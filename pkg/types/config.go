// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ScoreWeights holds the confidence-scoring constants for one format. The
// values are heuristic configuration, not derived quantities; defaults match
// the documented behavior but callers may tune them.
type ScoreWeights struct {
	// Base is the starting score before any evidence is counted.
	Base int `json:"base" yaml:"base"`

	// PerEntity is added once per format-specific entity hit.
	PerEntity int `json:"per_entity" yaml:"per_entity"`

	// EntityCap bounds the total per-entity contribution.
	EntityCap int `json:"entity_cap" yaml:"entity_cap"`

	// PerSection is added once per detected topic/section beyond the first.
	PerSection int `json:"per_section" yaml:"per_section"`

	// SectionCap bounds the total per-section contribution.
	SectionCap int `json:"section_cap" yaml:"section_cap"`

	// StructuralBonus is a flat award for format-specific structural signals.
	StructuralBonus int `json:"structural_bonus" yaml:"structural_bonus"`
}

// DefaultScoreWeights returns the stock weights used when none are configured.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Base:            40,
		PerEntity:       5,
		EntityCap:       30,
		PerSection:      5,
		SectionCap:      20,
		StructuralBonus: 10,
	}
}

// EngineConfig holds settings for the format engines.
type EngineConfig struct {
	// Weights overrides the confidence weights per format. Formats absent
	// from the map use DefaultScoreWeights.
	Weights map[FormatType]ScoreWeights `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// WeightsFor returns the configured weights for f, or the defaults.
func (c EngineConfig) WeightsFor(f FormatType) ScoreWeights {
	if w, ok := c.Weights[f]; ok {
		return w
	}
	return DefaultScoreWeights()
}

// PoolConfig holds settings for the worker pool.
type PoolConfig struct {
	// MinWorkers is the number of workers kept alive at all times (default 1).
	MinWorkers int `json:"min_workers" yaml:"min_workers"`

	// MaxWorkers caps on-demand worker spawning (default 4).
	MaxWorkers int `json:"max_workers" yaml:"max_workers"`

	// MaxQueueSize bounds the pending-task queue; submissions beyond it fail
	// with QUEUE_FULL (default 64).
	MaxQueueSize int `json:"max_queue_size" yaml:"max_queue_size"`

	// IdleTimeout is how long a surplus worker may sit idle before being
	// culled back toward MinWorkers (default 30s).
	IdleTimeout time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
}

// Normalized returns c with zero fields replaced by defaults and the
// min/max relationship repaired.
func (c PoolConfig) Normalized() PoolConfig {
	if c.MinWorkers <= 0 {
		c.MinWorkers = 1
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = 4
	}
	if c.MaxWorkers < c.MinWorkers {
		c.MaxWorkers = c.MinWorkers
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = 64
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 30 * time.Second
	}
	return c
}

// RecoveryConfig holds settings for retry, fallback, and result caching.
type RecoveryConfig struct {
	// MaxRetries is the number of retry attempts for transient failures
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryDelay is the base backoff; attempt n waits RetryDelay * 2^n
	// (default 100ms).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`

	// Jitter adds up to 25% random spread to each backoff wait.
	Jitter bool `json:"jitter" yaml:"jitter"`

	// EnableFallback runs the synchronous in-process engine when pooled
	// retries exhaust.
	EnableFallback bool `json:"enable_fallback" yaml:"enable_fallback"`

	// EnableCaching turns the fingerprint result cache on.
	EnableCaching bool `json:"enable_caching" yaml:"enable_caching"`

	// CacheExpiration is how long cached results stay valid (default 5m).
	CacheExpiration time.Duration `json:"cache_expiration" yaml:"cache_expiration"`
}

// Normalized returns c with zero fields replaced by defaults.
func (c RecoveryConfig) Normalized() RecoveryConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 100 * time.Millisecond
	}
	if c.CacheExpiration <= 0 {
		c.CacheExpiration = 5 * time.Minute
	}
	return c
}

// Config groups all noteforge configuration.
type Config struct {
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	Pool     PoolConfig     `json:"pool" yaml:"pool"`
	Recovery RecoveryConfig `json:"recovery" yaml:"recovery"`
}
