// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "runtime"

// ProjectionStrategy selects how the hypernym projector generalizes a sense.
type ProjectionStrategy string

const (
	// StrategyFirstPath follows the first listed hypernym at every step.
	StrategyFirstPath ProjectionStrategy = "first-path"

	// StrategyFrontier expands all hypernyms breadth-first, one level per step.
	StrategyFrontier ProjectionStrategy = "frontier"
)

// Valid reports whether s names a known strategy.
func (s ProjectionStrategy) Valid() bool {
	return s == StrategyFirstPath || s == StrategyFrontier
}

const (
	// DefaultDepth is the number of hypernym steps taken before matching.
	DefaultDepth = 5

	// DefaultCacheSize bounds each similarity memoisation cache.
	DefaultCacheSize = 1 << 16

	defaultLexiconDir = "lexicon"
)

// LexiconConfig holds settings for the lexicon store.
type LexiconConfig struct {
	// Dir is the directory holding lexicon.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// CacheSize is the number of entries kept by the path similarity and
	// ancestor caches (default 65536).
	CacheSize int `json:"cache_size" yaml:"cache_size" mapstructure:"cache_size"`
}

// ClassifierConfig holds settings for the classification pipeline.
type ClassifierConfig struct {
	// Depth is the hypernym projection depth (default 5).
	Depth int `json:"depth" yaml:"depth" mapstructure:"depth"`

	// Strategy selects the projection strategy (default first-path).
	Strategy ProjectionStrategy `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// ExcludeTarget drops the head word from its own disambiguation context.
	ExcludeTarget bool `json:"exclude_target" yaml:"exclude_target" mapstructure:"exclude_target"`

	// Workers bounds batch parallelism. Zero uses runtime.NumCPU().
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// Config groups all settings read from qtype.yaml.
type Config struct {
	Lexicon    LexiconConfig    `json:"lexicon" yaml:"lexicon" mapstructure:"lexicon"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier" mapstructure:"classifier"`
}

// ApplyDefaults fills zero values. Depth is left alone because zero is a
// meaningful depth (no generalization); its default comes from
// DefaultConfig and the CLI flag defaults.
func (c *Config) ApplyDefaults() {
	c.Lexicon.ApplyDefaults()
	c.Classifier.ApplyDefaults()
}

// ApplyDefaults fills the zero directory and cache size.
func (c *LexiconConfig) ApplyDefaults() {
	if c.Dir == "" {
		c.Dir = defaultLexiconDir
	}
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
}

// ApplyDefaults clamps a negative depth to zero and fills the strategy
// and worker count.
func (c *ClassifierConfig) ApplyDefaults() {
	if c.Depth < 0 {
		c.Depth = 0
	}
	if c.Strategy == "" {
		c.Strategy = StrategyFirstPath
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	c := Config{Classifier: ClassifierConfig{Depth: DefaultDepth}}
	c.ApplyDefaults()
	return c
}
