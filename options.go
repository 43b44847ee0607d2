package qdd

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the named tuning knobs: TOLERANCE, CACHE_SIZE, and the two
// GCLIMIT thresholds (split into a node limit and a magnitude limit since
// the unique table and the complex table collect independently), plus a
// cap on Resize.
type Config struct {
	// Tolerance is the maximum |delta| for magnitude equality and for
	// zero/one detection during interning.
	Tolerance float64

	// CacheSize is the depth of the scratch complex cache.
	CacheSize int

	// NodeGCLimit is the node count that triggers automatic unique-table
	// garbage collection.
	NodeGCLimit int

	// MagnitudeGCLimit is the entry count that triggers automatic
	// complex-table garbage collection.
	MagnitudeGCLimit int

	// MaxQubits bounds Resize; requests above it fail with
	// ErrCapacityExceeded rather than growing the tables unboundedly.
	MaxQubits int
}

// Option configures a Package using the functional-options pattern.
type Option func(*Config)

// WithTolerance sets the magnitude-interning tolerance. Values <= 0 are
// ignored (the default is kept).
func WithTolerance(tol float64) Option {
	return func(c *Config) {
		if tol > 0 {
			c.Tolerance = tol
		}
	}
}

// WithCacheSize sets the scratch complex cache depth.
func WithCacheSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.CacheSize = size
		}
	}
}

// WithGCLimits sets the node and magnitude garbage-collection trigger
// thresholds. A zero value leaves the corresponding default in place.
func WithGCLimits(nodeLimit, magnitudeLimit int) Option {
	return func(c *Config) {
		if nodeLimit > 0 {
			c.NodeGCLimit = nodeLimit
		}
		if magnitudeLimit > 0 {
			c.MagnitudeGCLimit = magnitudeLimit
		}
	}
}

// WithMaxQubits caps the number of variables Resize will accept.
func WithMaxQubits(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxQubits = n
		}
	}
}

// defaultConfig returns the package's default tuning: tolerance 1e-13,
// cache depth 1800, node limit 250000, magnitude limit 100000.
func defaultConfig(opts ...Option) *Config {
	cfg := &Config{
		Tolerance:        1e-13,
		CacheSize:        1800,
		NodeGCLimit:      250000,
		MagnitudeGCLimit: 100000,
		MaxQubits:        128,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoadConfig reads the named knobs from a config file (any format viper
// supports: YAML, TOML, JSON, ...) and environment variables prefixed
// QDD_, layering them over the package's default tuning. Missing keys fall
// back to the default.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("QDD")
	v.AutomaticEnv()

	cfg := defaultConfig()
	v.SetDefault("tolerance", cfg.Tolerance)
	v.SetDefault("cache_size", cfg.CacheSize)
	v.SetDefault("node_gc_limit", cfg.NodeGCLimit)
	v.SetDefault("magnitude_gc_limit", cfg.MagnitudeGCLimit)
	v.SetDefault("max_qubits", cfg.MaxQubits)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("qdd: loading config %q: %w", path, err)
	}

	cfg.Tolerance = v.GetFloat64("tolerance")
	cfg.CacheSize = v.GetInt("cache_size")
	cfg.NodeGCLimit = v.GetInt("node_gc_limit")
	cfg.MagnitudeGCLimit = v.GetInt("magnitude_gc_limit")
	cfg.MaxQubits = v.GetInt("max_qubits")
	return cfg, nil
}
