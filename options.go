package coll

import (
	"hash/maphash"

	"go.uber.org/zap"
)

// MapConfig defines configurable ElasticMap options.
type MapConfig struct {
	logger          *zap.Logger
	seed            maphash.Seed
	seedSet         bool
	tombstoneRehash bool
}

func defaultMapConfig() MapConfig {
	return MapConfig{
		logger:          zap.NewNop(),
		tombstoneRehash: true,
	}
}

// WithLogger configures the logger that receives resize and tombstone
// purge events at debug level. A nil logger is ignored.
func WithLogger(logger *zap.Logger) func(*MapConfig) {
	return func(c *MapConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSeed fixes the hash seed. Two maps built with the same seed, capacity
// and insertion order have the same slot layout, which keeps iteration
// order reproducible.
func WithSeed(seed maphash.Seed) func(*MapConfig) {
	return func(c *MapConfig) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithTombstoneRehash controls the same-capacity rehash that purges
// tombstones once live and deleted slots together reach the load factor.
// Enabled by default. When disabled, tombstones are only dropped when the
// map grows.
func WithTombstoneRehash(enabled bool) func(*MapConfig) {
	return func(c *MapConfig) {
		c.tombstoneRehash = enabled
	}
}
