// SPDX-License-Identifier: MIT

package engine

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/katalvlaran/epigrid/logging"
)

// Option customizes an Engine at construction.
// Option constructors panic on nil arguments; New itself never panics.
type Option func(*config)

type config struct {
	rng       *rand.Rand
	logger    *slog.Logger
	observers []Observer
}

func newConfig(opts []Option) config {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
// Use this in tests and repeated runs to lock outcomes.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("engine: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithLogger sets the logger used for per-generation trace records. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("engine: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

// WithObserver registers fn to be called after every committed generation.
// Panics on nil. Observers run synchronously in registration order.
func WithObserver(fn Observer) Option {
	if fn == nil {
		panic("engine: WithObserver(nil)")
	}
	return func(c *config) {
		c.observers = append(c.observers, fn)
	}
}
