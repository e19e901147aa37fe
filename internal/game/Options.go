package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

type options struct {
	rng    *rand.Rand
	logger *log.Logger
}

// Option tunes how a Board or Controller is built. Options never change the
// rules of the game; those live in Config.
type Option func(*options)

// WithRand makes food placement draw from r.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithSeed is WithRand over a fresh source seeded with seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.logger == nil {
		o.logger = log.Default().WithPrefix("game")
	}
	return o
}
