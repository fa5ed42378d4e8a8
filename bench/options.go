package bench

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/matvecbench/gen"
)

// DefaultRepeats is the number of timed samples per path; one sample
// reproduces a single-shot run.
const DefaultRepeats = 1

// Option configures Run.
type Option func(*options)

type options struct {
	repeats int
	seed    int64
	filler  gen.Filler
	log     zerolog.Logger
}

// WithRepeats times each path k times and keeps the fastest sample (best-of-k).
// The first samples double as warm-up.
func WithRepeats(k int) Option {
	return func(o *options) { o.repeats = k }
}

// WithSeed sets the seed handed to the Filler.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithFiller replaces the problem generator. A nil f keeps the default.
func WithFiller(f gen.Filler) Option {
	return func(o *options) {
		if f != nil {
			o.filler = f
		}
	}
}

// WithLogger routes phase logs to l. The default discards them.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

func gatherOptions(user ...Option) options {
	o := options{
		repeats: DefaultRepeats,
		seed:    gen.DefaultSeed,
		filler:  gen.Sparse,
		log:     zerolog.Nop(),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
