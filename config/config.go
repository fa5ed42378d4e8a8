// Package config holds the command-line configuration of a benchmark run and
// its validation. A Config that passes Validate can be handed to bench.Run
// through BenchOptions without further checks.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/matvecbench/bench"
	"github.com/katalvlaran/matvecbench/gen"
	"github.com/katalvlaran/matvecbench/report"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSeed seeds the problem generator.
	DefaultSeed = gen.DefaultSeed

	// DefaultRepeats is the number of timed samples per path.
	DefaultRepeats = bench.DefaultRepeats

	// DefaultPattern reproduces the classic benchmark instance.
	DefaultPattern = gen.PatternSparse

	// DefaultFormat prints the human-readable summary.
	DefaultFormat = report.FormatText

	// DefaultLogLevel keeps phase logs quiet unless asked for.
	DefaultLogLevel = "info"

	// DefaultDialTimeout bounds group formation for worker processes.
	DefaultDialTimeout = 30 * time.Second
)

var (
	// ErrInvalidSize indicates a missing or non-positive matrix dimension.
	ErrInvalidSize = errors.New("config: --n must be a positive integer")

	// ErrInvalidProcs indicates a group size below one.
	ErrInvalidProcs = errors.New("config: process count must be >= 1")

	// ErrInvalidRank indicates a worker rank outside [0, size).
	ErrInvalidRank = errors.New("config: rank out of range")

	// ErrMissingCoordinator indicates a worker without a coordinator address.
	ErrMissingCoordinator = errors.New("config: coordinator address required")

	// ErrInvalidRepeats indicates fewer than one timed sample.
	ErrInvalidRepeats = errors.New("config: repeats must be >= 1")

	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = errors.New("config: unknown output format")

	// ErrUnknownPattern indicates an unsupported generator pattern.
	ErrUnknownPattern = errors.New("config: unknown pattern")

	// ErrInvalidLogLevel indicates a log level zerolog cannot parse.
	ErrInvalidLogLevel = errors.New("config: invalid log level")
)

// Config is the full set of knobs of one process.
type Config struct {
	N        int    // matrix dimension
	Procs    int    // group size for in-process runs
	Seed     int64  // generator seed
	Repeats  int    // timed samples per path
	Pattern  string // gen pattern name
	Format   string // report format
	LogLevel string // zerolog level name

	// Worker mode only.
	Rank        int
	Coordinator string // host:port of rank 0
	DialTimeout time.Duration
}

// Default returns a Config with every default applied and N unset.
func Default() Config {
	return Config{
		Procs:       runtime.NumCPU(),
		Seed:        DefaultSeed,
		Repeats:     DefaultRepeats,
		Pattern:     DefaultPattern,
		Format:      DefaultFormat,
		LogLevel:    DefaultLogLevel,
		DialTimeout: DefaultDialTimeout,
	}
}

// Validate checks the fields shared by every mode.
func (c Config) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("n=%d: %w", c.N, ErrInvalidSize)
	}
	if c.Procs < 1 {
		return fmt.Errorf("procs=%d: %w", c.Procs, ErrInvalidProcs)
	}
	if c.Repeats < 1 {
		return fmt.Errorf("repeats=%d: %w", c.Repeats, ErrInvalidRepeats)
	}
	if !slices.Contains(gen.Patterns(), c.Pattern) {
		return fmt.Errorf("%q: %w", c.Pattern, ErrUnknownPattern)
	}
	if c.Format != report.FormatText && c.Format != report.FormatJSON {
		return fmt.Errorf("%q: %w", c.Format, ErrUnknownFormat)
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// ValidateWorker checks a multi-process worker: Validate plus rank and
// coordinator address. Procs is the group size.
func (c Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Rank < 0 || c.Rank >= c.Procs {
		return fmt.Errorf("rank=%d size=%d: %w", c.Rank, c.Procs, ErrInvalidRank)
	}
	if c.Coordinator == "" {
		return ErrMissingCoordinator
	}

	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%q: %w", c.LogLevel, ErrInvalidLogLevel)
	}

	return lvl, nil
}

// BenchOptions translates c into options for bench.Run.
func (c Config) BenchOptions(log zerolog.Logger) ([]bench.Option, error) {
	filler, err := gen.ByName(c.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownPattern, err)
	}

	return []bench.Option{
		bench.WithRepeats(c.Repeats),
		bench.WithSeed(c.Seed),
		bench.WithFiller(filler),
		bench.WithLogger(log),
	}, nil
}
