package config_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matvecbench/config"
)

func valid() config.Config {
	c := config.Default()
	c.N = 100
	c.Procs = 4

	return c
}

func TestDefaults(t *testing.T) {
	c := config.Default()
	require.Zero(t, c.N)
	require.GreaterOrEqual(t, c.Procs, 1)
	require.Equal(t, config.DefaultSeed, c.Seed)
	require.Equal(t, config.DefaultPattern, c.Pattern)
	require.Equal(t, config.DefaultFormat, c.Format)
	require.ErrorIs(t, c.Validate(), config.ErrInvalidSize)
	require.NoError(t, valid().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"zero n", func(c *config.Config) { c.N = 0 }, config.ErrInvalidSize},
		{"negative n", func(c *config.Config) { c.N = -5 }, config.ErrInvalidSize},
		{"no procs", func(c *config.Config) { c.Procs = 0 }, config.ErrInvalidProcs},
		{"no repeats", func(c *config.Config) { c.Repeats = 0 }, config.ErrInvalidRepeats},
		{"pattern", func(c *config.Config) { c.Pattern = "banded" }, config.ErrUnknownPattern},
		{"format", func(c *config.Config) { c.Format = "csv" }, config.ErrUnknownFormat},
		{"log level", func(c *config.Config) { c.LogLevel = "loud" }, config.ErrInvalidLogLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			require.ErrorIs(t, c.Validate(), tc.want)
		})
	}
}

func TestValidateWorker(t *testing.T) {
	c := valid()
	c.Rank = 2
	c.Coordinator = "127.0.0.1:7000"
	require.NoError(t, c.ValidateWorker())

	c.Rank = 4
	require.ErrorIs(t, c.ValidateWorker(), config.ErrInvalidRank)

	c.Rank = 0
	c.Coordinator = ""
	require.ErrorIs(t, c.ValidateWorker(), config.ErrMissingCoordinator)

	c.N = 0
	require.ErrorIs(t, c.ValidateWorker(), config.ErrInvalidSize)
}

func TestLevel(t *testing.T) {
	c := valid()
	c.LogLevel = "debug"
	lvl, err := c.Level()
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, lvl)
}

func TestBenchOptions(t *testing.T) {
	opts, err := valid().BenchOptions(zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, opts, 4)

	c := valid()
	c.Pattern = "nope"
	_, err = c.BenchOptions(zerolog.Nop())
	require.ErrorIs(t, err, config.ErrUnknownPattern)
}
