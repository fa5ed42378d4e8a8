// Command matvecbench measures a distributed dense matrix–vector multiply.
//
// Usage:
//
//	matvecbench run --n 2000 --procs 8
//	matvecbench worker --n 2000 --size 4 --rank 0 --coordinator :7070   # one per process
//	matvecbench hwinfo
//
// The summary goes to stdout on the coordinator; logs go to stderr.
package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/matvecbench/bench"
	"github.com/katalvlaran/matvecbench/comm"
	"github.com/katalvlaran/matvecbench/comm/local"
	"github.com/katalvlaran/matvecbench/comm/tcp"
	"github.com/katalvlaran/matvecbench/config"
	"github.com/katalvlaran/matvecbench/report"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "matvecbench",
		Short:         "Distributed dense matrix-vector multiply benchmark",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newRunCmd(stdout, stderr), newWorkerCmd(stdout, stderr), newHWInfoCmd(stdout))

	return root
}

// bindCommon registers the flags shared by run and worker.
func bindCommon(fs *pflag.FlagSet, cfg *config.Config) {
	fs.IntVar(&cfg.N, "n", 0, "matrix dimension (required)")
	fs.Int64Var(&cfg.Seed, "seed", config.DefaultSeed, "generator seed")
	fs.IntVar(&cfg.Repeats, "repeats", config.DefaultRepeats, "timed samples per path; the fastest is kept")
	fs.StringVar(&cfg.Pattern, "pattern", config.DefaultPattern, "problem pattern: identity, sparse or uniform")
	fs.StringVar(&cfg.Format, "format", config.DefaultFormat, "report format: text or json")
	fs.StringVar(&cfg.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug shows phases)")
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().
		Logger()
}

// prepare validates cfg and builds the logger and bench options. Errors are
// logged to stderr; nothing is written to stdout.
func prepare(cfg config.Config, validate func() error, stderr io.Writer) (zerolog.Logger, []bench.Option, error) {
	fail := newLogger(stderr, zerolog.InfoLevel)
	if err := validate(); err != nil {
		fail.Error().Err(err).Msg("invalid configuration")
		return fail, nil, err
	}
	lvl, _ := cfg.Level()
	log := newLogger(stderr, lvl)
	opts, err := cfg.BenchOptions(log)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return log, nil, err
	}

	return log, opts, nil
}

func newRunCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every rank as a goroutine of this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, opts, err := prepare(cfg, cfg.Validate, stderr)
			if err != nil {
				return err
			}
			log.Info().Int("n", cfg.N).Int("procs", cfg.Procs).Str("pattern", cfg.Pattern).Msg("starting")

			var res *bench.Result
			err = local.Run(cfg.Procs, func(c comm.Communicator) error {
				r, err := bench.Run(c, cfg.N, opts...)
				if r != nil {
					res = r
				}
				return err
			})
			if err != nil {
				log.Error().Err(err).Msg("run failed")
				return err
			}

			return report.Write(stdout, cfg.Format, res)
		},
	}
	bindCommon(cmd.Flags(), &cfg)
	cmd.Flags().IntVar(&cfg.Procs, "procs", cfg.Procs, "number of ranks")

	return cmd
}

func newWorkerCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run one rank of a multi-process group over TCP",
		Long: "Start one worker per rank with the same --n, --size and --coordinator.\n" +
			"Rank 0 listens on the coordinator address and prints the summary.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, opts, err := prepare(cfg, cfg.ValidateWorker, stderr)
			if err != nil {
				return err
			}
			log = log.With().Int("rank", cfg.Rank).Logger()

			c, err := tcp.Join(tcp.Config{
				Rank:        cfg.Rank,
				Size:        cfg.Procs,
				Addr:        cfg.Coordinator,
				DialTimeout: cfg.DialTimeout,
			})
			if err != nil {
				log.Error().Err(err).Msg("joining group")
				return err
			}
			defer c.Close()
			log.Info().Str("coordinator", cfg.Coordinator).Int("size", cfg.Procs).Msg("group formed")

			res, err := bench.Run(c, cfg.N, opts...)
			if err != nil {
				log.Error().Err(err).Msg("run failed")
				return err
			}
			if res == nil {
				return nil
			}

			return report.Write(stdout, cfg.Format, res)
		},
	}
	fs := cmd.Flags()
	bindCommon(fs, &cfg)
	fs.IntVar(&cfg.Procs, "size", 0, "group size (required)")
	fs.IntVar(&cfg.Rank, "rank", 0, "rank of this process")
	fs.StringVar(&cfg.Coordinator, "coordinator", "", "host:port of rank 0 (required)")
	fs.DurationVar(&cfg.DialTimeout, "dial-timeout", config.DefaultDialTimeout, "how long to wait for the group to form")

	return cmd
}

func newHWInfoCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "hwinfo",
		Short: "Print the CPU features relevant to the kernel",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return report.WriteHardware(stdout, report.DetectHardware())
		},
	}
}
