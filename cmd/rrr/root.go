package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flags are bound to viper keys of the same name so either a flag or
// the matching RRR_* environment variable can set them (dashes become
// underscores, e.g. RRR_THRESHOLD_MODE; --input and --output are
// required flags and must be given on the command line); flag parsing
// itself stays a thin boundary concern, everything downstream of it
// talks to config.Config, not to cobra or viper directly.
var (
	inputPath     string
	outputPath    string
	seed          int64
	timeout       time.Duration
	threads       int
	tiers         int
	thresholdMode string
	partitionSize int
	snapshotDir   string
	verbose       bool
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("rrr")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "rrr",
		Short: "Redundancy-removal rewriting engine for and-inverter graphs",
		Long: `rrr reads an AIGER network, explores redundancy-removing
rewrites of it across a worker pool, and writes back the best network
found.`,
		Example: `  rrr -i design.aig -o design.opt.aig
  rrr -i design.aig -o design.opt.aig --threads 4 --seed 7 --timeout 30s`,
		PreRunE: func(*cobra.Command, []string) error {
			seed = v.GetInt64("seed")
			timeout = v.GetDuration("timeout")
			threads = v.GetInt("threads")
			tiers = v.GetInt("tiers")
			thresholdMode = v.GetString("threshold-mode")
			partitionSize = v.GetInt("partition-size")
			snapshotDir = v.GetString("snapshot-dir")
			verbose = v.GetBool("verbose")
			return nil
		},
		RunE: runRrr,
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input AIGER file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output AIGER file (required)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "soft deadline for the run (0 means no deadline)")
	cmd.Flags().IntVar(&threads, "threads", 1, "worker pool size")
	cmd.Flags().IntVar(&tiers, "tiers", 2, "number of intermediate scheduler tiers")
	cmd.Flags().StringVar(&thresholdMode, "threshold-mode", "ascending", "analyzer threshold direction: ascending or descending (validated and recorded in the run config; the scheduler's built-in oracle always runs ascending)")
	cmd.Flags().IntVar(&partitionSize, "partition-size", 0, "partition size (accepted, ignored by the core engine)")
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "directory for periodic snapshots (unused unless the caller wires one up)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}

	return cmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseThresholdMode(s string) (ascending bool, err error) {
	switch strings.ToLower(s) {
	case "ascending", "":
		return true, nil
	case "descending":
		return false, nil
	default:
		return false, fmt.Errorf("rrr: invalid --threshold-mode %q (want ascending or descending)", s)
	}
}
