package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rrrsynth/rrr/aiger"
	"github.com/rrrsynth/rrr/config"
	"github.com/rrrsynth/rrr/scheduler"
)

func runRrr(cmd *cobra.Command, _ []string) error {
	ascending, err := parseThresholdMode(thresholdMode)
	if err != nil {
		return err
	}
	mode := config.Ascending
	if !ascending {
		mode = config.Descending
	}

	cfg := config.New(
		config.WithSeed(seed),
		config.WithTimeout(timeout),
		config.WithThreads(threads),
		config.WithThresholdMode(mode),
		config.WithPartitionSize(partitionSize),
		config.WithSnapshotDir(snapshotDir),
	)

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("rrr: opening input: %w", err)
	}
	defer in.Close()

	net, nLatches, err := aiger.Read(in)
	if err != nil {
		return fmt.Errorf("rrr: reading %s: %w", inputPath, err)
	}
	if nLatches != 0 {
		return fmt.Errorf("rrr: %s has %d latches, sequential designs are out of scope", inputPath, nLatches)
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	sched := scheduler.New(
		scheduler.WithSeed(cfg.Seed),
		scheduler.WithWorkers(cfg.Threads),
		scheduler.WithTiers(tiers),
		scheduler.WithLogger(newLogger()),
	)

	nets, err := sched.Run(ctx, net)
	if err != nil {
		return fmt.Errorf("rrr: scheduler run: %w", err)
	}
	if len(nets) == 0 {
		return fmt.Errorf("rrr: scheduler returned no candidate networks")
	}

	best := nets[0]
	bestCost := scheduler.DefaultCost(best)
	for _, n := range nets[1:] {
		if c := scheduler.DefaultCost(n); c < bestCost {
			best, bestCost = n, c
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("rrr: creating output: %w", err)
	}
	defer out.Close()

	if err := aiger.Write(out, best, 0); err != nil {
		return fmt.Errorf("rrr: writing %s: %w", outputPath, err)
	}

	stats := sched.StatsSummary()
	fmt.Fprintf(cmd.OutOrStdout(), "run=%s jobs created=%d finished=%d pool=%d best-cost=%d\n",
		stats.RunID, stats.Created, stats.Finished, stats.PoolSize, bestCost)
	return nil
}
