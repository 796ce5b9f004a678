package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rrrsynth/rrr/config"
)

func TestNewDefaults(t *testing.T) {
	c := config.New()
	require.Equal(t, int64(1), c.Seed)
	require.Equal(t, 1, c.Threads)
	require.Equal(t, config.Ascending, c.ThresholdMode)
	require.Equal(t, time.Duration(0), c.Timeout)
	require.Equal(t, "", c.SnapshotDir)
}

func TestOptionsOverrideDefaults(t *testing.T) {
	c := config.New(
		config.WithSeed(42),
		config.WithThreads(8),
		config.WithTimeout(5*time.Second),
		config.WithThresholdMode(config.Descending),
		config.WithPartitionSize(64),
		config.WithSnapshotDir("/tmp/snaps"),
		config.WithVerbosity([]int{0, 1, 2}),
	)
	require.Equal(t, int64(42), c.Seed)
	require.Equal(t, 8, c.Threads)
	require.Equal(t, 5*time.Second, c.Timeout)
	require.Equal(t, config.Descending, c.ThresholdMode)
	require.Equal(t, 64, c.PartitionSize)
	require.Equal(t, "/tmp/snaps", c.SnapshotDir)
	require.Equal(t, []int{0, 1, 2}, c.Verbosity)
}

func TestZeroAndNilOptionsAreNoOps(t *testing.T) {
	c := config.New(
		config.WithThreads(0),
		config.WithTimeout(-1),
		config.WithPartitionSize(-5),
		config.WithSnapshotDir(""),
		config.WithVerbosity(nil),
	)
	require.Equal(t, config.New(), c)
}
