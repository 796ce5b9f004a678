package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rrrsynth/rrr/aig"
	"github.com/rrrsynth/rrr/scheduler"
)

// buildRedundantChain builds pi a, b, c; n1 = a&b; n2 = n1&a (n2's
// second fanin is redundant); n3 = n2&c; po driven by n3.
func buildRedundantChain(t *testing.T) *aig.Network {
	t.Helper()
	net := aig.New()
	a := net.AddPi()
	b := net.AddPi()
	c := net.AddPi()
	n1, err := net.AddAnd(aig.NewLit(a, false), aig.NewLit(b, false))
	require.NoError(t, err)
	n2, err := net.AddAnd(aig.NewLit(n1, false), aig.NewLit(a, false))
	require.NoError(t, err)
	n3, err := net.AddAnd(aig.NewLit(n2, false), aig.NewLit(c, false))
	require.NoError(t, err)
	_, err = net.AddPo(n3, false)
	require.NoError(t, err)
	return net
}

func TestSchedulerFinalPoolContainsReducedNetwork(t *testing.T) {
	net := buildRedundantChain(t)
	startCost := scheduler.DefaultCost(net)

	s := scheduler.New(scheduler.WithTiers(2), scheduler.WithWorkers(2), scheduler.WithSeed(11))
	nets, err := s.Run(context.Background(), net)
	require.NoError(t, err)
	require.NotEmpty(t, nets)

	best := startCost
	for _, n := range nets {
		if c := scheduler.DefaultCost(n); c < best {
			best = c
		}
	}
	require.Less(t, best, startCost)

	stats := s.StatsSummary()
	require.Equal(t, stats.Created, stats.Finished)
	require.Positive(t, stats.PoolSize)
	require.NotEmpty(t, stats.RunID)
}

func TestSchedulerHonorsContextDeadline(t *testing.T) {
	net := buildRedundantChain(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	s := scheduler.New(scheduler.WithTiers(1), scheduler.WithWorkers(1), scheduler.WithSeed(5))
	nets, err := s.Run(ctx, net)
	require.NoError(t, err)
	require.NotEmpty(t, nets)
}

func TestSchedulerSingleWorkerIsDeterministic(t *testing.T) {
	net1 := buildRedundantChain(t)
	net2 := buildRedundantChain(t)

	s1 := scheduler.New(scheduler.WithWorkers(1), scheduler.WithSeed(42), scheduler.WithTiers(1))
	nets1, err := s1.Run(context.Background(), net1)
	require.NoError(t, err)

	s2 := scheduler.New(scheduler.WithWorkers(1), scheduler.WithSeed(42), scheduler.WithTiers(1))
	nets2, err := s2.Run(context.Background(), net2)
	require.NoError(t, err)

	require.Equal(t, len(nets1), len(nets2))

	stats1, stats2 := s1.StatsSummary(), s2.StatsSummary()
	require.NotEmpty(t, stats1.RunID)
	require.NotEqual(t, stats1.RunID, stats2.RunID)
}

func TestScheduler2ExploresAndConverges(t *testing.T) {
	net := buildRedundantChain(t)
	startCost := scheduler.DefaultCost(net)

	s2 := scheduler.New2(scheduler.WithWorkers(2), scheduler.WithSeed(3))
	nets, err := s2.Run(context.Background(), net)
	require.NoError(t, err)
	require.NotEmpty(t, nets)

	best := startCost
	for _, n := range nets {
		if c := scheduler.DefaultCost(n); c < best {
			best = c
		}
	}
	require.Less(t, best, startCost)
	require.NotEmpty(t, s2.StatsSummary().RunID)
}
