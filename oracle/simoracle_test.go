package oracle_test

import (
	"testing"

	"github.com/rrrsynth/rrr/aig"
	"github.com/rrrsynth/rrr/oracle"
	"github.com/stretchr/testify/require"
)

// buildRedundantFanin builds a & b, then (a&b) & a: the second AND's
// "a" fanin is redundant, since the a&b fanin already forces a true
// whenever it is true itself.
func buildRedundantFanin(t *testing.T) (net *aig.Network, n3, redundantIdx, liveIdx int) {
	t.Helper()
	net = aig.New()
	a := net.AddPi()
	b := net.AddPi()
	n1, err := net.AddAnd(aig.NewLit(a, false), aig.NewLit(b, false))
	require.NoError(t, err)
	n3v, err := net.AddAnd(aig.NewLit(n1, false), aig.NewLit(a, false))
	require.NoError(t, err)
	_, err = net.AddPo(n3v, false)
	require.NoError(t, err)
	return net, n3v, 1, 0
}

func TestSimOracleDetectsRedundantFanin(t *testing.T) {
	net, n3, redundantIdx, _ := buildRedundantFanin(t)
	o := oracle.NewSimOracle(1)
	o.Assign(net, false)

	redundant, err := o.CheckRedundancy(n3, redundantIdx)
	require.NoError(t, err)
	require.True(t, redundant)
}

func TestSimOracleRejectsLiveFanin(t *testing.T) {
	net, n3, _, liveIdx := buildRedundantFanin(t)
	o := oracle.NewSimOracle(1)
	o.Assign(net, false)

	redundant, err := o.CheckRedundancy(n3, liveIdx)
	require.NoError(t, err)
	require.False(t, redundant)
}

func TestSimOracleTracksNextBestCandidate(t *testing.T) {
	net, n3, redundantIdx, liveIdx := buildRedundantFanin(t)
	o := oracle.NewSimOracle(1)
	o.Assign(net, false)

	redundant, err := o.CheckRedundancy(n3, redundantIdx)
	require.NoError(t, err)
	require.True(t, redundant)

	id, idx := o.GetNextPair()
	require.Equal(t, -1, id, "a passing candidate must not become the runner-up")

	redundant, err = o.CheckRedundancy(n3, liveIdx)
	require.NoError(t, err)
	require.False(t, redundant)

	id, idx = o.GetNextPair()
	require.Equal(t, n3, id)
	require.Equal(t, liveIdx, idx)
}

func TestSimOracleResetNextOnRemoveFanin(t *testing.T) {
	net, n3, _, liveIdx := buildRedundantFanin(t)
	o := oracle.NewSimOracle(1)
	o.Assign(net, false)

	_, err := o.CheckRedundancy(n3, liveIdx)
	require.NoError(t, err)
	id, _ := o.GetNextPair()
	require.NotEqual(t, -1, id)

	require.NoError(t, net.RemoveFanin(n3, 1))
	id, idx := o.GetNextPair()
	require.Equal(t, -1, id)
	require.Equal(t, -1, idx)
}
