package optimizer

import (
	"math/rand"
	"testing"

	"github.com/rrrsynth/rrr/aig"
	"github.com/stretchr/testify/require"
)

// buildMixedFaninNode returns a network where node id `top` has three
// fanins exercising every branch a policy's comparator can take: two
// primary inputs (distinct PI indices, distinct fanouts) and one
// internal node.
func buildMixedFaninNode(t *testing.T) (*aig.Network, int) {
	t.Helper()
	net := aig.New()
	a := net.AddPi()
	b := net.AddPi()
	c := net.AddPi()
	inner, err := net.AddAnd(aig.NewLit(a, false), aig.NewLit(b, false))
	require.NoError(t, err)
	top, err := net.AddAnd(aig.NewLit(inner, false), aig.NewLit(b, true), aig.NewLit(c, false))
	require.NoError(t, err)
	// give b an extra fanout so fanout-keyed policies have something to
	// distinguish it from c.
	_, err = net.AddPo(b, false)
	require.NoError(t, err)
	return net, top
}

// TestLessFuncIsIrreflexiveForEveryPolicy checks that no policy ever
// reports a fanin as strictly less than itself, which sort.SliceStable
// requires of any comparator it is given.
func TestLessFuncIsIrreflexiveForEveryPolicy(t *testing.T) {
	net, top := buildMixedFaninNode(t)
	rng := rand.New(rand.NewSource(1))
	order := randPiOrder(net, rng)
	costs := randCosts(net, rng)

	for p := Policy(0); p < NumPolicies; p++ {
		less := lessFunc(net, p, order, costs)
		net.ForEachFanin(top, func(fi int, _ bool) {
			require.Falsef(t, less(fi, fi), "policy %d: less(%d, %d) must be false", p, fi, fi)
		})
	}
}

// TestLessFuncCoversAllFaninPairs exercises every (i, j) pair among
// top's fanins for every policy, confirming none of the 18
// comparators panics (e.g. on a nil random slice it does not use).
func TestLessFuncCoversAllFaninPairs(t *testing.T) {
	net, top := buildMixedFaninNode(t)
	rng := rand.New(rand.NewSource(7))
	order := randPiOrder(net, rng)
	costs := randCosts(net, rng)

	var fanins []int
	net.ForEachFanin(top, func(fi int, _ bool) { fanins = append(fanins, fi) })

	for p := Policy(0); p < NumPolicies; p++ {
		less := lessFunc(net, p, order, costs)
		for _, i := range fanins {
			for _, j := range fanins {
				_ = less(i, j)
			}
		}
	}
}

// TestNonPiFirstPolicySortsInternalsBeforePis verifies policy 1's
// documented ordering key directly.
func TestNonPiFirstPolicySortsInternalsBeforePis(t *testing.T) {
	net, top := buildMixedFaninNode(t)
	o := New(nil, WithPolicy(PolicyNonPiFirst), WithSortInitial(false))
	o.net = net
	o.runPolicy = PolicyNonPiFirst
	o.sortFaninsOf(top)

	var order []bool // true if fanin is a PI
	net.ForEachFanin(top, func(fi int, _ bool) { order = append(order, net.IsPi(fi)) })
	for i := 1; i < len(order); i++ {
		require.False(t, order[i-1] && !order[i], "non-PI fanins must precede PI fanins: %v", order)
	}
}
