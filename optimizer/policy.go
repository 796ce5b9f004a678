package optimizer

import (
	"math/rand"

	"github.com/rrrsynth/rrr/aig"
)

// Policy selects the ordering fan-ins are visited in when a node is
// checked for redundant edges. Removal happens left to right, so a
// policy's "smaller" key names the fan-in that is tried for removal
// first.
type Policy int

const (
	PolicyInsertionOrder            Policy = 0
	PolicyNonPiFirst                Policy = 1
	PolicyNonPiFirstSortedPi        Policy = 2
	PolicyNonPiFirstRandomPi        Policy = 3
	PolicyFanoutAscending           Policy = 4
	PolicyNonPiFirstFanoutTieBreak  Policy = 5
	PolicyFanoutSortedPi            Policy = 6
	PolicyFanoutRandomPi            Policy = 7
	PolicyTopoReverseSortedPi       Policy = 8
	PolicyTopoReverseSortedPi2      Policy = 9
	PolicyTopoReverseRandomPi       Policy = 10
	PolicyTopoFanoutNonPiFirst      Policy = 11
	PolicyTopoFanoutSortedPi        Policy = 12
	PolicyTopoFanoutRandomPi        Policy = 13
	PolicyRandomTotalOrder          Policy = 14
	PolicyRandomNonPiFirst          Policy = 15
	PolicyRandomFanout              Policy = 16
	PolicyRandomFanoutNonPiFirst    Policy = 17
	NumPolicies                     = 18
)

// randPiOrder returns a fresh random permutation of the network's PI
// indices, generated once per run and reused for every node sorted
// under a PI-random policy within that run.
func randPiOrder(net *aig.Network, rng *rand.Rand) []int {
	n := net.NumPis()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

// randCosts returns one uniformly random cost per node id, generated
// once per run and reused by every random-total-order comparison
// within that run.
func randCosts(net *aig.Network, rng *rand.Rand) []float64 {
	costs := make([]float64, net.NumNodes())
	for i := range costs {
		costs[i] = rng.Float64()
	}
	return costs
}

// lessFunc returns the less(i, j int) bool comparator for policy,
// where i and j are fan-in node ids (not slice positions). piOrder and
// costs may be nil for policies that never reference them.
func lessFunc(net *aig.Network, policy Policy, piOrder []int, costs []float64) func(i, j int) bool {
	isPi := net.IsPi
	piIdx := net.PiIndex
	fanouts := net.NumFanouts
	topoIdx := net.IntIndex

	switch policy {
	case PolicyInsertionOrder:
		return func(i, j int) bool { return false }
	case PolicyNonPiFirst:
		return func(i, j int) bool { return !isPi(i) && isPi(j) }
	case PolicyNonPiFirstSortedPi:
		return func(i, j int) bool {
			if isPi(i) && isPi(j) {
				return piIdx(i) > piIdx(j)
			}
			return isPi(j)
		}
	case PolicyNonPiFirstRandomPi:
		return func(i, j int) bool {
			if isPi(i) && isPi(j) {
				return piOrder[piIdx(i)] > piOrder[piIdx(j)]
			}
			return isPi(j)
		}
	case PolicyFanoutAscending:
		return func(i, j int) bool { return fanouts(i) < fanouts(j) }
	case PolicyNonPiFirstFanoutTieBreak:
		return func(i, j int) bool {
			if isPi(i) && !isPi(j) {
				return false
			}
			if !isPi(i) && isPi(j) {
				return true
			}
			return fanouts(i) < fanouts(j)
		}
	case PolicyFanoutSortedPi:
		return func(i, j int) bool {
			if isPi(i) && isPi(j) {
				return piIdx(i) > piIdx(j)
			}
			if isPi(i) {
				return false
			}
			if isPi(j) {
				return true
			}
			return fanouts(i) < fanouts(j)
		}
	case PolicyFanoutRandomPi:
		return func(i, j int) bool {
			if isPi(i) && isPi(j) {
				return piOrder[piIdx(i)] > piOrder[piIdx(j)]
			}
			if isPi(i) {
				return false
			}
			if isPi(j) {
				return true
			}
			return fanouts(i) < fanouts(j)
		}
	case PolicyTopoReverseSortedPi:
		return func(i, j int) bool {
			if isPi(i) && isPi(j) {
				return false
			}
			if isPi(i) {
				return false
			}
			if isPi(j) {
				return true
			}
			return topoIdx(i) > topoIdx(j)
		}
	case PolicyTopoReverseSortedPi2:
		return func(i, j int) bool {
			if isPi(i) && isPi(j) {
				return piIdx(i) > piIdx(j)
			}
			if isPi(i) {
				return false
			}
			if isPi(j) {
				return true
			}
			return topoIdx(i) > topoIdx(j)
		}
	case PolicyTopoReverseRandomPi:
		return func(i, j int) bool {
			if isPi(i) && isPi(j) {
				return piOrder[piIdx(i)] > piOrder[piIdx(j)]
			}
			if isPi(i) {
				return false
			}
			if isPi(j) {
				return true
			}
			return topoIdx(i) > topoIdx(j)
		}
	case PolicyTopoFanoutNonPiFirst:
		return func(i, j int) bool {
			if isPi(i) && !isPi(j) {
				return false
			}
			if !isPi(i) && isPi(j) {
				return true
			}
			if fanouts(i) > fanouts(j) {
				return false
			}
			if fanouts(i) < fanouts(j) {
				return true
			}
			if isPi(i) && isPi(j) {
				return false
			}
			return topoIdx(i) > topoIdx(j)
		}
	case PolicyTopoFanoutSortedPi:
		return func(i, j int) bool {
			if isPi(i) && isPi(j) {
				return piIdx(i) > piIdx(j)
			}
			if isPi(i) {
				return false
			}
			if isPi(j) {
				return true
			}
			if fanouts(i) > fanouts(j) {
				return false
			}
			if fanouts(i) < fanouts(j) {
				return true
			}
			return topoIdx(i) > topoIdx(j)
		}
	case PolicyTopoFanoutRandomPi:
		return func(i, j int) bool {
			if isPi(i) && isPi(j) {
				return piOrder[piIdx(i)] > piOrder[piIdx(j)]
			}
			if isPi(i) {
				return false
			}
			if isPi(j) {
				return true
			}
			if fanouts(i) > fanouts(j) {
				return false
			}
			if fanouts(i) < fanouts(j) {
				return true
			}
			return topoIdx(i) > topoIdx(j)
		}
	case PolicyRandomTotalOrder:
		return func(i, j int) bool { return costs[i] > costs[j] }
	case PolicyRandomNonPiFirst:
		return func(i, j int) bool {
			if isPi(i) && !isPi(j) {
				return false
			}
			if !isPi(i) && isPi(j) {
				return true
			}
			return costs[i] > costs[j]
		}
	case PolicyRandomFanout:
		return func(i, j int) bool {
			if fanouts(i) > fanouts(j) {
				return false
			}
			if fanouts(i) < fanouts(j) {
				return true
			}
			return costs[i] > costs[j]
		}
	case PolicyRandomFanoutNonPiFirst:
		return func(i, j int) bool {
			if isPi(i) && !isPi(j) {
				return false
			}
			if !isPi(i) && isPi(j) {
				return true
			}
			if fanouts(i) > fanouts(j) {
				return false
			}
			if fanouts(i) < fanouts(j) {
				return true
			}
			return costs[i] > costs[j]
		}
	default:
		return func(i, j int) bool { return false }
	}
}
