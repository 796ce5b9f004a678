package oracle

import (
	"math/rand"

	"github.com/rrrsynth/rrr/aig"
)

// exhaustivePiLimit is the largest primary-input count boolSim will
// enumerate exhaustively (2^20 patterns); beyond it, boolSim falls back
// to random sampling and reports itself as non-exhaustive.
const exhaustivePiLimit = 20

// samplePatterns is how many random patterns boolSim draws when it
// cannot enumerate every input combination.
const samplePatterns = 1 << 12

// boolSim scores fanin redundancy by direct Boolean simulation: Score
// forces one fanin edge to the value RemoveFanin would leave in its
// place (vacuously true, the AND identity) and counts how many tested
// patterns change the primary-output vector as a result. A score of
// zero means the edge was vacuous on every pattern tried; whether that
// is proof of redundancy depends on whether every pattern was tried,
// which exhaustive reports.
type boolSim struct {
	net        *aig.Network
	rng        *rand.Rand
	patterns   [][]bool
	basePOs    [][]bool
	exhaustive bool
}

func newBoolSim(seed int64) *boolSim {
	return &boolSim{rng: rand.New(rand.NewSource(seed))}
}

// AssignNetwork builds (or, if reuse is set and a pattern set already
// exists, keeps) the simulation pattern set for net.
func (s *boolSim) AssignNetwork(net *aig.Network, reuse bool) {
	s.net = net
	if reuse && s.patterns != nil {
		s.rebase()
		return
	}

	nPis := net.NumPis()
	if nPis <= exhaustivePiLimit {
		s.exhaustive = true
		total := 1 << uint(nPis)
		s.patterns = make([][]bool, total)
		for p := 0; p < total; p++ {
			pat := make([]bool, nPis)
			for i := 0; i < nPis; i++ {
				pat[i] = (p>>uint(i))&1 != 0
			}
			s.patterns[p] = pat
		}
	} else {
		s.exhaustive = false
		s.patterns = make([][]bool, samplePatterns)
		for p := range s.patterns {
			pat := make([]bool, nPis)
			for i := range pat {
				pat[i] = s.rng.Intn(2) == 1
			}
			s.patterns[p] = pat
		}
	}
	s.rebase()
}

// rebase recomputes the unmodified primary-output vector for every
// pattern, used as the baseline Score compares against.
func (s *boolSim) rebase() {
	s.basePOs = make([][]bool, len(s.patterns))
	for i, pat := range s.patterns {
		s.basePOs[i] = s.poVector(s.evaluate(pat, -1, -1))
	}
}

// evaluate runs one simulation pattern through the network. If
// overrideID is a valid internal node id, that node's own fanin at
// overrideIdx is skipped when computing its AND, as RemoveFanin would
// leave it: the remaining fanins alone determine the node's value.
func (s *boolSim) evaluate(pat []bool, overrideID, overrideIdx int) []bool {
	values := make([]bool, s.net.NumNodes())
	for i, id := range s.net.Pis() {
		values[id] = pat[i]
	}
	s.net.ForEachInt(func(id int) {
		acc := true
		s.net.ForEachFaninIdx(id, func(idx, fi int, c bool) {
			if id == overrideID && idx == overrideIdx {
				return
			}
			v := values[fi]
			if c {
				v = !v
			}
			acc = acc && v
		})
		values[id] = acc
	})
	return values
}

func (s *boolSim) poVector(values []bool) []bool {
	out := make([]bool, 0, s.net.NumPos())
	s.net.ForEachPoDriver(func(_ int, fi int, c bool) {
		v := values[fi]
		if c {
			v = !v
		}
		out = append(out, v)
	})
	return out
}

// DefaultThreshold accepts only a proven-vacuous fanin by default: a
// mismatch count of exactly zero.
func (s *boolSim) DefaultThreshold() int64 { return 0 }

// Score returns how many simulated patterns produce a different
// primary-output vector when the idx'th fanin of id is forced vacuous.
func (s *boolSim) Score(id, idx int) int64 {
	var mismatches int64
	for i, pat := range s.patterns {
		forced := s.poVector(s.evaluate(pat, id, idx))
		if !sameBools(s.basePOs[i], forced) {
			mismatches++
		}
	}
	return mismatches
}

func sameBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
