package canon

import (
	"fmt"
	"sort"

	"github.com/rrrsynth/rrr/aig"
)

// storeEntry is one (signature value, node id) pair living inside a
// refinement class's slice of state.store.
type storeEntry struct {
	value uint32
	item  int
}

// state holds all working arrays for one canonicalization run. It is
// single-use: construct a fresh state per call to Canonicalize.
type state struct {
	net *aig.Network

	maxLevel int
	levels   []int

	nUniques int
	uniques  []int

	// classes holds (begin, size) pairs into store, one pair per
	// still-unresolved refinement class.
	classes  []int
	classes2 []int
	store    []storeEntry

	nSim   int
	values []uint32
}

func (s *state) computeLevel() {
	s.levels = make([]int, s.net.NumNodes())
	s.net.ForEachInt(func(id int) {
		s.net.ForEachFanin(id, func(fi int, _ bool) {
			if s.levels[id] < s.levels[fi] {
				s.levels[id] = s.levels[fi]
			}
		})
		s.levels[id]++
	})
	s.maxLevel = 0
	s.net.ForEachPo(func(id int) {
		fi := s.net.Fanin(id, 0)
		s.levels[id] = s.levels[fi] + 1
		if s.maxLevel < s.levels[id] {
			s.maxLevel = s.levels[id]
		}
	})
}

// genValue returns the signature contribution of edge (fi, c). Before
// the first simulation pass it is derived purely from fi's level and
// fanin count (the only signal available before any colouring exists);
// afterward it is derived from fi's assigned colour, or zero if fi has
// not yet been assigned one. Primary inputs are never assigned a colour
// until the very end, after refinement has converged, so from the
// second pass onward a PI fanin contributes zero here — its identity
// still reaches the signature through its own accumulated value.
func (s *state) genValue(fi int, c bool) uint32 {
	if s.nSim == 0 {
		v := s.levels[fi] + s.maxLevel*s.net.NumFanins(fi)
		return genValueRaw(v, c)
	}
	if s.uniques[fi] != 0 {
		return genValueRaw(s.uniques[fi], c)
	}
	return 0
}

func (s *state) simulate() {
	s.values[aig.Const0] += primes[uint8(0xff)]
	for idx, id := range s.net.Pis() {
		s.values[id] += primes[uint8(0xff-idx-1)]
	}
	s.net.ForEachInt(func(id int) {
		s.net.ForEachFanin(id, func(fi int, c bool) {
			s.values[id] += s.values[fi] + s.genValue(fi, c)
		})
	})
	s.net.ForEachPo(func(id int) {
		fi := s.net.Fanin(id, 0)
		c := s.net.Compl(id, 0)
		s.values[id] += s.values[fi] + s.genValue(fi, c)
	})
	s.nSim++
}

// simulateBack pushes each node's current value back onto its fanins.
// It walks internal nodes forward, the same order simulate uses, even
// though it is scattering contributions toward earlier nodes. The order
// matters: a node pushes its value to its fanins before its own fanouts
// (visited later) have added theirs in this pass, so within one pass a
// contribution from a primary output moves back only one level of
// internal nodes.
func (s *state) simulateBack() {
	s.net.ForEachPo(func(id int) {
		fi := s.net.Fanin(id, 0)
		c := s.net.Compl(id, 0)
		s.values[fi] += s.values[id] + s.genValue(id, c)
	})
	s.net.ForEachInt(func(id int) {
		s.net.ForEachFanin(id, func(fi int, c bool) {
			s.values[fi] += s.values[id] + s.genValue(id, c)
		})
	})
	s.nSim++
}

// refine re-sorts every still-open class by its members' current
// values and splits it wherever the value changes, assigning a fresh
// colour to any class that collapses to a single member. It reports
// whether any class actually changed shape this round.
func (s *state) refine() bool {
	refined := false
	s.classes2 = s.classes2[:0]
	for i := 0; i+1 < len(s.classes); i += 2 {
		begin, size := s.classes[i], s.classes[i+1]

		sameValue := true
		v0 := s.values[s.store[begin].item]
		for j := 0; j < size; j++ {
			v := s.values[s.store[begin+j].item]
			s.store[begin+j].value = v
			if v != v0 {
				sameValue = false
			}
		}
		if sameValue {
			s.classes2 = append(s.classes2, begin, size)
			continue
		}

		refined = true
		sort.Slice(s.store[begin:begin+size], func(i, j int) bool {
			a, b := s.store[begin+i], s.store[begin+j]
			if a.value != b.value {
				return a.value < b.value
			}
			return a.item < b.item
		})

		beginOld := begin
		v0 = s.values[s.store[begin].item]
		for j := 1; j < size; j++ {
			v := s.values[s.store[begin+j].item]
			if v == v0 {
				continue
			}
			sizeNew := begin + j - beginOld
			if sizeNew == 1 {
				s.uniques[s.store[beginOld].item] = s.nUniques
				s.nUniques++
			} else {
				s.classes2 = append(s.classes2, beginOld, sizeNew)
			}
			beginOld = begin + j
			v0 = v
		}
		sizeNew := begin + size - beginOld
		if sizeNew == 1 {
			s.uniques[s.store[beginOld].item] = s.nUniques
			s.nUniques++
		} else {
			s.classes2 = append(s.classes2, beginOld, sizeNew)
		}
	}
	s.classes, s.classes2 = s.classes2, s.classes
	return refined
}

// classify runs one forward+backward simulate/refine round, each half
// repeated until it stops splitting classes, and reports whether either
// half made progress. forwardFirst alternates which direction opens the
// round; doing so keeps the fixed point from favoring one direction's
// signal indefinitely.
func (s *state) classify(forwardFirst bool) bool {
	const fixedPoint = 1
	refined := false
	if forwardFirst {
		for c := 1; c <= fixedPoint+1; c++ {
			s.simulate()
			if s.refine() {
				c = 0
				refined = true
			}
		}
	}
	for c := 1; c <= fixedPoint+1; c++ {
		s.simulateBack()
		if s.refine() {
			c = 0
			refined = true
		}
	}
	if !forwardFirst {
		for c := 1; c <= fixedPoint+1; c++ {
			s.simulate()
			if s.refine() {
				c = 0
				refined = true
			}
		}
	}
	return refined
}

// assignOneClass breaks a refinement stall by handing out distinct
// colours to every member of the remaining class (or run of classes)
// with the highest (level, fanin-count). It is only ever called once
// classify has reported no further splits are possible on its own.
func (s *state) assignOneClass() {
	n := len(s.classes)
	iBegin0 := s.classes[n-2]
	i := n - 4
	for ; i >= 0; i -= 2 {
		iBegin := s.classes[i]
		if s.levels[s.store[iBegin].item] != s.levels[s.store[iBegin0].item] {
			break
		}
		if s.net.NumFanins(s.store[iBegin].item) != s.net.NumFanins(s.store[iBegin0].item) {
			break
		}
	}
	i += 2
	shrink := i
	for ; i < n; i += 2 {
		begin, size := s.classes[i], s.classes[i+1]
		for j := 0; j < size; j++ {
			s.uniques[s.store[begin+j].item] = s.nUniques
			s.nUniques++
		}
	}
	s.classes = s.classes[:shrink]
}

// initializeClass buckets every internal node by (level, fanin count).
// A bucket with a single member already has a unique colour; buckets
// with more than one member become the initial refinement classes.
func (s *state) initializeClass() {
	var byLevel [][][]int
	s.net.ForEachInt(func(id int) {
		lvl := s.levels[id]
		arity := s.net.NumFanins(id)
		for len(byLevel) <= lvl {
			byLevel = append(byLevel, nil)
		}
		for len(byLevel[lvl]) <= arity {
			byLevel[lvl] = append(byLevel[lvl], nil)
		}
		byLevel[lvl][arity] = append(byLevel[lvl][arity], id)
	})

	nItems := 0
	s.classes = s.classes[:0]
	for _, byArity := range byLevel {
		for _, ids := range byArity {
			if len(ids) == 0 {
				continue
			}
			if len(ids) == 1 {
				s.uniques[ids[0]] = s.nUniques
				s.nUniques++
				continue
			}
			s.classes = append(s.classes, nItems, len(ids))
			for _, id := range ids {
				s.store[nItems] = storeEntry{item: id}
				nItems++
			}
		}
	}
}

// constructRec recursively rebuilds id and everything in its transitive
// fanin cone into newNet, ordering each reconstructed node's fanins by
// their assigned colour (ties broken by original fanin index) so that
// isomorphic cones always produce identical fanin orderings regardless
// of how they were originally built.
func (s *state) constructRec(newNet *aig.Network, old2new []int, id int) int {
	if old2new[id] != -1 {
		return old2new[id]
	}

	type ranked struct {
		colour int
		idx    int
	}
	order := make([]ranked, 0, s.net.NumFanins(id))
	s.net.ForEachFaninIdx(id, func(idx, fi int, _ bool) {
		order = append(order, ranked{s.uniques[fi], idx})
	})
	sort.Slice(order, func(i, j int) bool {
		if order[i].colour != order[j].colour {
			return order[i].colour < order[j].colour
		}
		return order[i].idx < order[j].idx
	})

	lits := make([]aig.Lit, len(order))
	for i, r := range order {
		fi := s.net.Fanin(id, r.idx)
		c := s.net.Compl(id, r.idx)
		newFi := s.constructRec(newNet, old2new, fi)
		lits[i] = aig.NewLit(newFi, c)
	}
	newID, err := newNet.AddAnd(lits...)
	if err != nil {
		panic(fmt.Sprintf("canon: reconstructed AND node %d invalid: %v", id, err))
	}
	old2new[id] = newID
	return newID
}

// rebuild constructs the canonical network once colour refinement has
// converged: primary inputs keep their original relative order (their
// colour, idx+1, is assigned only now), and every AND node is
// reconstructed bottom-up with colour-ordered fanins.
func (s *state) rebuild() *aig.Network {
	newNet := aig.New()
	old2new := make([]int, s.net.NumNodes())
	for i := range old2new {
		old2new[i] = -1
	}
	old2new[aig.Const0] = aig.Const0

	for idx, id := range s.net.Pis() {
		old2new[id] = newNet.AddPi()
		s.uniques[id] = idx + 1
	}

	type driver struct {
		fi int
		c  bool
	}
	drivers := make([]driver, 0, s.net.NumPos())
	s.net.ForEachPoDriver(func(_ int, fi int, c bool) {
		newFi := s.constructRec(newNet, old2new, fi)
		drivers = append(drivers, driver{newFi, c})
	})
	for _, d := range drivers {
		if _, err := newNet.AddPo(d.fi, d.c); err != nil {
			panic(fmt.Sprintf("canon: reconstructed PO invalid: %v", err))
		}
	}
	return newNet
}

// Canonicalize returns a freshly built network isomorphic to net, whose
// node ids and fanin ordering depend only on structure, not on how net
// happened to be built or mutated. Two isomorphic networks passed to
// Canonicalize always produce byte-identical codec.Encode output.
//
// net should already be fully propagated and swept; Canonicalize does
// not remove redundant or dead nodes itself, it only fixes a canonical
// labeling of whatever structure is present.
//
// A network with no primary inputs has no internal nodes either: an
// AND node needs two distinct fanins, and Const0 is the only node that
// could supply one, so every PO in this case drives directly off
// Const0. There is nothing to distinguish by colour, but Canonicalize
// still returns a fresh network rather than net itself, preserving its
// "always returns a new network, never the input" contract for every
// caller, degenerate or not.
func Canonicalize(net *aig.Network) *aig.Network {
	if net.NumPis() == 0 {
		newNet := aig.New()
		net.ForEachPoDriver(func(_ int, fi int, c bool) {
			if _, err := newNet.AddPo(fi, c); err != nil {
				panic(fmt.Sprintf("canon: rebuilding PI-less network: %v", err))
			}
		})
		return newNet
	}

	s := &state{net: net}
	s.computeLevel()
	s.nUniques = net.NumPis() + 1
	s.uniques = make([]int, net.NumNodes())
	s.store = make([]storeEntry, net.NumNodes())
	s.initializeClass()
	s.values = make([]uint32, net.NumNodes())

	for len(s.classes) > 0 && s.classify(true) {
	}
	for len(s.classes) > 0 {
		if !s.classify(false) {
			s.assignOneClass()
		}
	}

	return s.rebuild()
}
