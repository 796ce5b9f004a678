package aiger

import "github.com/rrrsynth/rrr/aig"

// faninPair is one materialized 2-input AND gate in AIGER's literal
// space: lhs is the gate's own even literal, rhs0/rhs1 its two child
// literals with rhs0 >= rhs1.
type faninPair struct {
	lhs, rhs0, rhs1 int
}

// computeValues assigns every live node its AIGER literal: 0 for the
// constant, then one even literal per primary input in creation order,
// then one per internal node. A zero-fanin internal node (a collapsed
// constant) and a one-fanin internal node (a buffer or inverter) are
// folded directly into the literal of whatever they reduce to, since
// AIGER has no node kind for either; only a genuine multi-fanin AND
// consumes a fresh literal (one for its own output, plus one more per
// fanin beyond the first two, reserved here and assigned during
// decomposeAnds).
func computeValues(net *aig.Network) (values []int, nNodes int) {
	values = make([]int, net.NumNodes())
	values[aig.Const0] = nNodes << 1
	nNodes++
	net.ForEachPi(func(id int) {
		values[id] = nNodes << 1
		nNodes++
	})
	net.ForEachInt(func(id int) {
		switch net.NumFanins(id) {
		case 0:
			values[id] = values[aig.Const0] ^ 1
		case 1:
			v := values[net.Fanin(id, 0)]
			if net.Compl(id, 0) {
				v ^= 1
			}
			values[id] = v
		default:
			values[id] = nNodes << 1
			nNodes += net.NumFanins(id) - 1
		}
	})
	return values, nNodes
}

// decomposeAnds walks every multi-fanin internal node and splits it
// into a chain of 2-input AND gates, in AIGER literal-increasing
// order: the node's two highest-indexed fanins pair first (sorted so
// rhs0 is not smaller than rhs1), and each remaining fanin combines
// with the running result via one more freshly reserved literal.
// values is mutated in place so that, by the time this returns,
// values[id] holds the literal of the chain's final gate: the one any
// other node or primary output referencing id should see.
func decomposeAnds(net *aig.Network, values []int) []faninPair {
	var gates []faninPair
	edgeOf := func(id, idx int) int {
		v := values[net.Fanin(id, idx)]
		if net.Compl(id, idx) {
			v ^= 1
		}
		return v
	}
	net.ForEachInt(func(id int) {
		n := net.NumFanins(id)
		if n <= 1 {
			return
		}
		i := n - 1
		c0 := edgeOf(id, i)
		i--
		c1 := edgeOf(id, i)
		i--
		if c0 < c1 {
			c0, c1 = c1, c0
		}
		gates = append(gates, faninPair{lhs: values[id], rhs0: c0, rhs1: c1})
		for i >= 0 {
			prev := values[id]
			values[id] += 2
			gates = append(gates, faninPair{lhs: values[id], rhs0: prev, rhs1: edgeOf(id, i)})
			i--
		}
	})
	return gates
}
