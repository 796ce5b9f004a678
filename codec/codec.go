package codec

import (
	"bytes"
	"fmt"

	"github.com/rrrsynth/rrr/aig"
)

// Encode serializes net into its binary form. Primary outputs must be
// readable purely from the network's own Pos()/ForEachPoDriver view;
// the encoding assigns each live node a dense id (Const0 at 0, primary
// inputs at 1..NumPis, internal nodes at NumPis+1.. in topological
// order) independent of whatever ids the live Network happens to be
// using internally, so a network with removed/gapped ids still
// round-trips to a compact file.
func Encode(net *aig.Network) []byte {
	ints := net.Ints()
	pis := net.Pis()

	id2new := make(map[int]int, 1+len(pis)+len(ints))
	id2new[aig.Const0] = 0
	for i, pi := range pis {
		id2new[pi] = 1 + i
	}
	for i, id := range ints {
		id2new[id] = 1 + len(pis) + i
	}

	buf := make([]byte, 0, 16+4*len(ints))
	buf = appendVarint(buf, len(pis))
	buf = appendVarint(buf, net.NumPos())
	buf = appendVarint(buf, len(ints))

	for _, id := range ints {
		net.SortFanins(id, func(i, j int) bool {
			return id2new[net.Fanin(id, i)] < id2new[net.Fanin(id, j)]
		})
		buf = appendVarint(buf, net.NumFanins(id))
		base := id2new[id] << 1
		net.ForEachFaninReverse(id, func(fi int, c bool) {
			edge := id2new[fi] << 1
			if c {
				edge |= 1
			}
			buf = appendVarint(buf, base-edge)
			base = edge
		})
	}
	net.ForEachPoDriver(func(_ int, fi int, c bool) {
		edge := id2new[fi] << 1
		if c {
			edge |= 1
		}
		buf = appendVarint(buf, edge)
	})
	return buf
}

// Decode parses the binary form produced by Encode back into a fresh
// Network. It returns aig.ErrMalformedInput (wrapped) on any structural
// problem: truncated input, a negative reconstructed fanin edge, or an
// AND node whose reconstructed fanins violate a Network invariant.
func Decode(data []byte) (*aig.Network, error) {
	r := bytes.NewReader(data)
	nPis, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	nPos, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	nInts, err := readVarint(r)
	if err != nil {
		return nil, err
	}

	net := aig.New()
	for i := 0; i < nPis; i++ {
		net.AddPi()
	}

	for id := nPis + 1; id < nPis+1+nInts; id++ {
		nFanins, err := readVarint(r)
		if err != nil {
			return nil, err
		}
		if nFanins < 2 {
			return nil, fmt.Errorf("codec: AND node %d has arity %d: %w", id, nFanins, aig.ErrMalformedInput)
		}
		fanins := make([]aig.Lit, nFanins)
		base := id << 1
		for idx := nFanins - 1; idx >= 0; idx-- {
			diff, err := readVarint(r)
			if err != nil {
				return nil, err
			}
			edge := base - diff
			if edge < 0 {
				return nil, fmt.Errorf("codec: AND node %d fanin %d: negative edge: %w", id, idx, aig.ErrMalformedInput)
			}
			fanins[idx] = aig.NewLit(edge>>1, edge&1 != 0)
			base = edge
		}
		newID, err := net.AddAnd(fanins...)
		if err != nil {
			return nil, fmt.Errorf("codec: AND node %d: %w", id, err)
		}
		if newID != id {
			return nil, fmt.Errorf("codec: AND node id mismatch, want %d got %d: %w", id, newID, aig.ErrMalformedInput)
		}
	}

	for i := 0; i < nPos; i++ {
		edge, err := readVarint(r)
		if err != nil {
			return nil, err
		}
		if _, err := net.AddPo(edge>>1, edge&1 != 0); err != nil {
			return nil, fmt.Errorf("codec: PO %d: %w", i, err)
		}
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("codec: %d trailing bytes: %w", r.Len(), aig.ErrMalformedInput)
	}
	return net, nil
}
