package aig

import (
	"container/list"
	"fmt"
	"sort"
)

// findFromForward scans the internals list starting at (and including)
// start looking for id, returning its element or nil. It mirrors the
// original's std::find(it, lsInts.end(), id) used to decide whether a
// fanin needs to be pulled forward in the topological order.
func (n *Network) findFromForward(start *list.Element, id int) *list.Element {
	for e := start; e != nil; e = e.Next() {
		if e.Value.(int) == id {
			return e
		}
	}
	return nil
}

// sortInts recursively pulls e's own fanins back in front of e whenever
// they currently sit at or after e's position, preserving the
// topological invariant after e itself was just moved earlier.
func (n *Network) sortInts(e *list.Element) {
	id := e.Value.(int)
	for _, f := range n.nodes[id].fanins {
		fi := f.Node()
		if e2 := n.findFromForward(e, fi); e2 != nil {
			n.internals.Remove(e2)
			newE := n.internals.InsertBefore(fi, e)
			n.internalPos[fi] = newE
			n.sortInts(newE)
		}
	}
}

// AddFanin appends a new fanin edge (fi, compl) to internal node id. It
// fails with ErrNotInternal if id is not a live internal node, with
// ErrDuplicateFanin if fi is already a fanin of id, with
// ErrConstOneFanin if fi is Const0 and compl is set, and with ErrCycle
// if the edge would close a cycle in the underlying dependency graph.
// Otherwise, if fi currently sits at or after id in topological order,
// fi (and transitively, any of its own fanins positioned at or after
// fi's new slot) is spliced to just before id first.
func (n *Network) AddFanin(id, fi int, compl bool) error {
	if !n.isInternal[id] {
		return fmt.Errorf("aig: AddFanin target %d: %w", id, ErrNotInternal)
	}
	if n.FindFanin(id, fi) != -1 {
		return fmt.Errorf("aig: AddFanin %d->%d: %w", id, fi, ErrDuplicateFanin)
	}
	if fi == Const0 && compl {
		return fmt.Errorf("aig: AddFanin %d->const0: %w", id, ErrConstOneFanin)
	}
	if n.dependsOn(fi, id) {
		return fmt.Errorf("aig: AddFanin %d->%d: %w", id, fi, ErrCycle)
	}

	e := n.internalPos[id]
	if e2 := n.findFromForward(e, fi); e2 != nil {
		n.internals.Remove(e2)
		newE := n.internals.InsertBefore(fi, e)
		n.internalPos[fi] = newE
		n.sortInts(newE)
	}

	n.nodes[fi].refs++
	n.nodes[id].fanins = append(n.nodes[id].fanins, NewLit(fi, compl))
	n.dispatch(Action{Type: ActionAddFanin, ID: id, Idx: len(n.nodes[id].fanins) - 1, Fi: fi, Compl: compl})
	return nil
}

// RemoveFanin deletes id's idx'th fanin edge. It never breaks the
// topological invariant, since removing an edge cannot create a
// forward reference.
func (n *Network) RemoveFanin(id, idx int) error {
	if !n.isInternal[id] {
		return fmt.Errorf("aig: RemoveFanin target %d: %w", id, ErrNotInternal)
	}
	if idx < 0 || idx >= len(n.nodes[id].fanins) {
		return fmt.Errorf("aig: RemoveFanin %d has no fanin index %d: %w", id, idx, ErrInvariantViolation)
	}
	f := n.nodes[id].fanins[idx]
	n.nodes[f.Node()].refs--
	n.removeFaninAt(id, idx)
	n.dispatch(Action{Type: ActionRemoveFanin, ID: id, Idx: idx, Fi: f.Node(), Compl: f.Compl()})
	return nil
}

func (n *Network) removeFaninAt(id, idx int) {
	fanins := n.nodes[id].fanins
	n.nodes[id].fanins = append(fanins[:idx], fanins[idx+1:]...)
}

// RemoveUnused deletes internal node id, which must currently have zero
// fanouts. If recursive is true, any fanin of id that becomes unused as
// a result is removed too, cascading.
func (n *Network) RemoveUnused(id int, recursive bool) error {
	if !n.isInternal[id] {
		return fmt.Errorf("aig: RemoveUnused target %d: %w", id, ErrNotInternal)
	}
	if n.nodes[id].refs != 0 {
		return fmt.Errorf("aig: RemoveUnused %d: %w", id, ErrStillReferenced)
	}
	action := Action{Type: ActionRemoveUnused, ID: id}
	for _, f := range n.nodes[id].fanins {
		n.nodes[f.Node()].refs--
		action.Fanins = append(action.Fanins, f.Node())
	}
	n.nodes[id].fanins = nil
	n.unlinkInternal(id)
	n.dispatch(action)

	if recursive {
		for _, fi := range action.Fanins {
			if n.isInternal[fi] && n.nodes[fi].refs == 0 {
				if err := n.RemoveUnused(fi, true); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (n *Network) unlinkInternal(id int) {
	if e, ok := n.internalPos[id]; ok {
		n.internals.Remove(e)
		delete(n.internalPos, id)
	}
	delete(n.isInternal, id)
}

// RemoveBuffer deletes the internal node id, which must have exactly
// one fanin (fi, c), rewriting every fanout so it refers to fi directly
// (with the complement bits combined). If a fanout already has fi as a
// fanin, the two edges are merged: if the resulting polarities agree
// the duplicate is simply dropped, otherwise the fanout's input becomes
// structurally Const0 (an AND that would see both a literal and its
// negation is identically false). A primary output left with no fanins
// by the Const0 case is given an explicit (Const0, true) literal so it
// always names exactly one driver.
func (n *Network) RemoveBuffer(id int) error {
	if !n.isInternal[id] {
		return fmt.Errorf("aig: RemoveBuffer target %d: %w", id, ErrNotInternal)
	}
	if len(n.nodes[id].fanins) != 1 {
		return fmt.Errorf("aig: RemoveBuffer %d has %d fanins, want 1: %w", id, len(n.nodes[id].fanins), ErrInvariantViolation)
	}
	fi := n.nodes[id].fanins[0].Node()
	c := n.nodes[id].fanins[0].Compl()
	action := Action{Type: ActionRemoveBuffer, ID: id, Fi: fi, Compl: c}

	want := n.nodes[id].refs
	found := 0
	for e := n.faninScanStart(id); e != nil && found < want; e = e.Next() {
		fo := e.Value.(int)
		idx := n.FindFanin(fo, id)
		if idx < 0 {
			continue
		}
		foc := n.nodes[fo].fanins[idx].Compl()
		action.Fanouts = append(action.Fanouts, fo)
		n.rewriteBufferFanout(fo, idx, fi, c, foc)
		found++
	}
	if found < want {
		for _, po := range n.pos {
			if len(n.nodes[po].fanins) > 0 && n.nodes[po].fanins[0].Node() == id {
				foc := n.nodes[po].fanins[0].Compl()
				action.Fanouts = append(action.Fanouts, po)
				n.rewriteBufferFanout(po, 0, fi, c, foc)
				found++
				if found == want {
					break
				}
			}
		}
	}

	n.nodes[id].refs = 0
	n.nodes[fi].refs--
	n.nodes[id].fanins = nil
	if !n.propagating {
		n.unlinkInternal(id)
	} else {
		delete(n.isInternal, id)
	}
	n.dispatch(action)
	return nil
}

func (n *Network) rewriteBufferFanout(fo, idx, fi int, c, foc bool) {
	if idx2 := n.FindFanin(fo, fi); idx2 != -1 {
		if n.nodes[fo].fanins[idx2].Compl() == (c != foc) {
			n.removeFaninAt(fo, idx)
		} else {
			n.nodes[fi].refs--
			n.nodes[Const0].refs++
			if idx < idx2 {
				n.nodes[fo].fanins[idx] = NewLit(Const0, false)
				n.removeFaninAt(fo, idx2)
			} else {
				n.nodes[fo].fanins[idx2] = NewLit(Const0, false)
				n.removeFaninAt(fo, idx)
			}
		}
		if n.propagating && len(n.nodes[fo].fanins) <= 1 {
			n.stamp[fo] = n.epoch
		}
		return
	}
	if fi == Const0 {
		if foc {
			n.removeFaninAt(fo, idx)
			if len(n.nodes[fo].fanins) == 0 && n.Kind(fo) == KindPo {
				n.nodes[Const0].refs++
				n.nodes[fo].fanins = append(n.nodes[fo].fanins, NewLit(Const0, true))
			}
		} else {
			n.nodes[Const0].refs++
			n.nodes[fo].fanins[idx] = NewLit(Const0, false)
		}
		if n.propagating && len(n.nodes[fo].fanins) <= 1 {
			n.stamp[fo] = n.epoch
		}
		return
	}
	n.nodes[fo].fanins[idx] = NewLit(fi, c != foc)
	n.nodes[fi].refs++
}

// RemoveConst deletes the internal node id, which must be structurally
// constant: either it has zero fanins (the vacuous AND, conventionally
// 1) or one of its fanins is the literal (Const0, false) (an AND with
// an explicit 0 input, always 0). Every fanout is rewritten the same
// way RemoveBuffer rewrites them, substituting id's own constant value
// for the edge it drove.
func (n *Network) RemoveConst(id int) error {
	if !n.isInternal[id] {
		return fmt.Errorf("aig: RemoveConst target %d: %w", id, ErrNotInternal)
	}
	hasConst0 := n.FindFanin(id, Const0) != -1
	if len(n.nodes[id].fanins) != 0 && !hasConst0 {
		return fmt.Errorf("aig: RemoveConst %d is not structurally constant: %w", id, ErrInvariantViolation)
	}

	action := Action{Type: ActionRemoveConst, ID: id}
	for _, f := range n.nodes[id].fanins {
		n.nodes[f.Node()].refs--
		action.Fanins = append(action.Fanins, f.Node())
	}
	value := len(n.nodes[id].fanins) == 0 // vacuous AND reads as logical 1

	want := n.nodes[id].refs
	found := 0
	for e := n.faninScanStart(id); e != nil && found < want; e = e.Next() {
		fo := e.Value.(int)
		idx := n.FindFanin(fo, id)
		if idx < 0 {
			continue
		}
		foc := n.nodes[fo].fanins[idx].Compl()
		action.Fanouts = append(action.Fanouts, fo)
		n.rewriteConstFanout(fo, idx, value, foc)
		found++
	}
	if found < want {
		for _, po := range n.pos {
			if len(n.nodes[po].fanins) > 0 && n.nodes[po].fanins[0].Node() == id {
				foc := n.nodes[po].fanins[0].Compl()
				action.Fanouts = append(action.Fanouts, po)
				n.rewriteConstFanout(po, 0, value, foc)
				found++
				if found == want {
					break
				}
			}
		}
	}

	n.nodes[id].refs = 0
	n.nodes[id].fanins = nil
	if !n.propagating {
		n.unlinkInternal(id)
	} else {
		delete(n.isInternal, id)
	}
	n.dispatch(action)
	return nil
}

func (n *Network) rewriteConstFanout(fo, idx int, value, foc bool) {
	if value != foc {
		// the literal presented to fo was constant-1: drop the input
		n.removeFaninAt(fo, idx)
		if len(n.nodes[fo].fanins) == 0 && n.Kind(fo) == KindPo {
			n.nodes[Const0].refs++
			n.nodes[fo].fanins = append(n.nodes[fo].fanins, NewLit(Const0, true))
		}
	} else {
		// the literal presented to fo was constant-0: fo is now Const0
		n.nodes[Const0].refs++
		n.nodes[fo].fanins[idx] = NewLit(Const0, false)
	}
	if n.propagating && len(n.nodes[fo].fanins) <= 1 {
		n.stamp[fo] = n.epoch
	}
}

// Propagate sweeps structurally trivial nodes (single-fanin buffers and
// structural constants) out of the network, folding their effect into
// fanouts, which may in turn become trivial and get folded too. Pass
// All to process the whole network, or a specific internal node id to
// process only its descendants.
func (n *Network) Propagate(node int) {
	n.bumpEpoch()
	ep := n.epoch

	var start *list.Element
	if node == All {
		for e := n.internals.Front(); e != nil; e = e.Next() {
			id := e.Value.(int)
			if n.isTrivial(id) {
				n.stamp[id] = ep
			}
		}
		start = n.internals.Front()
	} else {
		n.stamp[node] = ep
		start = n.internalPos[node]
	}

	n.propagating = true
	for e := start; e != nil; {
		id := e.Value.(int)
		next := e.Next()
		if n.stamp[id] == ep {
			if len(n.nodes[id].fanins) == 1 {
				n.RemoveBuffer(id)
			} else {
				n.RemoveConst(id)
			}
			n.internals.Remove(e)
			delete(n.internalPos, id)
		}
		e = next
	}
	n.propagating = false
}

func (n *Network) isTrivial(id int) bool {
	return len(n.nodes[id].fanins) <= 1 || n.FindFanin(id, Const0) != -1
}

// Sweep removes every internal node with zero fanouts, in reverse
// topological order so newly-unreferenced fanins are caught in the same
// pass. If propagate is true, Propagate(All) runs first.
func (n *Network) Sweep(propagate bool) {
	if propagate {
		n.Propagate(All)
	}
	for e := n.internals.Back(); e != nil; {
		id := e.Value.(int)
		prev := e.Prev()
		if n.nodes[id].refs == 0 {
			_ = n.RemoveUnused(id, false)
		}
		e = prev
	}
}

// TrivialCollapse inlines any uncomplemented fanin of id that is itself
// an internal AND with exactly one fanout, splicing that fanin's own
// fanins into id's fanin list in its place. This is always semantics
// preserving: AND is associative, so and(x, and(a,b)) == and(x,a,b).
// A fanin is left in place when one of its own fanins is already a
// fanin of id, since splicing it in would repeat that node.
func (n *Network) TrivialCollapse(id int) {
	for idx := 0; idx < len(n.nodes[id].fanins); {
		f := n.nodes[id].fanins[idx]
		fi := f.Node()
		collapsible := !f.Compl() && n.isInternal[fi] && n.nodes[fi].refs == 1
		for _, ff := range n.nodes[fi].fanins {
			if collapsible && n.FindFanin(id, ff.Node()) != -1 {
				collapsible = false
			}
		}
		if collapsible {
			inner := append([]Lit(nil), n.nodes[fi].fanins...)
			action := Action{Type: ActionTrivialCollapse, ID: id, Idx: idx, Fi: fi}
			for _, ff := range inner {
				action.Fanins = append(action.Fanins, ff.Node())
			}

			newFanins := make([]Lit, 0, len(n.nodes[id].fanins)-1+len(inner))
			newFanins = append(newFanins, n.nodes[id].fanins[:idx]...)
			newFanins = append(newFanins, inner...)
			newFanins = append(newFanins, n.nodes[id].fanins[idx+1:]...)
			n.nodes[id].fanins = newFanins

			n.nodes[fi].refs = 0
			n.nodes[fi].fanins = nil
			n.unlinkInternal(fi)
			n.dispatch(action)
			continue
		}
		idx++
	}
}

// TrivialDecompose splits id, an internal node with more than two
// fanins, into a right-leaning chain of binary ANDs, repeatedly peeling
// the last two fanins off into a freshly created node until id itself
// has exactly two fanins left.
func (n *Network) TrivialDecompose(id int) {
	for len(n.nodes[id].fanins) > 2 {
		fanins := n.nodes[id].fanins
		k := len(fanins)
		last, secondLast := fanins[k-1], fanins[k-2]
		n.nodes[id].fanins = fanins[:k-2]

		newID := n.allocNode(KindAnd)
		n.nodes[newID].fanins = []Lit{secondLast, last}
		n.nodes[newID].refs = 1
		n.nodes[id].fanins = append(n.nodes[id].fanins, NewLit(newID, false))

		e := n.internalPos[id]
		newE := n.internals.InsertBefore(newID, e)
		n.internalPos[newID] = newE
		n.isInternal[newID] = true

		n.dispatch(Action{
			Type:   ActionTrivialDecompose,
			ID:     id,
			Idx:    k - 2,
			Fi:     newID,
			Fanins: []int{secondLast.Node(), last.Node()},
		})
	}
}

// SortFanins reorders id's fanin slice in place using less as the
// ordering relation between (index i) and (index j). The sort is
// stable so a deterministic fanin-ordering policy can layer additional
// tie-breaks on top without disturbing unrelated relative order.
func (n *Network) SortFanins(id int, less func(i, j int) bool) {
	sort.SliceStable(n.nodes[id].fanins, less)
	n.dispatch(Action{Type: ActionSortFanins, ID: id})
}
