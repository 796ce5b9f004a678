package aig

import (
	"container/list"
	"fmt"
)

// Network is an And-Inverter Graph: a DAG of Const0/Pi/And/Po nodes
// joined by complementable fanin edges.
//
// internals holds the ids of AND nodes in topological order (every
// node's fanins appear before it in the list); internalPos gives O(1)
// access to a node's list element so mutation methods can splice
// without a linear search for the element itself (finding where to
// splice to, when required, is still a bounded linear scan, matching
// the original's std::list-based implementation).
//
// Network is not safe for concurrent mutation; callers that shard work
// across goroutines give each worker its own Network (see the
// scheduler package).
type Network struct {
	nodes []node
	pis   []int
	pos   []int

	internals   *list.List
	internalPos map[int]*list.Element
	isInternal  map[int]bool

	epoch uint64
	stamp []uint64

	propagating bool

	callbacks []func(Action)
	backups   []*Network
}

// New returns an empty network containing only the Const0 node.
func New() *Network {
	n := &Network{
		internals:   list.New(),
		internalPos: make(map[int]*list.Element),
		isInternal:  make(map[int]bool),
	}
	n.nodes = append(n.nodes, node{kind: KindConst0})
	n.stamp = append(n.stamp, 0)
	return n
}

func (n *Network) allocNode(k NodeKind) int {
	id := len(n.nodes)
	n.nodes = append(n.nodes, node{kind: k})
	n.stamp = append(n.stamp, 0)
	return id
}

// AddPi appends a new primary input and returns its id.
func (n *Network) AddPi() int {
	id := n.allocNode(KindPi)
	n.pis = append(n.pis, id)
	return id
}

// AddAnd appends a new internal AND node with the given fanins, which
// must number at least two, reference existing nodes, contain no
// duplicates, and contain no literal constant-1 (Const0 with the
// complement bit set). On success the new node is placed at the back
// of the topological order (valid since all referenced fanins already
// exist and therefore already precede it).
func (n *Network) AddAnd(fanins ...Lit) (int, error) {
	if len(fanins) < 2 {
		return 0, fmt.Errorf("aig: AddAnd requires at least 2 fanins, got %d: %w", len(fanins), ErrInvariantViolation)
	}
	seen := make(map[int]struct{}, len(fanins))
	for _, f := range fanins {
		id := f.Node()
		if id < 0 || id >= len(n.nodes) {
			return 0, fmt.Errorf("aig: fanin %d does not exist: %w", id, ErrInvariantViolation)
		}
		if id == Const0 && f.Compl() {
			return 0, fmt.Errorf("aig: %w", ErrConstOneFanin)
		}
		if _, dup := seen[id]; dup {
			return 0, fmt.Errorf("aig: fanin %d repeated: %w", id, ErrDuplicateFanin)
		}
		seen[id] = struct{}{}
	}

	id := n.allocNode(KindAnd)
	n.nodes[id].fanins = append([]Lit(nil), fanins...)
	for _, f := range fanins {
		n.nodes[f.Node()].refs++
	}
	elem := n.internals.PushBack(id)
	n.internalPos[id] = elem
	n.isInternal[id] = true
	return id, nil
}

// AddPo appends a new primary output driven by the literal (fanin,
// compl) and returns its id.
func (n *Network) AddPo(fanin int, compl bool) (int, error) {
	if fanin < 0 || fanin >= len(n.nodes) {
		return 0, fmt.Errorf("aig: fanin %d does not exist: %w", fanin, ErrInvariantViolation)
	}
	id := n.allocNode(KindPo)
	n.nodes[id].fanins = []Lit{NewLit(fanin, compl)}
	n.nodes[fanin].refs++
	n.pos = append(n.pos, id)
	return id, nil
}

// AddCallback subscribes fn to every future committed Action.
func (n *Network) AddCallback(fn func(Action)) {
	n.callbacks = append(n.callbacks, fn)
}

func (n *Network) dispatch(a Action) {
	for _, cb := range n.callbacks {
		cb(a)
	}
}

// NumNodes returns the total number of allocated nodes, including
// Const0.
func (n *Network) NumNodes() int { return len(n.nodes) }

// NumPis returns the number of primary inputs.
func (n *Network) NumPis() int { return len(n.pis) }

// NumInts returns the number of internal (AND) nodes currently live.
func (n *Network) NumInts() int { return n.internals.Len() }

// NumPos returns the number of primary outputs.
func (n *Network) NumPos() int { return len(n.pos) }

// Pi returns the id of the idx'th primary input.
func (n *Network) Pi(idx int) int { return n.pis[idx] }

// PiIndex returns the creation-order index of primary input id, or -1
// if id is not a primary input.
func (n *Network) PiIndex(id int) int {
	for i, p := range n.pis {
		if p == id {
			return i
		}
	}
	return -1
}

// IntIndex returns the current topological-order position of internal
// node id, or -1 if id is not a live internal node.
func (n *Network) IntIndex(id int) int {
	i := 0
	for e := n.internals.Front(); e != nil; e = e.Next() {
		if e.Value.(int) == id {
			return i
		}
		i++
	}
	return -1
}

// Po returns the id of the idx'th primary output.
func (n *Network) Po(idx int) int { return n.pos[idx] }

// Pis returns a copy of the primary input ids in creation order.
func (n *Network) Pis() []int { return append([]int(nil), n.pis...) }

// Pos returns a copy of the primary output ids in creation order.
func (n *Network) Pos() []int { return append([]int(nil), n.pos...) }

// Ints returns the internal node ids in current topological order.
func (n *Network) Ints() []int {
	out := make([]int, 0, n.internals.Len())
	for e := n.internals.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(int))
	}
	return out
}

// Kind reports the node kind of id.
func (n *Network) Kind(id int) NodeKind { return n.nodes[id].kind }

// IsPi reports whether id is a primary input.
func (n *Network) IsPi(id int) bool { return n.nodes[id].kind == KindPi }

// IsInt reports whether id is a currently-live internal AND node.
func (n *Network) IsInt(id int) bool { return n.isInternal[id] }

// IsPo reports whether id is a primary output.
func (n *Network) IsPo(id int) bool { return n.nodes[id].kind == KindPo }

// IsPoDriver reports whether some primary output is directly driven by
// id (regardless of complement).
func (n *Network) IsPoDriver(id int) bool {
	for _, po := range n.pos {
		if n.nodes[po].fanins[0].Node() == id {
			return true
		}
	}
	return false
}

// NumFanins returns the current fanin count of id.
func (n *Network) NumFanins(id int) int { return len(n.nodes[id].fanins) }

// NumFanouts returns the current fanout (reference) count of id.
func (n *Network) NumFanouts(id int) int { return n.nodes[id].refs }

// FindFanin returns the index of fi among id's fanins, or -1 if absent.
func (n *Network) FindFanin(id, fi int) int {
	for i, f := range n.nodes[id].fanins {
		if f.Node() == fi {
			return i
		}
	}
	return -1
}

// Fanin returns the target node id of id's idx'th fanin.
func (n *Network) Fanin(id, idx int) int { return n.nodes[id].fanins[idx].Node() }

// Compl returns the complement bit of id's idx'th fanin.
func (n *Network) Compl(id, idx int) bool { return n.nodes[id].fanins[idx].Compl() }

// ForEachPi calls fn once per primary input, in creation order.
func (n *Network) ForEachPi(fn func(id int)) {
	for _, id := range n.pis {
		fn(id)
	}
}

// ForEachInt calls fn once per internal node, in topological order.
func (n *Network) ForEachInt(fn func(id int)) {
	for e := n.internals.Front(); e != nil; e = e.Next() {
		fn(e.Value.(int))
	}
}

// ForEachIntReverse calls fn once per internal node, in reverse
// topological order.
func (n *Network) ForEachIntReverse(fn func(id int)) {
	for e := n.internals.Back(); e != nil; e = e.Prev() {
		fn(e.Value.(int))
	}
}

// ForEachPo calls fn once per primary output, in creation order.
func (n *Network) ForEachPo(fn func(id int)) {
	for _, id := range n.pos {
		fn(id)
	}
}

// ForEachPoDriver calls fn once per primary output with its driving
// literal.
func (n *Network) ForEachPoDriver(fn func(id int, fi int, compl bool)) {
	for _, id := range n.pos {
		l := n.nodes[id].fanins[0]
		fn(id, l.Node(), l.Compl())
	}
}

// ForEachFanin calls fn once per fanin of id, in storage order.
func (n *Network) ForEachFanin(id int, fn func(fi int, compl bool)) {
	for _, f := range n.nodes[id].fanins {
		fn(f.Node(), f.Compl())
	}
}

// ForEachFaninIdx calls fn once per fanin of id, with its index.
func (n *Network) ForEachFaninIdx(id int, fn func(idx, fi int, compl bool)) {
	for i, f := range n.nodes[id].fanins {
		fn(i, f.Node(), f.Compl())
	}
}

// ForEachFaninReverse calls fn once per fanin of id, in reverse storage
// order (used by the codec, which serializes fanins back-to-front).
func (n *Network) ForEachFaninReverse(id int, fn func(fi int, compl bool)) {
	fanins := n.nodes[id].fanins
	for i := len(fanins) - 1; i >= 0; i-- {
		fn(fanins[i].Node(), fanins[i].Compl())
	}
}

// faninScanStart returns the list element from which a forward scan for
// id's fanouts should begin: just after id's own position if id is
// internal, or the front of the list if id is a PI or Const0 (which
// never occupy a list position themselves but may still be the fanin of
// any internal node).
func (n *Network) faninScanStart(id int) *list.Element {
	if e, ok := n.internalPos[id]; ok {
		return e.Next()
	}
	return n.internals.Front()
}

// ForEachFanout calls fn once per fanout of id (an internal node or a
// primary output consuming id as a fanin), stopping once NumFanouts(id)
// occurrences have been found. Fanout discovery is not cached; it is
// recovered by scanning forward through the topological order, then
// falling back to a scan of the primary outputs.
func (n *Network) ForEachFanout(id int, fn func(fo int, compl bool)) {
	want := n.nodes[id].refs
	if want == 0 {
		return
	}
	found := 0
	for e := n.faninScanStart(id); e != nil && found < want; e = e.Next() {
		fo := e.Value.(int)
		if idx := n.FindFanin(fo, id); idx >= 0 {
			fn(fo, n.nodes[fo].fanins[idx].Compl())
			found++
		}
	}
	if found < want {
		for _, po := range n.pos {
			if n.nodes[po].fanins[0].Node() == id {
				fn(po, n.nodes[po].fanins[0].Compl())
				found++
				if found == want {
					break
				}
			}
		}
	}
}

// ForEachFanoutIdx is like ForEachFanout but also reports the fanin
// index within fo that references id.
func (n *Network) ForEachFanoutIdx(id int, fn func(fo, idx int, compl bool)) {
	want := n.nodes[id].refs
	if want == 0 {
		return
	}
	found := 0
	for e := n.faninScanStart(id); e != nil && found < want; e = e.Next() {
		fo := e.Value.(int)
		if idx := n.FindFanin(fo, id); idx >= 0 {
			fn(fo, idx, n.nodes[fo].fanins[idx].Compl())
			found++
		}
	}
	if found < want {
		for _, po := range n.pos {
			if n.nodes[po].fanins[0].Node() == id {
				fn(po, 0, n.nodes[po].fanins[0].Compl())
				found++
				if found == want {
					break
				}
			}
		}
	}
}
