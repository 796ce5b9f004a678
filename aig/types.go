package aig

// NodeKind classifies a Network node.
type NodeKind uint8

const (
	// KindConst0 is the single logical-0 node every network carries at
	// id 0. It has no fanins and is never added by the caller.
	KindConst0 NodeKind = iota
	// KindPi is a primary input: no fanins, contributed by AddPi.
	KindPi
	// KindAnd is an internal AND gate with two or more fanins.
	KindAnd
	// KindPo is a primary output: exactly one fanin, contributed by AddPo.
	KindPo
)

func (k NodeKind) String() string {
	switch k {
	case KindConst0:
		return "const0"
	case KindPi:
		return "pi"
	case KindAnd:
		return "and"
	case KindPo:
		return "po"
	default:
		return "unknown"
	}
}

// Const0 is the id of the network's constant-0 node. It always exists
// and is never internal, never a PI, never a PO.
const Const0 = 0

// All is the sentinel passed to Propagate to request a whole-network
// pass instead of a pass rooted at a single node.
const All = -1

// AutoSlot, passed to Save, requests a fresh snapshot slot rather than
// overwriting an existing one.
const AutoSlot = -1

// Lit is a complementable fanin edge: the low bit is the complement
// flag, the remaining bits are the target node id. It mirrors the
// literal encoding used by the AIGER format and by the codec package.
type Lit int32

// NewLit builds the literal referencing node id with the given
// complement bit.
func NewLit(id int, compl bool) Lit {
	v := Lit(id) << 1
	if compl {
		v |= 1
	}
	return v
}

// Node returns the target node id of the literal.
func (l Lit) Node() int { return int(l >> 1) }

// Compl reports whether the literal's complement bit is set.
func (l Lit) Compl() bool { return l&1 != 0 }

// ActionType enumerates the kinds of mutation a Network can dispatch to
// its subscribed callbacks.
type ActionType int

const (
	ActionAddFanin ActionType = iota
	ActionRemoveFanin
	ActionRemoveUnused
	ActionRemoveBuffer
	ActionRemoveConst
	ActionTrivialCollapse
	ActionTrivialDecompose
	ActionSortFanins
	ActionSave
	ActionLoad
	ActionPopBack
)

func (t ActionType) String() string {
	switch t {
	case ActionAddFanin:
		return "add_fanin"
	case ActionRemoveFanin:
		return "remove_fanin"
	case ActionRemoveUnused:
		return "remove_unused"
	case ActionRemoveBuffer:
		return "remove_buffer"
	case ActionRemoveConst:
		return "remove_const"
	case ActionTrivialCollapse:
		return "trivial_collapse"
	case ActionTrivialDecompose:
		return "trivial_decompose"
	case ActionSortFanins:
		return "sort_fanins"
	case ActionSave:
		return "save"
	case ActionLoad:
		return "load"
	case ActionPopBack:
		return "pop_back"
	default:
		return "unknown"
	}
}

// Action describes a single committed mutation. Fields not relevant to
// a given Type are left at their zero value. Callbacks must treat an
// Action as read-only.
type Action struct {
	Type    ActionType
	ID      int   // the node the action was performed on (or slot, for Save/Load/PopBack)
	Idx     int   // fanin index involved, where applicable
	Fi      int   // fanin node id involved, where applicable
	Compl   bool  // complement bit involved, where applicable
	Fanins  []int // fanins touched (RemoveUnused/RemoveConst/TrivialCollapse/TrivialDecompose)
	Fanouts []int // fanouts rewritten (RemoveBuffer/RemoveConst)
}

// node is the internal per-id record. Exported accessors on Network
// provide read access; fields are never exposed directly.
type node struct {
	kind   NodeKind
	fanins []Lit
	refs   int
}
