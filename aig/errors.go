package aig

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Network mutation methods. Callers compare
// against these with errors.Is rather than inspecting error strings.
var (
	// ErrMalformedInput is returned by decoders (codec, aiger) when the
	// input bytes cannot be parsed into a valid Network.
	ErrMalformedInput = errors.New("aig: malformed input")

	// ErrInvariantViolation is returned when a mutation would leave the
	// network in a state that breaks one of the network invariants
	// (duplicate fanin, literal constant-1 fanin, missing node, wrong
	// fanin arity). The network is left unchanged when this is returned.
	ErrInvariantViolation = errors.New("aig: invariant violation")

	// ErrDuplicateFanin is a specific ErrInvariantViolation case: a node
	// would gain two fanin edges pointing at the same node.
	ErrDuplicateFanin = fmt.Errorf("aig: duplicate fanin: %w", ErrInvariantViolation)

	// ErrConstOneFanin is a specific ErrInvariantViolation case: a fanin
	// edge would reference Const0 with its complement bit set, i.e. a
	// literal constant-1 input, which is always represented structurally
	// instead.
	ErrConstOneFanin = fmt.Errorf("aig: literal constant-1 fanin is forbidden: %w", ErrInvariantViolation)

	// ErrCycle is returned by AddFanin when adding the requested edge
	// would make the network's underlying dependency graph cyclic. It is
	// also an ErrInvariantViolation case.
	ErrCycle = fmt.Errorf("aig: operation would create a cycle: %w", ErrInvariantViolation)

	// ErrNotInternal is returned when an operation that requires an
	// internal (AND) node target is given a PI, PO, or Const0 id.
	ErrNotInternal = errors.New("aig: node is not an internal AND gate")

	// ErrStillReferenced is returned by RemoveUnused when the target
	// node's fanout count is not zero.
	ErrStillReferenced = errors.New("aig: node still has fanouts")

	// ErrUnknownSlot is returned by Load/PopBack when the requested
	// snapshot slot does not exist.
	ErrUnknownSlot = errors.New("aig: unknown snapshot slot")
)
