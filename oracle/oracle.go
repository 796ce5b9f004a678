package oracle

import (
	"errors"

	"github.com/rrrsynth/rrr/aig"
)

// ErrIndeterminate is returned alongside a false verdict when the
// oracle could not conclusively prove a fanin redundant or not, such
// as when only a random sample of input patterns was checked. The
// optimizer treats an indeterminate result the same as "not redundant"
// and moves on.
var ErrIndeterminate = errors.New("oracle: redundancy could not be conclusively determined")

// Oracle decides fanin redundancy for an assigned Network. A single
// Oracle is assigned to one network at a time; reassigning discards
// any pending "next best" bookkeeping, whatever the reuse flag.
type Oracle interface {
	// Assign binds the oracle to net, subscribing to its mutation
	// callbacks. If reuse is true, state built for a prior network
	// (such as a cached simulation pattern set) may be kept where
	// still valid instead of being rebuilt from scratch.
	Assign(net *aig.Network, reuse bool)

	// CheckRedundancy reports whether the idx'th fanin of node id is
	// redundant. A false verdict paired with ErrIndeterminate means
	// the check was inconclusive, not that the fanin is known live.
	CheckRedundancy(id, idx int) (bool, error)

	// ResetNext clears the "next best" candidate tracked since the
	// last threshold change or reset.
	ResetNext()

	// SetThreshold changes the acceptance threshold used by
	// CheckRedundancy.
	SetThreshold(t int64)

	// GetNext returns the score of the best candidate seen so far that
	// did not pass the current threshold.
	GetNext() int64

	// GetNextPair returns the (id, idx) of the candidate GetNext
	// describes, or (-1, -1) if none has been seen.
	GetNextPair() (id, idx int)
}
