package oracle

import (
	"fmt"
	"math"

	"github.com/rrrsynth/rrr/aig"
)

// SimOracle is the reference Oracle: it scores fanin redundancy via
// direct Boolean simulation (boolSim) and layers the monotone
// threshold bookkeeping of Threshold on top. Networks small enough to
// simulate exhaustively get a definitive verdict; larger ones fall
// back to random sampling, and a clean sample is reported with
// ErrIndeterminate rather than as a proven redundancy.
type SimOracle struct {
	sim       *boolSim
	threshold *Threshold[int64]
}

// NewSimOracle returns a SimOracle whose random sampling (used only
// for networks too large to simulate exhaustively) is seeded with
// seed, so two runs over the same network produce the same verdicts.
func NewSimOracle(seed int64) *SimOracle {
	sim := newBoolSim(seed)
	return &SimOracle{
		sim:       sim,
		threshold: NewThreshold[int64](sim, true, math.MinInt64, math.MaxInt64),
	}
}

func (o *SimOracle) Assign(net *aig.Network, reuse bool) {
	o.sim.AssignNetwork(net, reuse)
	o.threshold.Assign(net, reuse)
}

func (o *SimOracle) CheckRedundancy(id, idx int) (bool, error) {
	redundant := o.threshold.Check(id, idx)
	if redundant && !o.sim.exhaustive {
		return false, fmt.Errorf("oracle: node %d fanin %d: %w", id, idx, ErrIndeterminate)
	}
	return redundant, nil
}

func (o *SimOracle) ResetNext() { o.threshold.ResetNext() }

func (o *SimOracle) SetThreshold(t int64) { o.threshold.SetThreshold(t) }

func (o *SimOracle) GetNext() int64 { return o.threshold.GetNext() }

func (o *SimOracle) GetNextPair() (int, int) { return o.threshold.GetNextPair() }

var _ Oracle = (*SimOracle)(nil)
