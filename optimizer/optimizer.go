package optimizer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"

	"github.com/rrrsynth/rrr/aig"
	"github.com/rrrsynth/rrr/oracle"
)

// RandomPolicy requests that Run pick one of the 18 fan-in ordering
// policies uniformly at random, once per run, from the run's own seed.
const RandomPolicy Policy = -1

// Option configures an Optimizer at construction.
type Option func(*Optimizer)

// WithPolicy fixes the fan-in ordering policy used by every Run call.
// The default is RandomPolicy.
func WithPolicy(p Policy) Option {
	return func(o *Optimizer) { o.policy = p }
}

// WithSortInitial controls whether fan-ins across the whole network are
// sorted once before the first redundancy-removal traversal, in
// addition to the per-node sort every traversal already performs. The
// default is true.
func WithSortInitial(b bool) Option {
	return func(o *Optimizer) { o.sortInitial = b }
}

// WithLogger sets the logger used for random-policy selection and
// indeterminate-verdict diagnostics. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.log = l
		}
	}
}

// Optimizer repeatedly removes redundant fan-ins from an assigned
// network until a full traversal finds nothing left to remove, or the
// context passed to Run is cancelled.
type Optimizer struct {
	net    *aig.Network
	oracle oracle.Oracle
	log    *slog.Logger

	policy      Policy
	sortInitial bool

	rng       *rand.Rand
	piOrder   []int
	costs     []float64
	runPolicy Policy

	stats Stats
}

// Stats accumulates counters across calls to Run on the same Optimizer.
type Stats struct {
	TriedFanins   int
	RemovedFanins int
	TriedNodes    int
	ChangedNodes  int
}

// New constructs an Optimizer that checks candidate removals against
// ana. The network is attached separately via AssignNetwork.
func New(ana oracle.Oracle, opts ...Option) *Optimizer {
	o := &Optimizer{
		oracle:      ana,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		policy:      RandomPolicy,
		sortInitial: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AssignNetwork attaches net to the optimizer, subscribing the oracle
// to net's mutation callbacks. reuse is forwarded to the oracle as a
// hint that its cached simulation state may still apply (e.g. after an
// edit that did not touch the oracle's inputs).
func (o *Optimizer) AssignNetwork(net *aig.Network, reuse bool) {
	o.net = net
	o.piOrder = nil
	o.costs = nil
	o.oracle.Assign(net, reuse)
}

// ResetSummary clears the accumulated Stats.
func (o *Optimizer) ResetSummary() { o.stats = Stats{} }

// StatsSummary returns a copy of the counters accumulated since
// construction or the last ResetSummary.
func (o *Optimizer) StatsSummary() Stats { return o.stats }

func (o *Optimizer) ensurePiOrder() []int {
	if len(o.piOrder) != o.net.NumPis() {
		o.piOrder = randPiOrder(o.net, o.rng)
	}
	return o.piOrder
}

func (o *Optimizer) ensureCosts() []float64 {
	if len(o.costs) < o.net.NumNodes() {
		o.costs = randCosts(o.net, o.rng)
	}
	return o.costs
}

// currentLess builds the fan-in comparator for the policy selected for
// the current run, lazily materializing the random permutation/costs
// a policy needs on first use.
func (o *Optimizer) currentLess() func(i, j int) bool {
	switch o.runPolicy {
	case PolicyNonPiFirstRandomPi, PolicyFanoutRandomPi, PolicyTopoReverseRandomPi, PolicyTopoFanoutRandomPi:
		return lessFunc(o.net, o.runPolicy, o.ensurePiOrder(), nil)
	case PolicyRandomTotalOrder, PolicyRandomNonPiFirst, PolicyRandomFanout, PolicyRandomFanoutNonPiFirst:
		return lessFunc(o.net, o.runPolicy, nil, o.ensureCosts())
	default:
		return lessFunc(o.net, o.runPolicy, nil, nil)
	}
}

func (o *Optimizer) sortFaninsOf(id int) {
	less := o.currentLess()
	o.net.SortFanins(id, func(i, j int) bool {
		return less(o.net.Fanin(id, i), o.net.Fanin(id, j))
	})
}

func (o *Optimizer) sortAllFanins() {
	for _, id := range o.net.Ints() {
		o.sortFaninsOf(id)
	}
}

// Run seeds the optimizer's random sources from seed, selects a fan-in
// policy (or honors the fixed one set via WithPolicy), optionally
// promotes the oracle's threshold to the best candidate left over from
// a prior Run, and drives RemoveRedundancy to a fixed point. It returns
// whether any fan-in was removed.
func (o *Optimizer) Run(ctx context.Context, seed int64) (bool, error) {
	o.rng = rand.New(rand.NewSource(seed))
	o.piOrder = nil
	o.costs = nil

	o.runPolicy = o.policy
	if o.runPolicy == RandomPolicy {
		o.runPolicy = Policy(o.rng.Intn(NumPolicies))
		o.log.Debug("optimizer: selected random fan-in policy", "policy", o.runPolicy)
	}

	if o.sortInitial {
		o.sortAllFanins()
	}

	if id, _ := o.oracle.GetNextPair(); id != -1 {
		o.oracle.SetThreshold(o.oracle.GetNext())
	}

	return o.removeRedundancy(ctx)
}

func (o *Optimizer) removeRedundancy(ctx context.Context) (bool, error) {
	fReduced := false
	for {
		reduced, err := o.removeRedundancyOneTraversal(ctx)
		if err != nil {
			return fReduced, err
		}
		if !reduced {
			return fReduced, nil
		}
		fReduced = true
		o.oracle.ResetNext()
	}
}

func (o *Optimizer) removeRedundancyOneTraversal(ctx context.Context) (bool, error) {
	fReduced := false
	ids := o.net.Ints()
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if err := ctx.Err(); err != nil {
			return fReduced, err
		}
		if !o.net.IsInt(id) {
			continue
		}
		if o.net.NumFanouts(id) == 0 {
			if err := o.net.RemoveUnused(id, false); err != nil {
				return fReduced, err
			}
			continue
		}

		o.net.TrivialCollapse(id)
		o.sortFaninsOf(id)
		o.stats.TriedNodes++

		reducedHere, err := o.removeRedundantFanins(id, false)
		if err != nil {
			return fReduced, err
		}
		fReduced = fReduced || reducedHere
		if reducedHere {
			o.stats.ChangedNodes++
		}

		if o.net.NumFanins(id) <= 1 {
			o.net.Propagate(id)
		}
	}
	return fReduced, nil
}

// removeRedundantFanins scans id's current fan-ins left to right,
// removing each one the oracle confirms as redundant. removeUnused, if
// set, cascades RemoveUnused onto a fan-in that drops to zero fanouts
// as a result.
func (o *Optimizer) removeRedundantFanins(id int, removeUnused bool) (bool, error) {
	fReduced := false
	for idx := 0; idx < o.net.NumFanins(id); idx++ {
		o.stats.TriedFanins++
		redundant, err := o.oracle.CheckRedundancy(id, idx)
		if err != nil {
			if errors.Is(err, oracle.ErrIndeterminate) {
				o.log.Debug("optimizer: indeterminate redundancy verdict, treating as not redundant", "id", id, "idx", idx)
				continue
			}
			return fReduced, err
		}
		if !redundant {
			continue
		}
		fi := o.net.Fanin(id, idx)
		if err := o.net.RemoveFanin(id, idx); err != nil {
			return fReduced, err
		}
		fReduced = true
		o.stats.RemovedFanins++
		idx--
		if removeUnused && o.net.IsInt(fi) && o.net.NumFanouts(fi) == 0 {
			if err := o.net.RemoveUnused(fi, true); err != nil {
				return fReduced, err
			}
		}
	}
	return fReduced, nil
}
