package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/rrrsynth/rrr/aig"
	"github.com/rrrsynth/rrr/canon"
	"github.com/rrrsynth/rrr/codec"
	"github.com/rrrsynth/rrr/dedup"
	"github.com/rrrsynth/rrr/optimizer"
	"github.com/rrrsynth/rrr/oracle"
)

// noIncrease mirrors the reference's compile-time fNoIncrease: a job
// reaching the final tier is only promoted to the non-evicting pool if
// its resulting cost did not grow relative to the cost it was launched
// with.
const noIncrease = true

// history is the record kept alongside each table slot: the tier and
// index a network was reduced from. The reference's richer per-action
// trail (individual REMOVE_FANIN/ADD_FANIN edits) has no analog here
// since optimizer.Optimizer.Run reports only whether anything changed,
// not a replayable action list.
type history struct {
	srcTab int
	srcIdx int
}

// CostFunc scores a network for the purpose of deciding whether a
// reduction is actually an improvement. DefaultCost counts two-input
// gate equivalents: the sum, over every internal node, of its fan-in
// count minus one.
type CostFunc func(*aig.Network) int

// DefaultCost is the cost function used when no CostFunc option is
// given, matching the reference scheduler's built-in CostFunction.
func DefaultCost(net *aig.Network) int {
	total := 0
	net.ForEachInt(func(id int) {
		total += net.NumFanins(id) - 1
	})
	return total
}

// OracleFactory builds a fresh oracle.Oracle for one worker's job,
// seeded independently of every other job so that concurrent workers
// never share simulation or RNG state.
type OracleFactory func(seed int64) oracle.Oracle

// Option configures a Scheduler at construction.
type Option func(*Scheduler)

// WithTiers sets the number of intermediate, eviction-capable tiers
// between the original network and the final non-evicting pool. The
// default is 2. A Scheduler always has tiers+1 tables: tabs[0] is the
// final pool, tabs[1..tiers] are intermediate.
func WithTiers(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.tiers = n
		}
	}
}

// WithWorkers sets the number of concurrent worker goroutines. The
// default is 1.
func WithWorkers(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSeed sets the base seed each job's per-worker oracle and
// optimizer are derived from. The default is 1.
func WithSeed(seed int64) Option {
	return func(s *Scheduler) { s.seed = seed }
}

// WithPolicy fixes the fan-in ordering policy every job's optimizer
// uses. The default is optimizer.RandomPolicy, letting each job pick
// independently from its own seed.
func WithPolicy(p optimizer.Policy) Option {
	return func(s *Scheduler) { s.policy = p }
}

// WithCostFunc overrides DefaultCost.
func WithCostFunc(f CostFunc) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.costFn = f
		}
	}
}

// WithOracleFactory overrides the oracle constructor used per job. The
// default builds an oracle.SimOracle from the job's derived seed.
func WithOracleFactory(f OracleFactory) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.newOracle = f
		}
	}
}

// WithMaxEntries bounds the population of every intermediate tier
// (eviction reclaims dereferenced slots once the bound is hit) and the
// final pool (which never evicts, so registrations past the bound
// fail). The default is 0, meaning unbounded.
func WithMaxEntries(n int) Option {
	return func(s *Scheduler) { s.maxEntries = n }
}

// WithLogger sets the logger used for per-job diagnostics. The default
// discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRegisterer registers the scheduler's job-count counters with reg.
// The default leaves them unregistered but still live and readable via
// StatsSummary.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Scheduler) { s.registerer = reg }
}

// Scheduler explores reductions of one original network across a pool
// of concurrent workers, deduplicating results by canonical signature
// at every tier and promoting non-worsening, previously unseen results
// into a final pool.
type Scheduler struct {
	tiers      int
	workers    int
	seed       int64
	policy     optimizer.Policy
	costFn     CostFunc
	newOracle  OracleFactory
	maxEntries int
	log        *slog.Logger
	registerer prometheus.Registerer

	metrics *metrics

	runID string

	mu       sync.Mutex
	cond     *sync.Cond
	queues   [][]*Job
	tabs     []*dedup.Table[history]
	created  int
	finished int
	stopped bool
}

// New constructs a Scheduler with tiers+1 dedup tables (tabs[0] final,
// tabs[1..tiers] intermediate with eviction enabled).
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		tiers:   2,
		workers: 1,
		seed:    1,
		policy:  optimizer.RandomPolicy,
		costFn:  DefaultCost,
		log:     slog.New(slog.NewTextHandler(nullWriter{}, nil)),
	}
	s.newOracle = func(seed int64) oracle.Oracle { return oracle.NewSimOracle(seed) }
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics()
	s.metrics.register(s.registerer)
	s.cond = sync.NewCond(&s.mu)
	s.queues = make([][]*Job, s.tiers+1)
	s.tabs = make([]*dedup.Table[history], s.tiers+1)
	finalOpts := []dedup.Option{}
	if s.maxEntries > 0 {
		finalOpts = append(finalOpts, dedup.WithMaxEntries(s.maxEntries))
	}
	s.tabs[0] = dedup.NewTable[history](finalOpts...)
	for i := 1; i <= s.tiers; i++ {
		tierOpts := []dedup.Option{dedup.WithEviction()}
		if s.maxEntries > 0 {
			tierOpts = append(tierOpts, dedup.WithMaxEntries(s.maxEntries))
		}
		s.tabs[i] = dedup.NewTable[history](tierOpts...)
	}
	return s
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

// Stats reports the scheduler's job counters at the time of the call.
type Stats struct {
	RunID    string
	Created  int
	Finished int
	PoolSize int
}

// StatsSummary returns a snapshot of the scheduler's counters.
func (s *Scheduler) StatsSummary() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{RunID: s.runID, Created: s.created, Finished: s.finished, PoolSize: s.tabs[0].Size()}
}

// Run reduces net across the scheduler's worker pool, returning every
// distinct network registered in the final pool by the time the job
// graph drains (the original's reduction among them, at index 0 if
// nothing else reached the pool first). Run blocks until every job
// created, directly or transitively, has finished, or ctx is
// cancelled.
func (s *Scheduler) Run(ctx context.Context, net *aig.Network) ([]*aig.Network, error) {
	s.runID = uuid.New().String()
	s.log.Info("scheduler: starting run", "run", s.runID, "tiers", s.tiers, "workers", s.workers)

	for _, id := range net.Ints() {
		net.TrivialCollapse(id)
	}
	net.Sweep(true)

	payload := s.registerPayload(net)
	idx, _, err := s.tabs[0].Register(payload, history{srcTab: -1, srcIdx: 0})
	if err != nil {
		return nil, fmt.Errorf("scheduler: run %s: registering original network: %w", s.runID, err)
	}
	s.createJob(0, idx, s.costFn(net), 0)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.workers; w++ {
		workerSeed := s.seed + int64(w)*1_000_003
		g.Go(func() error { return s.worker(ctx, workerSeed) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var nets []*aig.Network
	for i := 0; i < s.tabs[0].Size(); i++ {
		decoded, err := codec.Decode([]byte(s.tabs[0].Key(i)))
		if err != nil {
			return nil, fmt.Errorf("scheduler: decoding pool entry %d: %w", i, err)
		}
		nets = append(nets, decoded)
	}
	return nets, nil
}

func (s *Scheduler) registerPayload(net *aig.Network) string {
	canonical := canon.Canonicalize(net)
	return string(codec.Encode(canonical))
}

func (s *Scheduler) createJob(srcTab, srcIdx, cost, nAdd int) {
	s.mu.Lock()
	j := &Job{ID: s.created, SrcTab: srcTab, SrcIdx: srcIdx, Cost: cost, NAdd: nAdd}
	s.created++
	s.queues[srcTab] = append(s.queues[srcTab], j)
	s.mu.Unlock()
	s.metrics.created.Inc()
	s.cond.Broadcast()
}

// popJob returns the next pending job, preferring jobs closest to the
// final tier so that nearly-converged work drains before new
// exploration begins. It blocks until a job is available or the
// scheduler has stopped.
func (s *Scheduler) popJob() (*Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		for tier := s.tiers; tier >= 0; tier-- {
			if len(s.queues[tier]) > 0 {
				j := s.queues[tier][0]
				s.queues[tier] = s.queues[tier][1:]
				return j, true
			}
		}
		if s.stopped {
			return nil, false
		}
		s.cond.Wait()
	}
}

func (s *Scheduler) markFinished() {
	s.mu.Lock()
	s.finished++
	done := s.created == s.finished
	if done {
		s.stopped = true
	}
	s.mu.Unlock()
	s.metrics.finished.Inc()
	s.cond.Broadcast()
}

func (s *Scheduler) worker(ctx context.Context, seed int64) error {
	for {
		job, ok := s.popJob()
		if !ok {
			return nil
		}
		if err := s.runJob(ctx, job, seed); err != nil {
			return err
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job *Job, seed int64) error {
	payload := s.tabs[job.SrcTab].Key(job.SrcIdx)
	net, err := codec.Decode([]byte(payload))
	if err != nil {
		return fmt.Errorf("scheduler: job %d: decoding source network: %w", job.ID, err)
	}

	jobSeed := seed + int64(job.ID)
	opt := optimizer.New(s.newOracle(jobSeed), optimizer.WithPolicy(s.policy))
	opt.AssignNetwork(net, job.NAdd < s.tiers)

	_, runErr := opt.Run(ctx, jobSeed)
	completed := true
	if runErr != nil {
		if !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
			return fmt.Errorf("scheduler: job %d: %w", job.ID, runErr)
		}
		// the deadline expired mid-pass: skip registration and let the
		// job drain like any other finished job.
		completed = false
	}

	// the resulting network is registered one tier on whether or not
	// this job removed anything, so a reduction found at any tier is
	// carried through the remaining tiers; deduplication ends the chain.
	if completed {
		cost := s.costFn(net)
		payload := s.registerPayload(net)
		if job.NAdd >= s.tiers {
			if !noIncrease || cost <= job.Cost {
				idx, isNew, err := s.tabs[0].Register(payload, history{srcTab: job.SrcTab, srcIdx: job.SrcIdx})
				if errors.Is(err, dedup.ErrCapacityExhausted) {
					// the final pool is full: drop the result, creating no
					// further tier-0 job.
					s.log.Debug("scheduler: final pool full, result dropped", "run", s.runID, "job", job.ID, "cost", cost)
				} else if err != nil {
					return fmt.Errorf("scheduler: job %d: registering final result: %w", job.ID, err)
				}
				if isNew {
					s.log.Debug("scheduler: promoted network to final pool", "run", s.runID, "job", job.ID, "cost", cost, "idx", idx)
					s.createJob(0, idx, cost, 0)
				}
			}
		} else {
			nextTab := job.NAdd + 1
			if nextTab > s.tiers {
				nextTab = s.tiers
			}
			idx, isNew, err := s.tabs[nextTab].Register(payload, history{srcTab: job.SrcTab, srcIdx: job.SrcIdx})
			if err != nil {
				return fmt.Errorf("scheduler: job %d: registering intermediate result: %w", job.ID, err)
			}
			if isNew {
				nextCost := cost
				if job.Cost < nextCost {
					nextCost = job.Cost
				}
				s.createJob(nextTab, idx, nextCost, nextTab)
			}
		}
	}

	s.tabs[job.SrcTab].Deref(job.SrcIdx)
	s.markFinished()
	return nil
}
