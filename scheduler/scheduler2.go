package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rrrsynth/rrr/aig"
	"github.com/rrrsynth/rrr/canon"
	"github.com/rrrsynth/rrr/codec"
	"github.com/rrrsynth/rrr/dedup"
	"github.com/rrrsynth/rrr/optimizer"
	"github.com/rrrsynth/rrr/oracle"
)

// job2 is a Scheduler2 unit of work: re-optimize the network registered
// at table index src.
type job2 struct {
	id  int
	src int
}

// Scheduler2 is the single-table counterpart to Scheduler: every
// distinct canonical network discovered anywhere in the exploration,
// not just ones reaching a final tier, shares one non-evicting
// dedup.Table, and every reduction that produces something new spawns
// exactly one follow-up job against it. It has no promotion gate and
// no cost-increase check; it simply explores until nothing new turns
// up anywhere.
type Scheduler2 struct {
	seed      int64
	workers   int
	policy    optimizer.Policy
	costFn    CostFunc
	newOracle OracleFactory

	tab *dedup.Table[int]

	runID string

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []*job2
	created  int
	finished int
	stopped  bool
}

// Stats2 reports Scheduler2's job counters at the time of the call.
type Stats2 struct {
	RunID    string
	Created  int
	Finished int
	PoolSize int
}

// StatsSummary returns a snapshot of Scheduler2's counters.
func (s *Scheduler2) StatsSummary() Stats2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats2{RunID: s.runID, Created: s.created, Finished: s.finished, PoolSize: s.tab.Size()}
}

// New2 constructs a Scheduler2. It accepts the same Option type as
// Scheduler; WithTiers and WithMaxEntries have no effect (Scheduler2
// has a single, unbounded, non-evicting table by construction), and
// neither do WithCostFunc, WithLogger and WithRegisterer.
func New2(opts ...Option) *Scheduler2 {
	s := &Scheduler{
		workers: 1,
		seed:    1,
		policy:  optimizer.RandomPolicy,
		costFn:  DefaultCost,
	}
	s.newOracle = func(seed int64) oracle.Oracle { return oracle.NewSimOracle(seed) }
	for _, opt := range opts {
		opt(s)
	}
	s2 := &Scheduler2{
		seed:      s.seed,
		workers:   s.workers,
		policy:    s.policy,
		costFn:    s.costFn,
		newOracle: s.newOracle,
		tab:       dedup.NewTable[int](),
	}
	s2.cond = sync.NewCond(&s2.mu)
	return s2
}

// Run explores reductions of net, returning every distinct network the
// search encountered, in discovery order.
func (s *Scheduler2) Run(ctx context.Context, net *aig.Network) ([]*aig.Network, error) {
	s.runID = uuid.New().String()

	for _, id := range net.Ints() {
		net.TrivialCollapse(id)
	}
	net.Sweep(true)

	canonical := canon.Canonicalize(net)
	payload := string(codec.Encode(canonical))
	idx, _, err := s.tab.Register(payload, -1)
	if err != nil {
		return nil, fmt.Errorf("scheduler2: run %s: registering original network: %w", s.runID, err)
	}
	s.createJob(idx)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.workers; w++ {
		workerSeed := s.seed + int64(w)*1_000_003
		g.Go(func() error { return s.worker(ctx, workerSeed) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var nets []*aig.Network
	for i := 0; i < s.tab.Size(); i++ {
		decoded, err := codec.Decode([]byte(s.tab.Key(i)))
		if err != nil {
			return nil, fmt.Errorf("scheduler2: decoding result %d: %w", i, err)
		}
		nets = append(nets, decoded)
	}
	return nets, nil
}

func (s *Scheduler2) createJob(src int) {
	s.mu.Lock()
	j := &job2{id: s.created, src: src}
	s.created++
	s.queue = append(s.queue, j)
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *Scheduler2) popJob() (*job2, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if len(s.queue) > 0 {
			j := s.queue[0]
			s.queue = s.queue[1:]
			return j, true
		}
		if s.stopped {
			return nil, false
		}
		s.cond.Wait()
	}
}

func (s *Scheduler2) markFinished() {
	s.mu.Lock()
	s.finished++
	if s.created == s.finished {
		s.stopped = true
	}
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *Scheduler2) worker(ctx context.Context, seed int64) error {
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

func (s *Scheduler2) runJob(ctx context.Context, job *job2, seed int64) error {
	payload := s.tab.Key(job.src)
	net, err := codec.Decode([]byte(payload))
	if err != nil {
		return fmt.Errorf("scheduler2: job %d: decoding source network: %w", job.id, err)
	}

	jobSeed := seed + int64(job.id)
	opt := optimizer.New(s.newOracle(jobSeed), optimizer.WithPolicy(s.policy))
	opt.AssignNetwork(net, true)

	changed, runErr := opt.Run(ctx, jobSeed)
	if runErr != nil {
		if !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
			return fmt.Errorf("scheduler2: job %d: %w", job.id, runErr)
		}
		changed = false
	}

	if changed {
		canonical := canon.Canonicalize(net)
		payload := string(codec.Encode(canonical))
		idx, isNew, err := s.tab.Register(payload, job.src)
		if err != nil {
			return fmt.Errorf("scheduler2: job %d: registering result: %w", job.id, err)
		}
		if isNew {
			s.createJob(idx)
		}
	}

	s.markFinished()
	return nil
}
