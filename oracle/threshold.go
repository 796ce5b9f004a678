package oracle

import (
	"cmp"

	"github.com/rrrsynth/rrr/aig"
)

// Scorer computes a redundancy score for one fanin edge. Lower scores
// mean "more clearly redundant" under an ascending Threshold, and
// higher scores mean the same under a descending one.
type Scorer[T cmp.Ordered] interface {
	DefaultThreshold() T
	Score(id, idx int) T
}

// Dropper is implemented by a Scorer that can discard cached state no
// longer reachable once the threshold tightens past it.
type Dropper[T cmp.Ordered] interface {
	Drop(t T)
}

// Threshold tracks a monotone acceptance threshold over a Scorer's
// output and the best candidate that fell just short of it. It is the
// generic half of a threshold-based Oracle; SimOracle pairs it with a
// concrete Scorer and the (bool, error) shape optimizer expects.
type Threshold[T cmp.Ordered] struct {
	scorer    Scorer[T]
	ascending bool
	minVal    T
	maxVal    T

	threshold T
	next      T
	pairNext  [2]int
}

// NewThreshold builds a Threshold over scorer. minVal and maxVal must
// be values no real score can exceed in either direction (e.g.
// math.MinInt64/math.MaxInt64 for an int64 scorer); they seed the
// "nothing seen yet" state for next.
func NewThreshold[T cmp.Ordered](scorer Scorer[T], ascending bool, minVal, maxVal T) *Threshold[T] {
	th := &Threshold[T]{scorer: scorer, ascending: ascending, minVal: minVal, maxVal: maxVal}
	th.ResetNext()
	return th
}

// Assign subscribes to net's mutation callbacks and resets the
// threshold to the scorer's default.
func (t *Threshold[T]) Assign(net *aig.Network, _ bool) {
	net.AddCallback(t.onAction)
	t.ResetNext()
	t.threshold = t.scorer.DefaultThreshold()
}

// onAction keeps the "next best" bookkeeping honest against concurrent
// edits: removing a fanin can change which edge is the runner-up, so
// any such mutation invalidates it. Every other action kind either
// doesn't touch fanin structure in a way that matters here, or is the
// optimizer's own responsibility to reconcile.
func (t *Threshold[T]) onAction(a aig.Action) {
	if a.Type == aig.ActionRemoveFanin {
		t.ResetNext()
	}
}

// GetThreshold returns the current acceptance threshold.
func (t *Threshold[T]) GetThreshold() T { return t.threshold }

// SetThreshold changes the acceptance threshold, dropping cached
// scorer state that can no longer be reached if the scorer supports it.
func (t *Threshold[T]) SetThreshold(v T) {
	t.threshold = v
	if d, ok := any(t.scorer).(Dropper[T]); ok {
		d.Drop(v)
	}
}

// ResetNext clears the tracked runner-up candidate.
func (t *Threshold[T]) ResetNext() {
	t.pairNext = [2]int{-1, -1}
	if t.ascending {
		t.next = t.maxVal
	} else {
		t.next = t.minVal
	}
}

// Check scores (id, idx) and reports whether it passes the current
// threshold. A failing candidate that is still the best one seen since
// the last reset becomes the new runner-up.
func (t *Threshold[T]) Check(id, idx int) bool {
	score := t.scorer.Score(id, idx)
	if t.ascending {
		if score <= t.threshold {
			return true
		}
		if score < t.next {
			t.next = score
			t.pairNext = [2]int{id, idx}
		}
		return false
	}
	if score >= t.threshold {
		return true
	}
	if score > t.next {
		t.next = score
		t.pairNext = [2]int{id, idx}
	}
	return false
}

// GetNext returns the runner-up score.
func (t *Threshold[T]) GetNext() T { return t.next }

// GetNextPair returns the runner-up candidate's (id, idx).
func (t *Threshold[T]) GetNextPair() (int, int) { return t.pairNext[0], t.pairNext[1] }
