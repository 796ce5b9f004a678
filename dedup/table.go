package dedup

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Table maps string keys (canonical network signatures, in practice)
// to a slice of H values recorded against that key: chained hashing
// with move-to-front on repeated lookups of the same bucket. H is
// typically an aig node id identifying one structural occurrence of
// the canonical form the key represents.
//
// A Table is safe for concurrent use; every operation holds an
// internal mutex for its duration.
type Table[H any] struct {
	mu  sync.Mutex
	cfg config

	buckets []int
	next    []int
	keys    []string
	record  [][]H
	ref     []bool // only populated when cfg.maxEntries > 0
}

// NewTable constructs an empty Table.
func NewTable[H any](opts ...Option) *Table[H] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	n := nextPowerOfTwo(cfg.initialBuckets)
	buckets := make([]int, n)
	for i := range buckets {
		buckets[i] = -1
	}
	return &Table[H]{cfg: cfg, buckets: buckets}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (t *Table[H]) bucketFor(key string) int {
	return int(xxhash.Sum64String(key) % uint64(len(t.buckets)))
}

// Register records his against key, returning the slot index it lives
// in and whether key was new to the table. A key already present has
// his appended to its existing record and its chain entry moved to the
// front of its bucket (the scan that looked it up already walked past
// anything else in the chain, so this keeps frequently hit keys cheap
// to find again).
func (t *Table[H]) Register(key string, his H) (index int, isNew bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.bucketFor(key)
	prev := -1
	cur := t.buckets[h]
	lastUnused, lastUnusedPrev := -1, -1
	for cur != -1 {
		if t.keys[cur] == key {
			t.unlink(h, prev, cur)
			t.pushFront(h, cur)
			t.record[cur] = append(t.record[cur], his)
			return cur, false, nil
		}
		if t.cfg.maxEntries > 0 && !t.ref[cur] {
			lastUnused, lastUnusedPrev = cur, prev
		}
		prev = cur
		cur = t.next[cur]
	}

	if t.cfg.maxEntries > 0 && len(t.keys) >= t.cfg.maxEntries {
		if t.cfg.eviction && lastUnused != -1 {
			idx := lastUnused
			t.unlink(h, lastUnusedPrev, idx)
			t.keys[idx] = key
			t.record[idx] = append(t.record[idx][:0], his)
			t.ref[idx] = true
			t.pushFront(h, idx)
			return idx, true, nil
		}
		return -1, false, fmt.Errorf("dedup: %w", ErrCapacityExhausted)
	}

	idx := len(t.keys)
	t.keys = append(t.keys, key)
	t.record = append(t.record, []H{his})
	if t.cfg.maxEntries > 0 {
		t.ref = append(t.ref, true)
	}
	t.next = append(t.next, -1)
	t.pushFront(h, idx)

	if len(t.keys) >= len(t.buckets)*t.cfg.resizeFactor && (t.cfg.maxEntries == 0 || len(t.keys) < t.cfg.maxEntries) {
		t.resize()
	}
	return idx, true, nil
}

// unlink splices slot idx out of bucket h's chain, given the index of
// its predecessor in that chain (-1 if idx is currently the head).
func (t *Table[H]) unlink(h, prev, idx int) {
	if prev == -1 {
		t.buckets[h] = t.next[idx]
	} else {
		t.next[prev] = t.next[idx]
	}
}

func (t *Table[H]) pushFront(h, idx int) {
	t.next[idx] = t.buckets[h]
	t.buckets[h] = idx
}

func (t *Table[H]) resize() {
	newBuckets := make([]int, len(t.buckets)*2)
	for i := range newBuckets {
		newBuckets[i] = -1
	}
	newNext := make([]int, len(t.next))
	t.buckets = newBuckets
	for idx, key := range t.keys {
		h := t.bucketFor(key)
		newNext[idx] = t.buckets[h]
		t.buckets[h] = idx
	}
	t.next = newNext
}

// Deref marks slot index as no longer backed by any live node,
// allowing a capacity-bounded table with eviction enabled to reclaim
// it on a future Register. It has no effect on a table without
// WithMaxEntries.
func (t *Table[H]) Deref(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cfg.maxEntries > 0 && index >= 0 && index < len(t.ref) {
		t.ref[index] = false
	}
}

// Get returns a copy of the records stored at index.
func (t *Table[H]) Get(index int) []H {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]H(nil), t.record[index]...)
}

// Key returns the signature a slot was registered under. Callers that
// use the signature itself as the stored payload (the scheduler
// registers canonical network bytes as the key) use this to retrieve
// it back out.
func (t *Table[H]) Key(index int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keys[index]
}

// Size returns the number of live slots in the table.
func (t *Table[H]) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.keys)
}
