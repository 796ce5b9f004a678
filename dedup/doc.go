// Package dedup provides a content-addressed table mapping a
// canonical network signature (as produced by codec.Encode over a
// canon.Canonicalize'd network) to the set of live node occurrences
// that share it.
//
// Table is a chained hash table grown by doubling, in the spirit of a
// plain open-chaining table. With WithMaxEntries it additionally
// tracks per-slot liveness (Deref marks a slot as no longer backed by
// any live node) and, when WithEviction is also given, reclaims an
// unreferenced slot instead of growing once the cap is reached;
// without eviction a full table at capacity rejects new keys with
// ErrCapacityExhausted.
package dedup
