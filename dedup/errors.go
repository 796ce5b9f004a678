package dedup

import "errors"

// ErrCapacityExhausted is returned by Register when the table has
// reached its configured maximum entry count, has no unreferenced slot
// available to evict (or eviction was not enabled), and the key being
// registered does not already exist.
var ErrCapacityExhausted = errors.New("dedup: capacity exhausted")
