package dedup

// Option configures a Table at construction. Following the
// functional-options idiom used throughout this module, an Option
// that receives a meaningless value (zero or negative where a count is
// expected) leaves the corresponding setting at its default rather
// than panicking.
type Option func(*config)

type config struct {
	initialBuckets int
	resizeFactor   int
	maxEntries     int
	eviction       bool
}

func defaultConfig() config {
	return config{
		initialBuckets: 16,
		resizeFactor:   1,
	}
}

// WithInitialBuckets sets the starting bucket count (rounded up to the
// next power of two). The default is 16.
func WithInitialBuckets(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.initialBuckets = n
		}
	}
}

// WithMaxEntries caps the table at n live entries. Once reached,
// Register either evicts an unreferenced slot (if WithEviction was
// also given) or returns ErrCapacityExhausted for a genuinely new key.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithEviction allows a capacity-bounded table to reclaim slots that
// have been Deref'd instead of rejecting new keys outright. It has no
// effect without WithMaxEntries.
func WithEviction() Option {
	return func(c *config) {
		c.eviction = true
	}
}
