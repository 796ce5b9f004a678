package scheduler

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the counters a Scheduler exposes about its own progress.
// They are plain prometheus.Counters rather than a registered collector
// struct: callers that want them scraped register them explicitly via
// WithRegisterer, and a Scheduler used as a library without a registry
// attached still increments them. StatsSummary reports the scheduler's
// own created/finished fields, which track the same counts.
type metrics struct {
	created  prometheus.Counter
	finished prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rrr",
			Subsystem: "scheduler",
			Name:      "jobs_created_total",
			Help:      "Jobs enqueued across every tier of the scheduler's job pool.",
		}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rrr",
			Subsystem: "scheduler",
			Name:      "jobs_finished_total",
			Help:      "Jobs that have completed processing, successfully or not.",
		}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) {
	if reg == nil {
		return
	}
	reg.MustRegister(m.created, m.finished)
}
