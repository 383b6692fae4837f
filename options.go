package kmerlsh

import (
	"log/slog"
	"time"

	"github.com/hupe1980/kmerlsh/labelstore"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	strategy         Strategy
	extended         bool
	parallelism      int
	mmapThreshold    int
	progressEvery    time.Duration
}

// Option configures Partitioner behavior.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithStrategy selects the conflict-check strategy. Both strategies enforce
// the same sensitivity guarantee; they differ in where the work goes. The
// default is StrategyNeighborProbe.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithExtended also labels the (k-1)- and (k+1)-mer populations discovered
// during BFS, so the hash covers sequences one indel away from the k domain.
// Without it only k-mers are labeled.
func WithExtended(extended bool) Option {
	return func(o *options) {
		o.extended = extended
	}
}

// WithParallelism bounds the workers resolving conflicts within one island's
// layer. Values <= 1 keep resolution sequential. The labeling is identical
// for any parallelism; island order and round barriers are never relaxed.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithMmapThreshold sets the per-array byte size at which the label store
// switches from heap allocation to an anonymous memory mapping with ENOMEM
// back-off retry. Large k (array sizes of 4^k cells) benefits from mapped
// memory; small runs and tests stay on the heap.
func WithMmapThreshold(bytes int) Option {
	return func(o *options) {
		o.mmapThreshold = bytes
	}
}

// WithProgressInterval throttles round-progress log records.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressEvery = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		strategy:         StrategyNeighborProbe,
		parallelism:      1,
		mmapThreshold:    labelstore.DefaultMmapThreshold,
		progressEvery:    5 * time.Second,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
