package mtree

const (
	// DefaultMinNodeCapacity is the minimum number of entries per non-root
	// node when no capacity is configured.
	DefaultMinNodeCapacity = 50

	// DefaultMaxNodeCapacity is the maximum number of entries per node when no
	// capacity is configured.
	DefaultMaxNodeCapacity = 2*DefaultMinNodeCapacity - 1
)

type options struct {
	maxNodeCapacity  int
	minNodeCapacity  int
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		maxNodeCapacity:  DefaultMaxNodeCapacity,
		minNodeCapacity:  DefaultMinNodeCapacity,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures Tree construction.
type Option func(*options)

// WithNodeCapacity sets the maximum and minimum number of entries per node.
// The bounds apply to leaf and internal nodes alike; the root is exempt from
// the minimum.
//
// A negative minCapacity selects maxCapacity/2.
//
// New rejects maxCapacity < 2 and minimums outside [1, (maxCapacity+1)/2]:
// a split of maxCapacity+1 entries must be able to fill two nodes, and a
// merge of an underflowing node into a minimal sibling must fit in one.
func WithNodeCapacity(maxCapacity, minCapacity int) Option {
	return func(o *options) {
		if minCapacity < 0 {
			minCapacity = maxCapacity / 2
		}
		o.maxNodeCapacity = maxCapacity
		o.minNodeCapacity = minCapacity
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &mtree.BasicMetricsCollector{}
//	t, _ := mtree.New(fn, split.Policy[string]{}, mtree.WithMetricsCollector(metrics))
//	// ... use the tree ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging of structural changes.
// Pass nil to disable logging.
//
// Example:
//
//	logger := mtree.NewJSONLogger(slog.LevelDebug)
//	t, _ := mtree.New(fn, split.Policy[string]{}, mtree.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
