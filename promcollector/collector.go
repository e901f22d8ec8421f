// Package promcollector exports mtree operational metrics to Prometheus.
package promcollector

import (
	"time"

	"github.com/hupe1980/mtree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements mtree.MetricsCollector on Prometheus counters and
// histograms. It is safe for concurrent use and may be shared by several
// trees.
type Collector struct {
	Adds              *prometheus.CounterVec
	AddDuration       prometheus.Histogram
	Removes           *prometheus.CounterVec
	RemoveDuration    prometheus.Histogram
	Queries           *prometheus.CounterVec
	QueryResults      *prometheus.HistogramVec
	QueryDuration     *prometheus.HistogramVec
	Splits            *prometheus.CounterVec
	Underflows        *prometheus.CounterVec
	DistancesComputed prometheus.Counter
	DistancesCached   prometheus.Counter
}

var _ mtree.MetricsCollector = (*Collector)(nil)

// New registers the collector's metrics on reg under the given namespace
// (for example "mtree"). A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		Adds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adds_total",
			Help:      "Total number of Add calls by outcome",
		}, []string{"outcome"}),
		AddDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "add_duration_seconds",
			Help:      "Duration of Add calls",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		Removes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "removes_total",
			Help:      "Total number of Remove calls by outcome",
		}, []string{"outcome"}),
		RemoveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remove_duration_seconds",
			Help:      "Duration of Remove calls",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		Queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of query executions by kind",
		}, []string{"kind"}),
		QueryResults: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_results",
			Help:      "Number of results yielded per query execution",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"kind"}),
		QueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of query executions, including consumer time",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"kind"}),
		Splits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_splits_total",
			Help:      "Total number of node splits by node kind",
		}, []string{"node"}),
		Underflows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_underflows_total",
			Help:      "Total number of repaired node underflows by repair",
		}, []string{"repair"}),
		DistancesComputed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distances_computed_total",
			Help:      "Total number of metric evaluations",
		}),
		DistancesCached: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distances_cached_total",
			Help:      "Total number of distances served from an operation cache",
		}),
	}
}

// RecordAdd implements mtree.MetricsCollector.
func (c *Collector) RecordAdd(d time.Duration, added bool) {
	c.Adds.WithLabelValues(outcome(added, "added", "duplicate")).Inc()
	c.AddDuration.Observe(d.Seconds())
}

// RecordRemove implements mtree.MetricsCollector.
func (c *Collector) RecordRemove(d time.Duration, removed bool) {
	c.Removes.WithLabelValues(outcome(removed, "removed", "absent")).Inc()
	c.RemoveDuration.Observe(d.Seconds())
}

// RecordQuery implements mtree.MetricsCollector.
func (c *Collector) RecordQuery(kind string, results int, d time.Duration) {
	c.Queries.WithLabelValues(kind).Inc()
	c.QueryResults.WithLabelValues(kind).Observe(float64(results))
	c.QueryDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordSplit implements mtree.MetricsCollector.
func (c *Collector) RecordSplit(leaf bool) {
	c.Splits.WithLabelValues(outcome(leaf, "leaf", "internal")).Inc()
}

// RecordUnderflow implements mtree.MetricsCollector.
func (c *Collector) RecordUnderflow(repair string) {
	c.Underflows.WithLabelValues(repair).Inc()
}

// RecordDistances implements mtree.MetricsCollector.
func (c *Collector) RecordDistances(computed, cached int) {
	c.DistancesComputed.Add(float64(computed))
	c.DistancesCached.Add(float64(cached))
}

func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
