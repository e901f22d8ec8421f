package mtree

import (
	"sync/atomic"
	"time"
)

// Query kinds reported to MetricsCollector.RecordQuery.
const (
	QueryKindRange   = "range"
	QueryKindLimit   = "limit"
	QueryKindNearest = "nearest"
)

// Underflow repairs reported to MetricsCollector.RecordUnderflow.
const (
	RepairBorrow = "borrow"
	RepairMerge  = "merge"
	RepairDrop   = "drop"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
//
// A collector may be shared by several trees and must then be safe for
// concurrent use.
type MetricsCollector interface {
	// RecordAdd is called after each Add. added is false for duplicates.
	RecordAdd(duration time.Duration, added bool)

	// RecordRemove is called after each Remove. removed is false when the
	// object was absent.
	RecordRemove(duration time.Duration, removed bool)

	// RecordQuery is called when a query execution finishes, either because
	// the sequence was exhausted or because the consumer stopped early.
	RecordQuery(kind string, results int, duration time.Duration)

	// RecordSplit is called for every node split.
	RecordSplit(leaf bool)

	// RecordUnderflow is called for every repaired underflowing node.
	RecordUnderflow(repair string)

	// RecordDistances is called once per operation with the number of metric
	// evaluations and of distances served from the operation's cache.
	RecordDistances(computed, cached int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, bool)          {}
func (NoopMetricsCollector) RecordRemove(time.Duration, bool)       {}
func (NoopMetricsCollector) RecordQuery(string, int, time.Duration) {}
func (NoopMetricsCollector) RecordSplit(bool)                       {}
func (NoopMetricsCollector) RecordUnderflow(string)                 {}
func (NoopMetricsCollector) RecordDistances(int, int)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount          atomic.Int64
	DuplicateCount    atomic.Int64
	AddTotalNanos     atomic.Int64
	RemoveCount       atomic.Int64
	AbsentCount       atomic.Int64
	QueryCount        atomic.Int64
	QueryResults      atomic.Int64
	QueryTotalNanos   atomic.Int64
	LeafSplits        atomic.Int64
	InternalSplits    atomic.Int64
	Borrows           atomic.Int64
	Merges            atomic.Int64
	Drops             atomic.Int64
	DistancesComputed atomic.Int64
	DistancesCached   atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, added bool) {
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if added {
		b.AddCount.Add(1)
	} else {
		b.DuplicateCount.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, removed bool) {
	if removed {
		b.RemoveCount.Add(1)
	} else {
		b.AbsentCount.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(kind string, results int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryResults.Add(int64(results))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit(leaf bool) {
	if leaf {
		b.LeafSplits.Add(1)
	} else {
		b.InternalSplits.Add(1)
	}
}

// RecordUnderflow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnderflow(repair string) {
	switch repair {
	case RepairBorrow:
		b.Borrows.Add(1)
	case RepairMerge:
		b.Merges.Add(1)
	case RepairDrop:
		b.Drops.Add(1)
	}
}

// RecordDistances implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDistances(computed, cached int) {
	b.DistancesComputed.Add(int64(computed))
	b.DistancesCached.Add(int64(cached))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:          b.AddCount.Load(),
		DuplicateCount:    b.DuplicateCount.Load(),
		AddAvgNanos:       avg(b.AddTotalNanos.Load(), b.AddCount.Load()+b.DuplicateCount.Load()),
		RemoveCount:       b.RemoveCount.Load(),
		AbsentCount:       b.AbsentCount.Load(),
		QueryCount:        b.QueryCount.Load(),
		QueryResults:      b.QueryResults.Load(),
		QueryAvgNanos:     avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		LeafSplits:        b.LeafSplits.Load(),
		InternalSplits:    b.InternalSplits.Load(),
		Borrows:           b.Borrows.Load(),
		Merges:            b.Merges.Load(),
		Drops:             b.Drops.Load(),
		DistancesComputed: b.DistancesComputed.Load(),
		DistancesCached:   b.DistancesCached.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount          int64
	DuplicateCount    int64
	AddAvgNanos       int64
	RemoveCount       int64
	AbsentCount       int64
	QueryCount        int64
	QueryResults      int64
	QueryAvgNanos     int64
	LeafSplits        int64
	InternalSplits    int64
	Borrows           int64
	Merges            int64
	Drops             int64
	DistancesComputed int64
	DistancesCached   int64
}
