package kmerlsh

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordPartition is called after a partition run. rounds is the number
	// of BFS rounds executed, expanded/assigned/grayed are vertex counters,
	// duration is the total time taken, err is nil if successful.
	RecordPartition(rounds int, expanded, assigned, grayed int64, duration time.Duration, err error)

	// RecordHashWrite is called after each label file write.
	RecordHashWrite(duration time.Duration, err error)

	// RecordSnapshot is called after each snapshot save.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPartition(int, int64, int64, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordHashWrite(time.Duration, error)                           {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error)                            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PartitionCount  atomic.Int64
	PartitionErrors atomic.Int64
	PartitionNanos  atomic.Int64
	RoundsTotal     atomic.Int64
	ExpandedTotal   atomic.Int64
	AssignedTotal   atomic.Int64
	GrayedTotal     atomic.Int64
	HashWriteCount  atomic.Int64
	HashWriteErrors atomic.Int64
	SnapshotCount   atomic.Int64
	SnapshotErrors  atomic.Int64
}

// RecordPartition implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPartition(rounds int, expanded, assigned, grayed int64, duration time.Duration, err error) {
	b.PartitionCount.Add(1)
	b.PartitionNanos.Add(duration.Nanoseconds())
	b.RoundsTotal.Add(int64(rounds))
	b.ExpandedTotal.Add(expanded)
	b.AssignedTotal.Add(assigned)
	b.GrayedTotal.Add(grayed)
	if err != nil {
		b.PartitionErrors.Add(1)
	}
}

// RecordHashWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHashWrite(duration time.Duration, err error) {
	b.HashWriteCount.Add(1)
	if err != nil {
		b.HashWriteErrors.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PartitionCount:  b.PartitionCount.Load(),
		PartitionErrors: b.PartitionErrors.Load(),
		PartitionNanos:  b.PartitionNanos.Load(),
		RoundsTotal:     b.RoundsTotal.Load(),
		ExpandedTotal:   b.ExpandedTotal.Load(),
		AssignedTotal:   b.AssignedTotal.Load(),
		GrayedTotal:     b.GrayedTotal.Load(),
		HashWriteCount:  b.HashWriteCount.Load(),
		HashWriteErrors: b.HashWriteErrors.Load(),
		SnapshotCount:   b.SnapshotCount.Load(),
		SnapshotErrors:  b.SnapshotErrors.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PartitionCount  int64
	PartitionErrors int64
	PartitionNanos  int64
	RoundsTotal     int64
	ExpandedTotal   int64
	AssignedTotal   int64
	GrayedTotal     int64
	HashWriteCount  int64
	HashWriteErrors int64
	SnapshotCount   int64
	SnapshotErrors  int64
}
