package objstore

import (
	"sync/atomic"
	"time"
)

// IOTracker records the I/O a Store performs.
// Implement this interface to integrate with monitoring systems like Prometheus;
// see the metrics/prom package.
type IOTracker interface {
	// RecordRead is called after each read. bytes is the amount transferred.
	RecordRead(bytes int64, duration time.Duration, err error)

	// RecordWrite is called after each write.
	RecordWrite(bytes int64, duration time.Duration, err error)

	// RecordList is called after each listing. entries is the number of names returned.
	RecordList(entries int64, duration time.Duration, err error)

	// RecordDelete is called after each delete.
	RecordDelete(duration time.Duration, err error)
}

// NoopIOTracker is a no-op implementation of IOTracker.
type NoopIOTracker struct{}

func (NoopIOTracker) RecordRead(int64, time.Duration, error)  {}
func (NoopIOTracker) RecordWrite(int64, time.Duration, error) {}
func (NoopIOTracker) RecordList(int64, time.Duration, error)  {}
func (NoopIOTracker) RecordDelete(time.Duration, error)       {}

// BasicIOTracker provides simple in-memory I/O accounting.
type BasicIOTracker struct {
	ReadCount    atomic.Int64
	ReadBytes    atomic.Int64
	ReadErrors   atomic.Int64
	ReadNanos    atomic.Int64
	WriteCount   atomic.Int64
	WriteBytes   atomic.Int64
	WriteErrors  atomic.Int64
	WriteNanos   atomic.Int64
	ListCount    atomic.Int64
	ListErrors   atomic.Int64
	DeleteCount  atomic.Int64
	DeleteErrors atomic.Int64
}

// RecordRead implements IOTracker.
func (b *BasicIOTracker) RecordRead(bytes int64, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadBytes.Add(bytes)
	b.ReadNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
	}
}

// RecordWrite implements IOTracker.
func (b *BasicIOTracker) RecordWrite(bytes int64, duration time.Duration, err error) {
	b.WriteCount.Add(1)
	b.WriteBytes.Add(bytes)
	b.WriteNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteErrors.Add(1)
	}
}

// RecordList implements IOTracker.
func (b *BasicIOTracker) RecordList(_ int64, _ time.Duration, err error) {
	b.ListCount.Add(1)
	if err != nil {
		b.ListErrors.Add(1)
	}
}

// RecordDelete implements IOTracker.
func (b *BasicIOTracker) RecordDelete(_ time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// Stats returns a snapshot of current counters.
func (b *BasicIOTracker) Stats() IOStats {
	return IOStats{
		ReadCount:    b.ReadCount.Load(),
		ReadBytes:    b.ReadBytes.Load(),
		ReadErrors:   b.ReadErrors.Load(),
		ReadTime:     time.Duration(b.ReadNanos.Load()),
		WriteCount:   b.WriteCount.Load(),
		WriteBytes:   b.WriteBytes.Load(),
		WriteErrors:  b.WriteErrors.Load(),
		WriteTime:    time.Duration(b.WriteNanos.Load()),
		ListCount:    b.ListCount.Load(),
		ListErrors:   b.ListErrors.Load(),
		DeleteCount:  b.DeleteCount.Load(),
		DeleteErrors: b.DeleteErrors.Load(),
	}
}

// IOStats is a point-in-time snapshot of BasicIOTracker.
type IOStats struct {
	ReadCount    int64
	ReadBytes    int64
	ReadErrors   int64
	ReadTime     time.Duration
	WriteCount   int64
	WriteBytes   int64
	WriteErrors  int64
	WriteTime    time.Duration
	ListCount    int64
	ListErrors   int64
	DeleteCount  int64
	DeleteErrors int64
}
