package resource

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds I/O limits.
type Config struct {
	// IOParallelism is the maximum number of concurrent requests.
	// If 0, defaults to 1.
	IOParallelism int64

	// IOLimitBytesPerSec is the maximum throughput in bytes per second.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller gates requests and bytes for one store.
type Controller struct {
	cfg Config

	slots    *semaphore.Weighted
	inFlight atomic.Int64

	ioLimiter *rate.Limiter // nil if unlimited
	burst     int
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.IOParallelism <= 0 {
		cfg.IOParallelism = 1
	}

	c := &Controller{
		cfg:   cfg,
		slots: semaphore.NewWeighted(cfg.IOParallelism),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.burst = int(cfg.IOLimitBytesPerSec)
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), c.burst)
	}

	return c
}

// Parallelism returns the configured request concurrency.
func (c *Controller) Parallelism() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.IOParallelism
}

// IOLimit returns the configured byte rate (0 if unlimited).
func (c *Controller) IOLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.IOLimitBytesPerSec
}

// AcquireSlot reserves a request slot, blocking until one is free.
func (c *Controller) AcquireSlot(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// TryAcquireSlot reserves a request slot without blocking.
func (c *Controller) TryAcquireSlot() bool {
	if c == nil {
		return true
	}
	if !c.slots.TryAcquire(1) {
		return false
	}
	c.inFlight.Add(1)
	return true
}

// ReleaseSlot releases a request slot.
func (c *Controller) ReleaseSlot() {
	if c == nil {
		return
	}
	c.inFlight.Add(-1)
	c.slots.Release(1)
}

// InFlight returns the number of held request slots.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
// Requests larger than one second of budget are charged in burst-sized chunks.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	for bytes > 0 {
		n := min(bytes, c.burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// TryAcquireIO attempts to acquire IO tokens without blocking.
func (c *Controller) TryAcquireIO(bytes int) bool {
	if c == nil || c.ioLimiter == nil {
		return true
	}
	if bytes > c.burst {
		return false
	}
	return c.ioLimiter.AllowN(time.Now(), bytes)
}
