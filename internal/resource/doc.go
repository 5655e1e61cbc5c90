// Package resource bounds the I/O a Store issues against its backend.
//
// A Controller combines two limits:
//
//   - Concurrency: a weighted semaphore caps in-flight requests at the
//     store's I/O parallelism.
//   - Throughput: an optional token bucket caps transferred bytes per second.
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    IOParallelism:      64,
//	    IOLimitBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	})
//
//	if err := rc.AcquireSlot(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseSlot()
//
//	reader := resource.NewRateLimitedReader(ctx, body, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
