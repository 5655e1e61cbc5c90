package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Slots(t *testing.T) {
	c := NewController(Config{IOParallelism: 2})
	assert.Equal(t, int64(2), c.Parallelism())

	require.NoError(t, c.AcquireSlot(t.Context()))
	require.NoError(t, c.AcquireSlot(t.Context()))
	assert.Equal(t, int64(2), c.InFlight())

	// Third slot must wait
	assert.False(t, c.TryAcquireSlot())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireSlot(ctx), context.DeadlineExceeded)

	c.ReleaseSlot()
	assert.Equal(t, int64(1), c.InFlight())
	assert.True(t, c.TryAcquireSlot())
}

func TestController_DefaultParallelism(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(1), c.Parallelism())
	assert.Equal(t, int64(0), c.IOLimit())
}

func TestController_NilChecks(t *testing.T) {
	var c *Controller
	assert.NoError(t, c.AcquireSlot(context.Background()))
	assert.True(t, c.TryAcquireSlot())
	c.ReleaseSlot() // Should not panic
	assert.NoError(t, c.AcquireIO(context.Background(), 10))
	assert.True(t, c.TryAcquireIO(10))
	assert.Equal(t, int64(0), c.InFlight())
}

func TestController_IO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1000}) // 1KB/s
	ctx := context.Background()

	// Small acquire fits in the initial burst
	require.NoError(t, c.AcquireIO(ctx, 100))

	// Beyond one burst is never granted without waiting
	assert.False(t, c.TryAcquireIO(2000))

	// Unlimited
	c2 := NewController(Config{})
	assert.NoError(t, c2.AcquireIO(ctx, 1000000))
}

func TestController_IOCancelled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, c.AcquireIO(ctx, 100))
}

func TestRateLimitedReaderWriter(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	ctx := context.Background()

	var buf bytes.Buffer
	w := NewRateLimitedWriter(ctx, &buf, c)
	n, err := w.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	r := NewRateLimitedReader(ctx, strings.NewReader(buf.String()), c)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}
