package limiter

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLimiterSlots(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLimiter(2)

	require.NoError(t, l.Acquire(ctx, "7"))
	require.NoError(t, l.Acquire(ctx, "7"))
	assert.ErrorIs(t, l.Acquire(ctx, "7"), ErrLimitReached)

	// other keys are independent
	require.NoError(t, l.Acquire(ctx, "8"))

	require.NoError(t, l.Release(ctx, "7"))
	assert.Equal(t, 1, l.Current("7"))
	require.NoError(t, l.Acquire(ctx, "7"))

	require.NoError(t, l.Release(ctx, "7"))
	require.NoError(t, l.Release(ctx, "7"))
	assert.Equal(t, 0, l.Current("7"))

	// extra releases do not go negative
	require.NoError(t, l.Release(ctx, "7"))
	assert.Equal(t, 0, l.Current("7"))
}

func TestLocalLimiterConcurrent(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLimiter(3)

	var granted int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Acquire(ctx, "k") == nil {
				atomic.AddInt32(&granted, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(3), granted)
}
