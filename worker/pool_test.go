package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("process all submitted items", func(t *testing.T) {
		t.Parallel()
		var processed int64
		pool := NewPool(4, 64, func(_ context.Context, _ int) error {
			atomic.AddInt64(&processed, 1)
			return nil
		})

		require.NoError(t, pool.Start(context.Background()))
		for i := 0; i < 50; i++ {
			require.NoError(t, pool.Submit(i))
		}
		require.NoError(t, pool.Stop(5*time.Second))

		assert.Equal(t, int64(50), atomic.LoadInt64(&processed))
		stats := pool.Stats()
		assert.Equal(t, int64(50), stats.Submitted)
		assert.Equal(t, int64(50), stats.Processed)
		assert.Equal(t, int64(0), stats.Failed)
	})

	t.Run("failures are counted not fatal", func(t *testing.T) {
		t.Parallel()
		pool := NewPool(2, 16, func(_ context.Context, item int) error {
			if item%2 == 0 {
				return errors.New("boom")
			}
			return nil
		})

		require.NoError(t, pool.Start(context.Background()))
		for i := 0; i < 10; i++ {
			require.NoError(t, pool.Submit(i))
		}
		require.NoError(t, pool.Stop(5*time.Second))

		stats := pool.Stats()
		assert.Equal(t, int64(5), stats.Processed)
		assert.Equal(t, int64(5), stats.Failed)
	})

	t.Run("submit before start", func(t *testing.T) {
		t.Parallel()
		pool := NewPool(1, 1, func(context.Context, int) error { return nil })
		assert.ErrorIs(t, pool.Submit(1), ErrPoolNotStarted)
	})

	t.Run("double start", func(t *testing.T) {
		t.Parallel()
		pool := NewPool(1, 1, func(context.Context, int) error { return nil })
		require.NoError(t, pool.Start(context.Background()))
		assert.ErrorIs(t, pool.Start(context.Background()), ErrPoolAlreadyStarted)
		require.NoError(t, pool.Stop(time.Second))
	})

	t.Run("submit after stop", func(t *testing.T) {
		t.Parallel()
		pool := NewPool(1, 1, func(context.Context, int) error { return nil })
		require.NoError(t, pool.Start(context.Background()))
		require.NoError(t, pool.Stop(time.Second))
		assert.ErrorIs(t, pool.Submit(1), ErrPoolStopped)
	})

	t.Run("stop before start", func(t *testing.T) {
		t.Parallel()
		pool := NewPool(1, 1, func(context.Context, int) error { return nil })
		assert.ErrorIs(t, pool.Stop(time.Second), ErrPoolNotStarted)
	})

	t.Run("double stop", func(t *testing.T) {
		t.Parallel()
		pool := NewPool(1, 1, func(context.Context, int) error { return nil })
		require.NoError(t, pool.Start(context.Background()))
		require.NoError(t, pool.Stop(time.Second))
		assert.ErrorIs(t, pool.Stop(time.Second), ErrPoolStopped)
	})

	t.Run("nil processor panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			NewPool[int](1, 1, nil)
		})
	})

	t.Run("defaults applied for non-positive sizes", func(t *testing.T) {
		t.Parallel()
		pool := NewPool(0, -1, func(context.Context, int) error { return nil })
		require.NoError(t, pool.Start(context.Background()))
		require.NoError(t, pool.Submit(1))
		require.NoError(t, pool.Stop(time.Second))
	})
}

func TestPoolQueueFull(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	pool := NewPool(1, 1, func(_ context.Context, _ int) error {
		<-block
		return nil
	})
	require.NoError(t, pool.Start(context.Background()))

	// One item occupies the single worker, one fills the queue. With slow
	// scheduling the worker may not have picked up the first item yet, so
	// allow one extra submission before expecting ErrQueueFull.
	require.NoError(t, pool.Submit(1))
	err := pool.Submit(2)
	if err == nil {
		err = pool.Submit(3)
	}
	if err == nil {
		err = pool.Submit(4)
	}
	assert.ErrorIs(t, err, ErrQueueFull)

	close(block)
	require.NoError(t, pool.Stop(5*time.Second))
}

func TestPoolStopTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	pool := NewPool(1, 4, func(_ context.Context, _ int) error {
		<-release
		return nil
	})
	require.NoError(t, pool.Start(context.Background()))
	require.NoError(t, pool.Submit(1))

	err := pool.Stop(50 * time.Millisecond)
	assert.ErrorIs(t, err, ErrStopTimeout)
	close(release)
}

// Submitters racing against Stop must never reach the queue after it is
// closed; late submissions get ErrPoolStopped (or ErrQueueFull), never a
// send-on-closed-channel panic.
func TestPoolSubmitDuringStop(t *testing.T) {
	t.Parallel()

	for round := 0; round < 25; round++ {
		pool := NewPool(2, 4, func(context.Context, int) error { return nil })
		require.NoError(t, pool.Start(context.Background()))

		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					if err := pool.Submit(i); err != nil {
						assert.True(t,
							errors.Is(err, ErrPoolStopped) || errors.Is(err, ErrQueueFull),
							"unexpected submit error: %v", err)
					}
				}
			}()
		}

		require.NoError(t, pool.Stop(5*time.Second))
		wg.Wait()
	}
}

func TestPoolConcurrency(t *testing.T) {
	t.Parallel()

	// Concurrent submitters, concurrent workers; every item must be seen
	// exactly once.
	const items = 200

	var mu sync.Mutex
	seen := make(map[int]int)

	pool := NewPool(8, items, func(_ context.Context, item int) error {
		mu.Lock()
		seen[item]++
		mu.Unlock()
		return nil
	})
	require.NoError(t, pool.Start(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < items; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, pool.Submit(i))
		}(i)
	}
	wg.Wait()
	require.NoError(t, pool.Stop(5*time.Second))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, items)
	for item, count := range seen {
		assert.Equal(t, 1, count, "item %d", item)
	}
}

func TestPoolMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	pool := NewPool(2, 16, func(_ context.Context, item int) error {
		if item < 0 {
			return errors.New("negative")
		}
		return nil
	}, WithRegisterer[int](reg, "eval_pool"))

	require.NoError(t, pool.Start(context.Background()))
	require.NoError(t, pool.Submit(1))
	require.NoError(t, pool.Submit(2))
	require.NoError(t, pool.Submit(-1))
	require.NoError(t, pool.Stop(5*time.Second))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["eval_pool_submitted_total"])
	assert.True(t, names["eval_pool_processed_total"])
	assert.True(t, names["eval_pool_failed_total"])
	assert.True(t, names["eval_pool_processing_duration_seconds"])

	submitted, err := testutil.GatherAndCount(reg, "eval_pool_submitted_total")
	require.NoError(t, err)
	assert.Equal(t, 1, submitted)
}
