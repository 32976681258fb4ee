package pool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/Sanidhya49/binsavvy-cli/pkg/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ProcessesAllItems(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	var sum int64

	errs := pool.Run(context.Background(), items, 3, func(_ context.Context, n int) error {
		atomic.AddInt64(&sum, int64(n))
		return nil
	})

	assert.Empty(t, errs)
	assert.Equal(t, int64(36), atomic.LoadInt64(&sum))
}

func TestRun_CollectsErrorsWithoutStopping(t *testing.T) {
	items := []int{1, 2, 3, 4}
	var processed int64

	errs := pool.Run(context.Background(), items, 2, func(_ context.Context, n int) error {
		atomic.AddInt64(&processed, 1)
		if n%2 == 0 {
			return errors.New("even item")
		}
		return nil
	})

	assert.Len(t, errs, 2)
	assert.Equal(t, int64(4), atomic.LoadInt64(&processed), "errors must not stop the pool")
}

func TestRun_CancelledContextStopsFeeding(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var processed int64
	errs := pool.Run(ctx, []int{1, 2, 3}, 2, func(_ context.Context, _ int) error {
		atomic.AddInt64(&processed, 1)
		return nil
	})

	require.Empty(t, errs)
	assert.Zero(t, atomic.LoadInt64(&processed))
}

func TestRun_ClampsWorkerCount(t *testing.T) {
	errs := pool.Run(context.Background(), []int{1}, 0, func(_ context.Context, _ int) error {
		return nil
	})
	assert.Empty(t, errs)
}
