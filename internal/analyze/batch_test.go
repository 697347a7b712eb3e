// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchedKeepsOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	for _, size := range []int{0, 1, 3, 16} {
		out, err := batched(context.Background(), items, size, func(_ context.Context, n int) int {
			return n * n
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49}, out, "size %d", size)
	}
}

func TestBatchedStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	_, err := batched(ctx, make([]int, 10), 2, func(context.Context, int) int {
		if calls.Add(1) == 1 {
			cancel()
		}
		return 0
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, calls.Load(), int32(2), "only the first chunk runs")
}

func TestBatchedEmpty(t *testing.T) {
	out, err := batched(context.Background(), []string(nil), 4, func(context.Context, string) int { return 1 })
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBatchedCancelReachesCallsInFlight(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var started atomic.Int32
	_, err := batched(ctx, make([]int, 4), 4, func(ctx context.Context, _ int) int {
		if started.Add(1) == 4 {
			cancel()
		}
		<-ctx.Done()
		return 0
	})
	assert.ErrorIs(t, err, context.Canceled)
}
