package future_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/verity/pkg/future"
)

func TestGo(t *testing.T) {
	t.Run("await returns the function result", func(t *testing.T) {
		f := future.Go(context.Background(), 2, func(ctx context.Context, n int) (int, error) {
			return n * 21, nil
		})
		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, res)
	})

	t.Run("await propagates the function error", func(t *testing.T) {
		boom := errors.New("boom")
		f := future.Go(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
			return 0, boom
		})
		_, err := f.Await()
		require.ErrorIs(t, err, boom)
	})

	t.Run("pre-canceled context completes without running the function", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ran := false
		f := future.Go(ctx, 0, func(ctx context.Context, _ int) (int, error) {
			ran = true
			return 1, nil
		})
		_, err := f.Await()
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, ran)
	})

	t.Run("is complete reflects completion without blocking", func(t *testing.T) {
		release := make(chan struct{})
		f := future.Go(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
			<-release
			return 1, nil
		})
		assert.False(t, f.IsComplete())

		close(release)
		_, _ = f.Await()
		assert.True(t, f.IsComplete())
	})
}

func TestResolved(t *testing.T) {
	t.Run("is complete immediately", func(t *testing.T) {
		f := future.Resolved("done", nil)
		assert.True(t, f.IsComplete())

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "done", res)
	})

	t.Run("carries an error outcome", func(t *testing.T) {
		boom := errors.New("boom")
		f := future.Resolved(0, boom)
		_, err := f.Await()
		require.ErrorIs(t, err, boom)
	})
}

func TestWaitAll(t *testing.T) {
	t.Run("collects every result in order", func(t *testing.T) {
		slow := future.Go(context.Background(), 1, func(ctx context.Context, n int) (int, error) {
			time.Sleep(10 * time.Millisecond)
			return n, nil
		})
		fast := future.Resolved(2, nil)

		results, err := future.WaitAll(slow, fast)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, results)
	})

	t.Run("returns the first error encountered", func(t *testing.T) {
		boom := errors.New("boom")
		results, err := future.WaitAll(future.Resolved(1, nil), future.Resolved(0, boom))
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, results[0])
	})
}
