package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/roomcast/pkg/async"
)

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("returns function error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		f := async.Go(context.Background(), func(context.Context) error {
			return wantErr
		})

		require.ErrorIs(t, f.Await(), wantErr)
		assert.True(t, f.IsComplete())
	})

	t.Run("nil error on success", func(t *testing.T) {
		t.Parallel()

		f := async.Go(context.Background(), func(context.Context) error {
			return nil
		})

		require.NoError(t, f.Await())
	})

	t.Run("pre-canceled context skips the function", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var ran atomic.Bool
		f := async.Go(ctx, func(context.Context) error {
			ran.Store(true)
			return nil
		})

		require.ErrorIs(t, f.Await(), context.Canceled)
		assert.False(t, ran.Load())
	})

	t.Run("await with timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		f := async.Go(context.Background(), func(context.Context) error {
			<-release
			return nil
		})

		require.ErrorIs(t, f.AwaitWithTimeout(10*time.Millisecond), async.ErrTimeout)
		assert.False(t, f.IsComplete())

		close(release)
		require.NoError(t, f.Await())
	})
}

func TestTracker(t *testing.T) {
	t.Parallel()

	t.Run("wait covers all tracked tasks", func(t *testing.T) {
		t.Parallel()

		tracker := async.NewTracker()

		var completed atomic.Int64
		for i := 0; i < 10; i++ {
			tracker.Go(context.Background(), func(context.Context) error {
				completed.Add(1)
				return nil
			})
		}

		require.NoError(t, tracker.Wait(context.Background()))
		assert.EqualValues(t, 10, completed.Load())
		assert.Zero(t, tracker.Pending())
	})

	t.Run("wait honors context deadline", func(t *testing.T) {
		t.Parallel()

		tracker := async.NewTracker()
		release := make(chan struct{})
		defer close(release)

		tracker.Go(context.Background(), func(context.Context) error {
			<-release
			return nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		require.ErrorIs(t, tracker.Wait(ctx), context.DeadlineExceeded)
		assert.Equal(t, 1, tracker.Pending())
	})

	t.Run("zero value is usable", func(t *testing.T) {
		t.Parallel()

		var tracker async.Tracker
		f := tracker.Go(context.Background(), func(context.Context) error { return nil })

		require.NoError(t, f.Await())
		require.NoError(t, tracker.Wait(context.Background()))
	})
}
