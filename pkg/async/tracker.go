package async

import (
	"context"
	"sync"
	"sync/atomic"
)

// Tracker is a set of tracked background tasks. It exists for work that must
// not block its caller but must still be accounted for during shutdown:
// callers fire tasks with Go and the host waits for the whole set with Wait.
//
// The zero value is ready to use.
type Tracker struct {
	wg      sync.WaitGroup
	pending atomic.Int64
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Go runs fn in a new goroutine, tracked until completion, and returns its
// Future. The caller is not required to await the future; Wait covers it.
func (t *Tracker) Go(ctx context.Context, fn func(context.Context) error) *Future {
	t.wg.Add(1)
	t.pending.Add(1)

	f := Go(ctx, fn)

	// Tied to future completion rather than fn itself: a pre-canceled
	// context skips fn entirely, and the count must still settle.
	go func() {
		<-f.done
		t.pending.Add(-1)
		t.wg.Done()
	}()

	return f
}

// Pending returns the number of tasks that have not yet completed.
func (t *Tracker) Pending() int {
	return int(t.pending.Load())
}

// Wait blocks until every tracked task has completed or ctx is done.
// Returns ctx.Err() if the context ends first; tasks keep running in that
// case, they are merely no longer waited on.
func (t *Tracker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
