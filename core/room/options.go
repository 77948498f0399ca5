package room

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/roomcast/pkg/async"
)

const (
	// DefaultReplayCapacity is the number of recent broadcasts kept for
	// replay to new subscribers.
	DefaultReplayCapacity = 10

	// DefaultClientQueueCapacity bounds each subscriber's outbound queue.
	DefaultClientQueueCapacity = 100

	// DefaultHeartbeatInterval is the period between update events while a
	// room has subscribers.
	DefaultHeartbeatInterval = 3 * time.Second
)

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger configures structured logging. Nil loggers are ignored.
func WithLogger(log *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHeartbeatInterval overrides the heartbeat period.
// Non-positive values are ignored.
func WithHeartbeatInterval(interval time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		if interval > 0 {
			c.heartbeatInterval = interval
		}
	}
}

// WithReplayCapacity overrides the replay buffer capacity.
// Non-positive values are ignored.
func WithReplayCapacity(capacity int) CoordinatorOption {
	return func(c *Coordinator) {
		if capacity > 0 {
			c.replayCapacity = capacity
		}
	}
}

// WithClientQueueCapacity overrides the per-subscriber queue capacity.
// Non-positive values are ignored. This is the configuration point for the
// backpressure policy; the overflow behavior itself is always drop-oldest.
func WithClientQueueCapacity(capacity int) CoordinatorOption {
	return func(c *Coordinator) {
		if capacity > 0 {
			c.queueCapacity = capacity
		}
	}
}

// WithTracker shares a background-task tracker across coordinators so the
// host can await all pending persistence writes at once. Nil is ignored.
func WithTracker(tasks *async.Tracker) CoordinatorOption {
	return func(c *Coordinator) {
		if tasks != nil {
			c.tasks = tasks
		}
	}
}

// WithClock overrides the time source used for timestamp injection and
// heartbeats. Nil is ignored. Intended for tests.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}
