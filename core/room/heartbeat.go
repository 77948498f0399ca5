package room

import (
	"context"
	"time"
)

// heartbeat runs the periodic update schedule for one room. Start and Stop
// are idempotent and are only called by the owning coordinator, under its
// lock, at occupancy transitions; the schedule itself never inspects room
// state.
type heartbeat struct {
	interval time.Duration
	tick     func()
	cancel   context.CancelFunc
}

func newHeartbeat(interval time.Duration, tick func()) *heartbeat {
	return &heartbeat{
		interval: interval,
		tick:     tick,
	}
}

// Start begins the schedule. A no-op while already running.
func (h *heartbeat) Start() {
	if h.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go h.run(ctx)
}

// Stop cancels the schedule. A no-op while not running. A tick already in
// flight may still complete; it finds an empty room and sends nothing.
func (h *heartbeat) Stop() {
	if h.cancel == nil {
		return
	}

	h.cancel()
	h.cancel = nil
}

func (h *heartbeat) active() bool {
	return h.cancel != nil
}

func (h *heartbeat) run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.tick()
		}
	}
}
