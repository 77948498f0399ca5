package room

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/roomcast/core/replay"
	"github.com/dmitrymomot/roomcast/pkg/async"
	"github.com/dmitrymomot/roomcast/pkg/logger"
)

// Buffer is the bounded replay history of one room: the most recent messages
// in arrival order, capped at a fixed capacity with FIFO eviction.
//
// The in-memory entries are authoritative for the coordinator's lifetime.
// Persistence is best-effort durability across coordinator recreations:
// loads degrade to an empty history, saves run in the background and never
// fail the publish path. All methods run under the owning coordinator's
// lock.
type Buffer struct {
	roomID   string
	capacity int
	store    replay.Store
	tasks    *async.Tracker
	log      *slog.Logger

	loaded  bool
	entries []Message
}

func newBuffer(roomID string, capacity int, store replay.Store, tasks *async.Tracker, log *slog.Logger) *Buffer {
	return &Buffer{
		roomID:   roomID,
		capacity: capacity,
		store:    store,
		tasks:    tasks,
		log:      log,
	}
}

// Load reads the persisted history, once. A failed read degrades to an empty
// history and is retried on the next access; only a successful read latches.
// The caller never sees an error.
func (b *Buffer) Load(ctx context.Context) {
	if b.loaded {
		return
	}

	// The history outlives any one subscriber, so the read must not die
	// with the request that happened to trigger it.
	raw, err := b.store.Load(context.WithoutCancel(ctx), b.roomID)
	if err != nil {
		b.log.WarnContext(ctx, "replay history unavailable, starting empty",
			logger.Room(b.roomID), logger.Error(err))
		return
	}
	b.loaded = true

	entries := make([]Message, 0, len(raw))
	for _, data := range raw {
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			b.log.WarnContext(ctx, "skipping undecodable replay entry",
				logger.Room(b.roomID), logger.Error(err))
			continue
		}
		entries = append(entries, msg)
	}

	if len(entries) > b.capacity {
		entries = entries[len(entries)-b.capacity:]
	}
	b.entries = entries
}

// Append stores a message, evicting the oldest entry beyond capacity, and
// schedules a background save of the full sequence. The save is tracked so
// shutdown can wait for it, but Append itself never blocks on it.
func (b *Buffer) Append(ctx context.Context, msg Message) {
	b.Load(ctx)
	// The first write makes the in-memory history authoritative; a store
	// read succeeding later must not clobber appended entries.
	b.loaded = true

	b.entries = append(b.entries, msg)
	if len(b.entries) > b.capacity {
		b.entries = b.entries[1:]
	}

	raw := make([]json.RawMessage, 0, len(b.entries))
	for _, entry := range b.entries {
		data, err := json.Marshal(entry)
		if err != nil {
			b.log.WarnContext(ctx, "skipping unencodable replay entry",
				logger.Room(b.roomID), logger.Error(err))
			continue
		}
		raw = append(raw, data)
	}

	// The write outlives the publish request, so detach from its
	// cancellation while keeping its values.
	b.tasks.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := b.store.Save(ctx, b.roomID, raw); err != nil {
			b.log.WarnContext(ctx, "replay history save failed",
				logger.Room(b.roomID), logger.Error(err))
		}
		return nil
	})
}

// Snapshot returns the buffered messages, oldest first. The returned slice
// is a copy; the messages themselves are shared and treated as immutable.
func (b *Buffer) Snapshot() []Message {
	return slices.Clone(b.entries)
}

// Len returns the number of buffered messages.
func (b *Buffer) Len() int {
	return len(b.entries)
}
