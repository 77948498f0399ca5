package room

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/roomcast/core/replay"
	"github.com/dmitrymomot/roomcast/pkg/async"
	"github.com/dmitrymomot/roomcast/pkg/logger"
)

// DefaultRoomID is used when a caller does not name a room.
const DefaultRoomID = "global"

// Registry maps room identifiers to coordinators, creating each room on
// first use. An idle room stays resident with its heartbeat stopped and its
// replay buffer retained; the host may recycle it explicitly with Evict.
type Registry struct {
	store replay.Store
	log   *slog.Logger
	tasks *async.Tracker
	opts  []CoordinatorOption

	mu    sync.RWMutex
	rooms map[string]*Coordinator
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger configures structured logging for the registry and
// every coordinator it creates. Nil loggers are ignored.
func WithRegistryLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRoomOptions forwards options to every coordinator the registry
// creates.
func WithRoomOptions(opts ...CoordinatorOption) RegistryOption {
	return func(r *Registry) {
		r.opts = append(r.opts, opts...)
	}
}

// NewRegistry creates an empty registry over the given replay store.
func NewRegistry(store replay.Store, opts ...RegistryOption) *Registry {
	r := &Registry{
		store: store,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tasks: async.NewTracker(),
		rooms: make(map[string]*Coordinator),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GetOrCreate returns the room's coordinator, creating it on first use.
// An empty identifier resolves to DefaultRoomID.
func (r *Registry) GetOrCreate(roomID string) *Coordinator {
	if roomID == "" {
		roomID = DefaultRoomID
	}

	r.mu.RLock()
	coord, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if ok {
		return coord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if coord, ok := r.rooms[roomID]; ok {
		return coord
	}

	opts := append([]CoordinatorOption{
		WithLogger(r.log),
		WithTracker(r.tasks),
	}, r.opts...)

	coord = NewCoordinator(roomID, r.store, opts...)
	r.rooms[roomID] = coord
	r.log.Debug("room created", logger.Room(roomID))
	return coord
}

// Evict drops the room's coordinator, disconnecting its subscribers. The
// next access recreates the room and reloads its replay history from the
// store. A no-op for unknown rooms.
func (r *Registry) Evict(roomID string) {
	r.mu.Lock()
	coord, ok := r.rooms[roomID]
	delete(r.rooms, roomID)
	r.mu.Unlock()

	if !ok {
		return
	}

	coord.Close()
	r.log.Debug("room evicted", logger.Room(roomID))
}

// Len returns the number of resident rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Close disconnects every room and waits for pending replay persistence
// writes until ctx is done. Returns ctx.Err() if the writes do not finish in
// time.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	rooms := make([]*Coordinator, 0, len(r.rooms))
	for _, coord := range r.rooms {
		rooms = append(rooms, coord)
	}
	r.mu.Unlock()

	for _, coord := range rooms {
		coord.Close()
	}

	if err := r.tasks.Wait(ctx); err != nil {
		r.log.Warn("abandoned pending replay writes",
			logger.Count("pending", r.tasks.Pending()), logger.Error(err))
		return err
	}
	return nil
}
