package room

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/roomcast/core/replay"
	"github.com/dmitrymomot/roomcast/pkg/async"
	"github.com/dmitrymomot/roomcast/pkg/logger"
)

// Coordinator owns all state for one room and serializes every operation on
// it. A coordinator is never torn down explicitly; the host may drop it and
// construct a fresh one over the same store, which transparently reloads the
// replay history on first access.
type Coordinator struct {
	roomID string
	id     uuid.UUID
	log    *slog.Logger
	now    func() time.Time
	tasks  *async.Tracker

	heartbeatInterval time.Duration
	replayCapacity    int
	queueCapacity     int

	mu      sync.Mutex
	clients map[uuid.UUID]*Client
	buffer  *Buffer
	hb      *heartbeat
}

// NewCoordinator creates an empty coordinator for the room backed by the
// given replay store.
func NewCoordinator(roomID string, store replay.Store, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		roomID:            roomID,
		id:                uuid.New(),
		log:               slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:               time.Now,
		tasks:             async.NewTracker(),
		heartbeatInterval: DefaultHeartbeatInterval,
		replayCapacity:    DefaultReplayCapacity,
		queueCapacity:     DefaultClientQueueCapacity,
		clients:           make(map[uuid.UUID]*Client),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.buffer = newBuffer(roomID, c.replayCapacity, store, c.tasks, c.log)
	c.hb = newHeartbeat(c.heartbeatInterval, c.emitHeartbeat)
	return c
}

// RoomID returns the room identifier this coordinator serves.
func (c *Coordinator) RoomID() string {
	return c.roomID
}

// ID returns the coordinator instance identity carried in heartbeat events.
// A recreated coordinator gets a fresh identity.
func (c *Coordinator) ID() uuid.UUID {
	return c.id
}

// Subscribe registers a new subscriber channel bound to sink. The channel
// immediately receives a connection confirmation followed by a replay of the
// buffered history, oldest first; live events follow. Subscribing the first
// client starts the heartbeat schedule.
//
// The returned Client is the handle for Unsubscribe. Subscribe itself never
// fails: a sink that dies during the initial replay is simply removed again.
func (c *Coordinator) Subscribe(ctx context.Context, sink Sink) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	client := newClient(sink, c.queueCapacity)
	c.clients[client.id] = client

	client.push(confirmationChunk)

	c.buffer.Load(ctx)
	for _, msg := range c.buffer.Snapshot() {
		chunk, err := encodeEvent(EventBroadcast, msg)
		if err != nil {
			c.log.WarnContext(ctx, "skipping unencodable replay message",
				logger.Room(c.roomID), logger.Error(err))
			continue
		}
		client.push(chunk)
	}

	if err := client.drain(); err != nil {
		c.log.InfoContext(ctx, "subscriber sink failed during replay",
			logger.Room(c.roomID), logger.ClientID(client.id.String()), logger.Error(err))
		c.removeLocked(client)
		return client
	}

	c.log.DebugContext(ctx, "subscriber joined",
		logger.Room(c.roomID), logger.ClientID(client.id.String()),
		logger.Count("subscribers", len(c.clients)))

	if len(c.clients) == 1 {
		c.hb.Start()
	}
	return client
}

// Unsubscribe removes the channel from the room and closes its sink.
// Removing the last client stops the heartbeat schedule. Unsubscribing an
// already-removed channel is a no-op.
func (c *Coordinator) Unsubscribe(client *Client) {
	if client == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(client)
}

// Publish parses a raw broadcast body, stores the resulting message in the
// replay buffer, and fans it out to every subscriber. The stored message is
// returned; the only possible failure is ErrMalformedBody for a declared-JSON
// body that does not parse, in which case nothing is stored or broadcast.
func (c *Coordinator) Publish(ctx context.Context, body []byte, contentType string) (Message, error) {
	msg, err := newMessage(body, contentType, c.now)
	if err != nil {
		return nil, err
	}

	chunk, err := encodeEvent(EventBroadcast, msg)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.buffer.Append(ctx, msg)
	c.fanOutLocked(ctx, chunk)

	c.log.DebugContext(ctx, "broadcast published",
		logger.Room(c.roomID), logger.Count("subscribers", len(c.clients)))
	return msg, nil
}

// Subscribers returns the current number of registered channels.
func (c *Coordinator) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

// Active reports whether the heartbeat schedule is running. It holds that
// Active is true exactly when the room has at least one subscriber.
func (c *Coordinator) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hb.active()
}

// Close removes every subscriber and stops the heartbeat schedule. Used by
// the host when recycling a room. Pending persistence writes are not waited
// on here; the shared tracker covers them.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, client := range c.clients {
		delete(c.clients, client.id)
		client.close()
	}
	c.hb.Stop()
}

// emitHeartbeat is the heartbeat tick: an update event carrying the
// coordinator identity and the current time, fanned out to every subscriber.
// Failures are swallowed; the schedule continues regardless.
func (c *Coordinator) emitHeartbeat() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.clients) == 0 {
		return
	}

	chunk, err := encodeEvent(EventUpdate, heartbeatPayload{
		Timestamp:     c.now().UTC().Format(time.RFC3339),
		CoordinatorID: c.id.String(),
	})
	if err != nil {
		c.log.Warn("heartbeat encoding failed", logger.Room(c.roomID), logger.Error(err))
		return
	}

	c.fanOutLocked(context.Background(), chunk)
}

// fanOutLocked enqueues a chunk to every subscriber and drains each queue.
// Channels whose sink fails are removed; one bad client never affects the
// rest of the room.
func (c *Coordinator) fanOutLocked(ctx context.Context, chunk []byte) {
	for _, client := range c.clients {
		client.push(chunk)
		if err := client.drain(); err != nil {
			c.log.InfoContext(ctx, "dropping subscriber after sink failure",
				logger.Room(c.roomID), logger.ClientID(client.id.String()), logger.Error(err))
			c.removeLocked(client)
		}
	}
}

// removeLocked deletes the channel, closes its sink, and stops the heartbeat
// when the room empties. Callers hold c.mu.
func (c *Coordinator) removeLocked(client *Client) {
	if _, ok := c.clients[client.id]; !ok {
		return
	}

	delete(c.clients, client.id)
	client.close()

	if len(c.clients) == 0 {
		c.hb.Stop()
	}
}
