package room

import (
	"github.com/google/uuid"
)

// Client is one subscriber's outbound channel: a bounded FIFO queue of
// framed chunks in front of the transport sink. When the queue overflows,
// the oldest chunk is dropped; recency wins under backpressure.
//
// A Client is owned by its coordinator and is only touched while the
// coordinator's lock is held, so it carries no locking of its own. It is
// never reused across connections.
type Client struct {
	id       uuid.UUID
	sink     Sink
	queue    [][]byte
	capacity int
	alive    bool
}

func newClient(sink Sink, capacity int) *Client {
	return &Client{
		id:       uuid.New(),
		sink:     sink,
		capacity: capacity,
		alive:    true,
	}
}

// ID returns the channel's unique identity.
func (c *Client) ID() uuid.UUID {
	return c.id
}

// Alive reports whether the channel is still writable.
func (c *Client) Alive() bool {
	return c.alive
}

// push appends a chunk to the queue, evicting the oldest entry on overflow.
// Dead channels ignore pushes.
func (c *Client) push(chunk []byte) {
	if !c.alive {
		return
	}

	c.queue = append(c.queue, chunk)
	if len(c.queue) > c.capacity {
		c.queue = c.queue[1:]
	}
}

// drain writes queued chunks to the sink in FIFO order until the queue is
// empty or a write fails. On failure the channel is marked dead and the
// remaining chunks are discarded; the caller removes it from the room.
func (c *Client) drain() error {
	if !c.alive {
		return nil
	}

	for len(c.queue) > 0 {
		chunk := c.queue[0]
		c.queue = c.queue[1:]

		if err := c.sink.Write(chunk); err != nil {
			c.alive = false
			c.queue = nil
			return err
		}
	}
	return nil
}

// close marks the channel dead and releases the sink.
func (c *Client) close() {
	c.alive = false
	c.queue = nil
	_ = c.sink.Close()
}
