package room

// Queue drains happen inline under the coordinator lock, which leaves the
// overflow behavior without a public surface; these seams expose it to the
// external test package.

func NewQueueClient(sink Sink, capacity int) *Client { return newClient(sink, capacity) }

func (c *Client) Push(chunk []byte) { c.push(chunk) }

func (c *Client) Drain() error { return c.drain() }

func (c *Client) Close() { c.close() }
