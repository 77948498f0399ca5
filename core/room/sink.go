package room

// Sink is the transport-side write target of one subscriber. The transport
// layer supplies an implementation per connection (HTTP streaming response,
// WebSocket frame writer, ...); the coordinator only needs chunk delivery
// and a failure signal.
//
// Write delivers one framed chunk and reports the first transport failure;
// after a failed Write the sink is considered dead and is not written again.
// Close releases transport resources and must be safe to call more than once.
type Sink interface {
	Write(chunk []byte) error
	Close() error
}
