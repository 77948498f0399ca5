package room

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Event types delivered to subscribers. Broadcast events carry published
// messages (live or replayed); update events carry heartbeats.
const (
	EventBroadcast = "broadcast"
	EventUpdate    = "update"
)

// confirmationChunk is the first chunk written to every new subscriber.
var confirmationChunk = []byte(": connected\n\n")

// heartbeatPayload is the data of an update event. The durableObjectId field
// name is part of the wire contract with existing clients.
type heartbeatPayload struct {
	Timestamp     string `json:"timestamp"`
	CoordinatorID string `json:"durableObjectId"`
}

// encodeEvent frames an event for delivery: an "event:" line, a "data:" line
// with the JSON-encoded payload, and a blank terminator line.
func encodeEvent(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("room: encode %s event: %w", event, err)
	}

	var buf bytes.Buffer
	buf.Grow(len(event) + len(payload) + 16)
	fmt.Fprintf(&buf, "event: %s\ndata: %s\n\n", event, payload)
	return buf.Bytes(), nil
}
