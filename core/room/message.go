package room

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"strings"
	"time"
)

// TimestampField is the payload key carrying the message timestamp. The
// coordinator injects it when the publisher did not supply one; a
// publisher-supplied value is never overwritten.
const TimestampField = "timestamp"

// Message is one published event: a string-keyed payload of JSON-compatible
// values, opaque to the coordinator apart from timestamp injection. Once a
// message is stored in the replay buffer it is treated as immutable.
type Message map[string]any

// Timestamp returns the message's timestamp field when it is a string.
func (m Message) Timestamp() string {
	ts, _ := m[TimestampField].(string)
	return ts
}

// newMessage builds a Message from a raw publish body and its declared
// content type, applying the permissive defaulting rules:
//
//   - empty body: a placeholder payload, regardless of content type
//   - non-JSON content type: a different placeholder payload
//   - declared JSON that does not parse into an object: ErrMalformedBody
func newMessage(body []byte, contentType string, now func() time.Time) (Message, error) {
	var payload map[string]any

	switch {
	case len(bytes.TrimSpace(body)) == 0:
		payload = map[string]any{"message": "empty broadcast"}
	case !isJSONContentType(contentType):
		payload = map[string]any{"message": "non-json broadcast"}
	default:
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedBody, err)
		}
		if payload == nil {
			// The literal "null" parses but carries nothing.
			payload = map[string]any{"message": "empty broadcast"}
		}
	}

	if _, ok := payload[TimestampField]; !ok {
		payload[TimestampField] = now().UTC().Format(time.RFC3339)
	}

	return Message(payload), nil
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
