// Package transport exposes the room coordinator over HTTP.
//
// It is deliberately thin plumbing around the core: route dispatch (chi),
// room identifier extraction from the "room" query parameter, CORS, request
// logging, and the two sink implementations (a Server-Sent Events stream
// and a WebSocket adapter) that carry framed events to subscribers. All
// room semantics live in core/room.
package transport
