package transport

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/roomcast/core/room"
	"github.com/dmitrymomot/roomcast/pkg/logger"
)

// wsSink delivers framed event chunks as WebSocket text messages. Writes are
// serialized by the coordinator, which satisfies gorilla's single-writer
// requirement.
type wsSink struct {
	conn *websocket.Conn
}

func (s *wsSink) Write(chunk []byte) error {
	return s.conn.WriteMessage(websocket.TextMessage, chunk)
}

func (s *wsSink) Close() error {
	return s.conn.Close()
}

// WebSocketOption configures the WebSocket endpoint.
type WebSocketOption func(*websocket.Upgrader)

// WithOriginCheck sets a custom origin validator for the upgrade handshake.
func WithOriginCheck(fn func(r *http.Request) bool) WebSocketOption {
	return func(u *websocket.Upgrader) {
		if fn != nil {
			u.CheckOrigin = fn
		}
	}
}

// WebSocket handles stream-connection requests over WebSocket: the caller is
// subscribed to the requested room and receives the same framed events as an
// SSE subscriber, one frame per text message. Inbound messages are ignored;
// the read loop only detects disconnection.
func WebSocket(registry *room.Registry, log *slog.Logger, opts ...WebSocketOption) http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(*http.Request) bool { return true },
	}

	for _, opt := range opts {
		opt(upgrader)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.DebugContext(r.Context(), "websocket upgrade failed", logger.Error(err))
			return
		}

		roomID := r.URL.Query().Get("room")
		coord := registry.GetOrCreate(roomID)
		client := coord.Subscribe(r.Context(), &wsSink{conn: conn})

		log.DebugContext(r.Context(), "websocket stream opened",
			logger.Room(coord.RoomID()), logger.ClientID(client.ID().String()))

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		coord.Unsubscribe(client)
		log.DebugContext(r.Context(), "websocket stream closed",
			logger.Room(coord.RoomID()), logger.ClientID(client.ID().String()))
	}
}
