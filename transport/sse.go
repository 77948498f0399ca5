package transport

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/roomcast/core/room"
	"github.com/dmitrymomot/roomcast/pkg/logger"
)

// sseSink writes framed event chunks to a streaming HTTP response, flushing
// after every chunk. The coordinator serializes writes, so no locking is
// needed here.
type sseSink struct {
	w http.ResponseWriter
	f http.Flusher
}

func (s *sseSink) Write(chunk []byte) error {
	if _, err := s.w.Write(chunk); err != nil {
		return err
	}
	s.f.Flush()
	return nil
}

// Close is a no-op: the HTTP connection belongs to the server, which tears
// it down when the handler returns.
func (s *sseSink) Close() error {
	return nil
}

// Events handles stream-connection requests: it subscribes the caller to the
// requested room as an SSE stream and blocks until the client disconnects.
func Events(registry *room.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		roomID := r.URL.Query().Get("room")
		coord := registry.GetOrCreate(roomID)
		client := coord.Subscribe(r.Context(), &sseSink{w: w, f: flusher})

		log.DebugContext(r.Context(), "event stream opened",
			logger.Room(coord.RoomID()), logger.ClientID(client.ID().String()))

		<-r.Context().Done()
		coord.Unsubscribe(client)

		log.DebugContext(r.Context(), "event stream closed",
			logger.Room(coord.RoomID()), logger.ClientID(client.ID().String()))
	}
}
