package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/roomcast/core/room"
	"github.com/dmitrymomot/roomcast/pkg/logger"
)

// maxPublishBytes bounds broadcast request bodies.
const maxPublishBytes = 1 << 20 // 1 MB

type publishResponse struct {
	Success bool         `json:"success"`
	Message room.Message `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Publish handles broadcast requests: the body is handed to the room
// coordinator as-is along with its declared content type. Oversized bodies
// are rejected outright rather than truncated into malformed JSON; beyond
// that, only a malformed declared-JSON body is a client error.
func Publish(registry *room.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPublishBytes))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge,
					publishResponse{Error: "broadcast body exceeds the 1 MB limit"})
				return
			}
			writeJSON(w, http.StatusBadRequest, publishResponse{Error: "unreadable request body"})
			return
		}

		roomID := r.URL.Query().Get("room")
		coord := registry.GetOrCreate(roomID)

		msg, err := coord.Publish(r.Context(), body, r.Header.Get("Content-Type"))
		if errors.Is(err, room.ErrMalformedBody) {
			writeJSON(w, http.StatusBadRequest, publishResponse{Error: err.Error()})
			return
		}
		if err != nil {
			log.ErrorContext(r.Context(), "publish failed",
				logger.Room(coord.RoomID()), logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, publishResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, publishResponse{Success: true, Message: msg})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
