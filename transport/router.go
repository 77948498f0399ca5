package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/roomcast/core/health"
	"github.com/dmitrymomot/roomcast/core/room"
)

// NewRouter mounts the service routes:
//
//	GET  /events?room=R     SSE subscription
//	GET  /ws?room=R         WebSocket subscription
//	POST /broadcast?room=R  publish to a room
//	GET  /health/live       liveness probe
//	GET  /health/ready      readiness probe (runs checks)
func NewRouter(registry *room.Registry, log *slog.Logger, checks ...func(context.Context) error) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(log))
	r.Use(CORS(CORSConfig{}))

	r.Get("/events", Events(registry, log))
	r.Get("/ws", WebSocket(registry, log))
	r.Post("/broadcast", Publish(registry, log))

	r.Get("/health/live", health.Liveness())
	r.Get("/health/ready", health.Readiness(log, checks...))

	return r
}
