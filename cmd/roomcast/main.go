package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/roomcast/core/config"
	"github.com/dmitrymomot/roomcast/core/replay"
	"github.com/dmitrymomot/roomcast/core/room"
	"github.com/dmitrymomot/roomcast/core/server"
	"github.com/dmitrymomot/roomcast/integration/database/redis"
	"github.com/dmitrymomot/roomcast/pkg/logger"
	"github.com/dmitrymomot/roomcast/transport"
)

type appConfig struct {
	// StorageDriver selects the replay history backend: memory, redis, or
	// postgres.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	PostgresURL   string `env:"DATABASE_URL" envDefault:""`

	LogLevel  slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	Heartbeat time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"3s"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	var srvCfg server.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, checks, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	registry := room.NewRegistry(store,
		room.WithRegistryLogger(log),
		room.WithRoomOptions(room.WithHeartbeatInterval(cfg.Heartbeat)),
	)

	srv, err := server.NewFromConfig(srvCfg, server.WithLogger(log))
	if err != nil {
		return err
	}

	handler := transport.NewRouter(registry, log, checks...)

	log.Info("roomcast starting",
		slog.String("addr", srvCfg.Addr),
		slog.String("storage", cfg.StorageDriver))

	err = srv.Start(ctx, handler)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err := srv.Stop(); err != nil {
		log.Error("server shutdown failed", logger.Error(err))
	}

	// Disconnect rooms and wait out pending replay persistence writes.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := registry.Close(shutdownCtx); err != nil {
		log.Warn("shutdown abandoned pending replay writes", logger.Error(err))
	}

	log.Info("roomcast stopped")
	return nil
}

// buildStore wires the configured replay backend and its readiness checks.
func buildStore(ctx context.Context, cfg appConfig, log *slog.Logger) (replay.Store, []func(context.Context) error, func(), error) {
	switch cfg.StorageDriver {
	case "redis":
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, nil, err
		}

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, nil, err
		}

		return replay.NewRedisStore(client),
			[]func(context.Context) error{redis.Healthcheck(client)},
			func() { _ = client.Close() },
			nil

	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, nil, nil, fmt.Errorf("postgres storage requires DATABASE_URL")
		}

		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		store := replay.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}

		return store,
			[]func(context.Context) error{replay.Healthcheck(pool)},
			pool.Close,
			nil

	case "memory":
		log.Warn("using in-memory replay storage, history will not survive restarts")
		return replay.NewMemoryStore(), nil, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
