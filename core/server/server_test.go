package server_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/roomcast/core/server"
)

func freeAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires an address", func(t *testing.T) {
		t.Parallel()

		_, err := server.NewFromConfig(server.Config{})
		require.ErrorIs(t, err, server.ErrMissingAddress)
	})

	t.Run("builds a server from config", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.Config{
			Addr:            ":0",
			ReadTimeout:     time.Second,
			ShutdownTimeout: time.Second,
		})
		require.NoError(t, err)
		require.NotNil(t, srv)
	})
}

func TestServerLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("serves until context cancellation", func(t *testing.T) {
		t.Parallel()

		addr := freeAddr(t)
		srv := server.New(addr, server.WithShutdownTimeout(time.Second))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- srv.Start(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "ok")
			}))
		}()

		var body string
		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + addr + "/")
			if err != nil {
				return false
			}
			defer resp.Body.Close()
			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return false
			}
			body = string(b)
			return true
		}, 5*time.Second, 20*time.Millisecond)
		assert.Equal(t, "ok", body)

		cancel()
		require.ErrorIs(t, <-done, context.Canceled)
		require.NoError(t, srv.Stop())
	})

	t.Run("start twice fails", func(t *testing.T) {
		t.Parallel()

		addr := freeAddr(t)
		srv := server.New(addr)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() { _ = srv.Start(ctx, http.NewServeMux()) }()

		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + addr + "/")
			if err != nil {
				return false
			}
			resp.Body.Close()
			return true
		}, 5*time.Second, 20*time.Millisecond)

		require.ErrorIs(t, srv.Start(ctx, http.NewServeMux()), server.ErrServerAlreadyRunning)

		cancel()
		require.NoError(t, srv.Stop())
	})

	t.Run("stop without start is a no-op", func(t *testing.T) {
		t.Parallel()

		srv := server.New(":0")
		require.NoError(t, srv.Stop())
	})
}
