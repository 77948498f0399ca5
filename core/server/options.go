package server

import (
	"log/slog"
	"time"
)

// Option configures server behavior.
type Option func(*Server)

// WithLogger sets a custom logger for server lifecycle events.
// Nil loggers are ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithShutdownTimeout sets the maximum time to wait for graceful shutdown.
// Non-positive values are ignored.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.shutdown = timeout
		}
	}
}

// WithReadTimeout sets the request read timeout. Negative values are ignored;
// zero disables the timeout.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout >= 0 {
			s.readTimeout = timeout
		}
	}
}

// WithWriteTimeout sets the response write timeout. Negative values are
// ignored; zero disables the timeout, which streaming endpoints require.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout >= 0 {
			s.writeTimeout = timeout
		}
	}
}

// WithIdleTimeout sets the idle connection timeout. Negative values are
// ignored; zero disables the timeout.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout >= 0 {
			s.idleTimeout = timeout
		}
	}
}

// WithMaxHeaderBytes sets the maximum request header size.
// Non-positive values are ignored.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxHeaderBytes = n
		}
	}
}
