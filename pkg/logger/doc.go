// Package logger provides slog attribute helpers shared across the service.
//
// Helpers return an empty slog.Attr for nil or empty inputs, so call sites
// never need explicit nil checks:
//
//	log.Info("publish failed", logger.Room(roomID), logger.Error(err))
package logger
