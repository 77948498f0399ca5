// Package server wraps http.Server with graceful shutdown, environment-based
// configuration, and functional options.
//
// Usage:
//
//	srv := server.New(":8080", server.WithLogger(log))
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := srv.Start(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
//		log.Error("server failed", "error", err)
//	}
//	_ = srv.Stop()
package server
