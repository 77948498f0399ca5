// Package async provides small primitives for fire-and-forget background work.
//
// Future represents the completion of a background function that returns an
// error. Tracker groups futures into a tracked set so a shutdown path can wait
// for all outstanding work to finish before the process tears down.
//
// Typical usage:
//
//	tracker := async.NewTracker()
//
//	// Fire-and-forget, but tracked:
//	tracker.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
//		return store.Save(ctx, key, payload)
//	})
//
//	// On shutdown:
//	if err := tracker.Wait(shutdownCtx); err != nil {
//		log.Warn("pending background work abandoned", "error", err)
//	}
package async
