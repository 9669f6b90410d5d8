package bootstrap

import (
	"context"
	"log/slog"
)

// GracefulShutdown stops the application components in order:
//  1. HTTP server (stop accepting new requests)
//  2. Sync scheduler and worker pool (drain queued snapshot jobs)
//  3. Simulation clock (freeze the farm state)
//  4. Final snapshot save (nothing mutates after the clock stops)
//  5. Database pool
//
// Errors during shutdown are logged but do not stop the sequence.
func (a *App) GracefulShutdown(ctx context.Context) {
	slog.Info(LogMsgShuttingDownServer)

	if err := a.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	a.Scheduler.Stop()
	a.Pool.Stop()
	a.Farm.Stop()

	saveCtx, cancel := context.WithTimeout(ctx, ShutdownSaveTimeout)
	defer cancel()
	if err := a.Farm.Save(saveCtx); err != nil {
		slog.Error(LogMsgFinalSaveFailed, "error", err)
	}

	if a.DBPool != nil {
		a.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
