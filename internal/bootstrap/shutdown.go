package bootstrap

import (
	"context"
	"log/slog"

	"github.com/amigo-fit/amigo-server/internal/database"
	"github.com/amigo-fit/amigo-server/internal/server"
	"github.com/amigo-fit/amigo-server/internal/worker"
)

// ShutdownComponents holds the components that need graceful shutdown.
type ShutdownComponents struct {
	Server      *server.Server
	ResetWorker *worker.DailyResetWorker
	Pool        database.Pool
}

// GracefulShutdown stops accepting new requests, waits for in-flight
// work, then releases the database pool. Errors are logged but do not
// stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.ResetWorker != nil {
		if err := components.ResetWorker.Shutdown(ctx); err != nil {
			slog.Error("Daily reset worker shutdown failed", "error", err)
		}
	}

	if components.Pool != nil {
		components.Pool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
