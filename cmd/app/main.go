package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigo-fit/amigo-server/internal/bootstrap"
	"github.com/amigo-fit/amigo-server/internal/config"
	"github.com/amigo-fit/amigo-server/internal/database"
	"github.com/amigo-fit/amigo-server/internal/server"
	"github.com/amigo-fit/amigo-server/internal/worker"
)

// ServiceName identifies this binary in structured logs
const ServiceName = "amigo-server"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	var (
		dbPool *pgxpool.Pool
		pool   database.Pool
		repos  *bootstrap.Repositories
	)

	slog.Info(bootstrap.LogMsgStorageBackend, "backend", cfg.StorageBackend)
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		connString := cfg.GetDBConnString()
		if err := database.RunMigrations(connString); err != nil {
			slog.Error("Migrations failed", "error", err)
			os.Exit(1)
		}

		dbPool, err = database.NewPool(connString,
			bootstrap.DefaultMaxConnections,
			bootstrap.DefaultMaxConnIdleTime,
			bootstrap.DefaultMaxConnLifetime)
		if err != nil {
			slog.Error("Database connection failed", "error", err)
			os.Exit(1)
		}
		pool = dbPool
		repos = bootstrap.NewPostgresRepositories(dbPool)
	case config.BackendMemory:
		repos = bootstrap.NewMemoryRepositories()
	}

	engine, stores, services, err := bootstrap.InitializeServices(cfg, repos)
	if err != nil {
		slog.Error("Service initialization failed", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool, engine, stores, services)

	resetWorker := worker.NewDailyResetWorker(repos.StepsReset)
	resetWorker.Start()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:      srv,
		ResetWorker: resetWorker,
		Pool:        pool,
	})
}
