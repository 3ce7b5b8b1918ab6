package bootstrap

import "time"

// Database pool tuning applied at startup
const (
	// DefaultMaxConnections caps the pgx pool size.
	DefaultMaxConnections = 10

	// DefaultMaxConnIdleTime releases connections that sat unused.
	DefaultMaxConnIdleTime = 5 * time.Minute

	// DefaultMaxConnLifetime recycles long-lived connections so load
	// rebalances after database failovers.
	DefaultMaxConnLifetime = 30 * time.Minute
)

// Shutdown configuration
const (
	// ShutdownTimeout bounds how long in-flight requests may run after
	// a termination signal before the server is forced down.
	ShutdownTimeout = 10 * time.Second
)

// Log messages for startup and shutdown
const (
	LogMsgCatalogLoaded        = "Catalog loaded"
	LogMsgStorageBackend       = "Storage backend selected"
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgServerStopped        = "Server stopped"
)
