package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// ConnectTimeout bounds initial pool construction and the startup ping
	ConnectTimeout = 10 * time.Second
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToOpenForMigrate  = "failed to open migration connection"
	ErrMsgFailedToRunMigrations   = "failed to run migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
