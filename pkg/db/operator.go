package db

import (
	"context"

	"github.com/gnames/roomdb/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for the connection pool of the
// application. The pool is created lazily by the first Acquire, after
// Connect recorded the configuration. High-level components (schema
// manager, repositories, analytics, advisor) borrow connections from it.
type Operator interface {
	// Connect validates and stores connection settings.
	// No network connection is opened.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the pool and all its connections.
	Close() error

	// Config returns the settings given to Connect, or nil.
	Config() *config.DatabaseConfig

	// Pool returns the underlying pgxpool.Pool, creating it when needed.
	Pool(context.Context) (*pgxpool.Pool, error)

	// Acquire borrows a connection from the pool. It waits at most the
	// configured connect timeout.
	Acquire(context.Context) (*pgxpool.Conn, error)

	// Release returns a borrowed connection to the pool. Nil is ignored.
	Release(*pgxpool.Conn)

	// TestConnectivity makes a trivial round-trip and reports success.
	TestConnectivity(context.Context) bool

	// Stat returns current pool statistics.
	Stat() PoolStat

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	HasTables(ctx context.Context) (bool, error)
}

// PoolStat is a snapshot of pool state.
type PoolStat struct {
	// MaxConns is the capacity of the pool.
	MaxConns int32
	// TotalConns is the number of open connections.
	TotalConns int32
	// AcquiredConns is the number of connections in use.
	AcquiredConns int32
	// IdleConns is the number of open connections that are not in use.
	IdleConns int32
	// AcquireCount is the cumulative number of successful acquires.
	AcquireCount int64
	// Created is false until the first connection was requested.
	Created bool
}
