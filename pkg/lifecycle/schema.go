// Package lifecycle defines contracts of components that manage the
// roomdb database: its schema, entity repositories, analytics and imports.
package lifecycle

import (
	"context"

	"github.com/gnames/roomdb/pkg/schema"
)

// SchemaManager defines the interface for database schema management.
// All operations are idempotent - safe to run multiple times.
// Connection settings are provided during construction via NewManager.
type SchemaManager interface {
	// CreateDatabase creates the configured database if it is absent.
	// It connects to the maintenance database for that.
	CreateDatabase(ctx context.Context) error

	// CreateTables creates the sex enum, rooms and students tables,
	// their baseline indexes and the trigger that maintains student age.
	CreateTables(ctx context.Context) error

	// DropTables removes students, then rooms, then helper objects.
	DropTables(ctx context.Context) error

	// CreateIndexes builds composite indexes for analytical queries.
	// Failing indexes are logged and skipped; the call fails only if the
	// database is unreachable.
	CreateIndexes(ctx context.Context) (*schema.IndexReport, error)

	// TableExists reports if the table exists; false on any error.
	TableExists(ctx context.Context, tableName string) bool

	// TableInfo returns storage statistics of tables, empty on error.
	TableInfo(ctx context.Context) []schema.TableInfo
}
