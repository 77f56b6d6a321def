// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that runs DDL generated by pkg/schema.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/roomdb/internal/iodb"
	"github.com/gnames/roomdb/pkg/db"
	"github.com/gnames/roomdb/pkg/lifecycle"
	"github.com/gnames/roomdb/pkg/schema"
	"github.com/jackc/pgx/v5"
)

// maintenanceDB is the database used to create other databases.
const maintenanceDB = "postgres"

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// CreateDatabase creates the configured database unless it exists.
func (m *manager) CreateDatabase(ctx context.Context) error {
	cfg := m.operator.Config()
	if cfg == nil {
		return NotConnectedError()
	}

	conn, err := pgx.Connect(ctx, iodb.ConnString(cfg, maintenanceDB))
	if err != nil {
		return DatabaseError(cfg.Database, err)
	}
	defer conn.Close(context.WithoutCancel(ctx))

	var exists bool
	q := "SELECT EXISTS (SELECT FROM pg_database WHERE datname = $1)"
	if err = conn.QueryRow(ctx, q, cfg.Database).Scan(&exists); err != nil {
		return DatabaseError(cfg.Database, err)
	}
	if exists {
		slog.Info("Database exists", "database", cfg.Database)
		return nil
	}

	create := "CREATE DATABASE " + pgx.Identifier{cfg.Database}.Sanitize()
	if _, err = conn.Exec(ctx, create); err != nil {
		// another process created it after our check
		if pgCode(err) == duplicateDatabase {
			return nil
		}
		return DatabaseError(cfg.Database, err)
	}

	slog.Info("Database created", "database", cfg.Database)
	return nil
}

// CreateTables creates all tables, baseline indexes and the age
// trigger in one transaction.
func (m *manager) CreateTables(ctx context.Context) error {
	stmts := schema.CreateDDL()
	err := iodb.RunInTransaction(ctx, m.operator,
		func(ctx context.Context, tx pgx.Tx) error {
			for _, stmt := range stmts {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		})
	if err != nil {
		return CreateSchemaError(err)
	}

	slog.Info("Tables created", "statements", len(stmts))
	return nil
}

// DropTables drops students before rooms, then helper objects.
func (m *manager) DropTables(ctx context.Context) error {
	err := iodb.RunInTransaction(ctx, m.operator,
		func(ctx context.Context, tx pgx.Tx) error {
			for _, stmt := range schema.DropDDL() {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		})
	if err != nil {
		return DropSchemaError(err)
	}

	slog.Info("Tables dropped")
	return nil
}

// CreateIndexes builds analytical indexes one by one. An index that
// cannot be built is logged and skipped.
func (m *manager) CreateIndexes(
	ctx context.Context,
) (*schema.IndexReport, error) {
	conn, err := m.operator.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer m.operator.Release(conn)

	res := &schema.IndexReport{}
	for _, idx := range schema.AnalyticsIndexes() {
		_, err = conn.Exec(ctx, idx.DDL(false))
		switch {
		case err == nil:
			res.Created = append(res.Created, idx.Name)
			slog.Info("Index created", "index", idx.Name)
		case isAlreadyExists(err):
			res.Skipped = append(res.Skipped, idx.Name)
			slog.Warn("Index exists, skipping", "index", idx.Name)
		default:
			res.Failed = append(res.Failed, idx.Name)
			slog.Warn("Index creation failed, skipping",
				"index", idx.Name, "error", IndexError(idx.Name, err))
		}
	}
	return res, nil
}

// TableExists reports if the table exists, false on error.
func (m *manager) TableExists(ctx context.Context, tableName string) bool {
	exists, err := m.operator.TableExists(ctx, tableName)
	if err != nil {
		slog.Warn("Cannot check table", "table", tableName, "error", err)
		return false
	}
	return exists
}

// TableInfo returns storage statistics of public tables.
func (m *manager) TableInfo(ctx context.Context) []schema.TableInfo {
	conn, err := m.operator.Acquire(ctx)
	if err != nil {
		slog.Warn("Cannot get table info", "error", err)
		return []schema.TableInfo{}
	}
	defer m.operator.Release(conn)

	q := `
SELECT c.relname AS table_name,
	ROUND(pg_total_relation_size(c.oid) / 1048576.0, 2)::float8 AS size_mb,
	ROUND(pg_relation_size(c.oid) / 1048576.0, 2)::float8 AS data_size_mb,
	ROUND(pg_indexes_size(c.oid) / 1048576.0, 2)::float8 AS index_size_mb,
	COALESCE(s.n_live_tup, 0)::bigint AS row_count
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
LEFT JOIN pg_stat_user_tables s ON s.relid = c.oid
WHERE n.nspname = 'public' AND c.relkind = 'r'
ORDER BY size_mb DESC, table_name`

	rows, err := conn.Query(ctx, q)
	if err != nil {
		slog.Warn("Cannot get table info", "error", err)
		return []schema.TableInfo{}
	}
	res, err := pgx.CollectRows(rows, pgx.RowToStructByName[schema.TableInfo])
	if err != nil {
		slog.Warn("Cannot read table info", "error", err)
		return []schema.TableInfo{}
	}
	return res
}
