package iorepo

import (
	"context"
	"database/sql"
	"sync"

	"github.com/gnames/roomdb/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormConn opens GORM on top of the operator's pool on first use.
// Every GORM query borrows a pooled connection and returns it when done.
// The session is rebuilt when the operator replaces its pool, for example
// after a new Connect.
type gormConn struct {
	op    db.Operator
	mu    sync.Mutex
	pool  *pgxpool.Pool
	sqlDB *sql.DB
	db    *gorm.DB
}

func (g *gormConn) get(ctx context.Context) (*gorm.DB, error) {
	pool, err := g.op.Pool(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil && g.pool == pool {
		return g.db.WithContext(ctx), nil
	}

	// closing sql.DB keeps the pgx pool open
	if g.sqlDB != nil {
		_ = g.sqlDB.Close()
		g.pool, g.sqlDB, g.db = nil, nil, nil
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	g.pool, g.sqlDB, g.db = pool, sqlDB, gormDB
	return gormDB.WithContext(ctx), nil
}
