// Package iodb implements database operations using pgxpool.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"sync"

	"github.com/gnames/roomdb/pkg/config"
	"github.com/gnames/roomdb/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultPoolSize is used when configuration does not limit the pool.
const defaultPoolSize = 10

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	mu      sync.Mutex
	cfg     *config.DatabaseConfig
	poolCfg *pgxpool.Config
	pool    *pgxpool.Pool
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// ConnString builds a PostgreSQL URL for the given database name
// from connection settings.
func ConnString(cfg *config.DatabaseConfig, database string) string {
	q := url.Values{}
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	if cfg.SSLRootCert != "" {
		q.Set("sslrootcert", cfg.SSLRootCert)
	}
	if cfg.SSLCert != "" {
		q.Set("sslcert", cfg.SSLCert)
	}
	if cfg.SSLKey != "" {
		q.Set("sslkey", cfg.SSLKey)
	}
	if cfg.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(cfg.ConnectTimeout))
	}
	if cfg.Charset != "" {
		q.Set("client_encoding", cfg.Charset)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Connect validates connection settings and prepares the pool
// configuration. The pool itself is created by the first Acquire.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	if cfg == nil {
		return NotConnectedError()
	}

	poolCfg, err := pgxpool.ParseConfig(ConnString(cfg, cfg.Database))
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	maxConns := cfg.PoolSize
	if maxConns <= 0 {
		maxConns = defaultPoolSize
	}
	poolCfg.MaxConns = int32(maxConns)
	poolCfg.MinConns = 0 // connections are opened on demand
	poolCfg.MaxConnLifetime = 0
	poolCfg.MaxConnIdleTime = 0

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	p.cfg = cfg
	p.poolCfg = poolCfg
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// Config returns connection settings.
func (p *pgxOperator) Config() *config.DatabaseConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Pool returns the pool, creating it on the first call.
func (p *pgxOperator) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, _, err := p.state(ctx)
	return pool, err
}

func (p *pgxOperator) state(
	ctx context.Context,
) (*pgxpool.Pool, *config.DatabaseConfig, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.poolCfg == nil {
		return nil, nil, NotConnectedError()
	}
	if p.pool != nil {
		return p.pool, p.cfg, nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, p.poolCfg)
	if err != nil {
		return nil, nil, ConnectionError(p.cfg.Host, p.cfg.Port,
			p.cfg.Database, p.cfg.User, err)
	}
	slog.Info("Connection pool created",
		"host", p.cfg.Host,
		"database", p.cfg.Database,
		"max_conns", p.poolCfg.MaxConns,
	)
	p.pool = pool
	return pool, p.cfg, nil
}

// Acquire borrows a connection, waiting at most ConnectTimeout.
func (p *pgxOperator) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	pool, cfg, err := p.state(ctx)
	if err != nil {
		return nil, err
	}

	if timeout := cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		slog.Error("Cannot acquire database connection",
			"host", cfg.Host, "database", cfg.Database, "error", err)
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}
	return conn, nil
}

// Release returns the connection to the pool.
func (p *pgxOperator) Release(conn *pgxpool.Conn) {
	if conn != nil {
		conn.Release()
	}
}

// TestConnectivity runs 'SELECT 1' on a pooled connection.
func (p *pgxOperator) TestConnectivity(ctx context.Context) bool {
	conn, err := p.Acquire(ctx)
	if err != nil {
		slog.Warn("Connectivity test failed", "error", err)
		return false
	}
	defer p.Release(conn)

	var one int
	if err = conn.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		slog.Warn("Connectivity test failed", "error", err)
		return false
	}
	return one == 1
}

// Stat returns pool statistics. Before the pool exists only MaxConns
// is set.
func (p *pgxOperator) Stat() db.PoolStat {
	p.mu.Lock()
	defer p.mu.Unlock()

	var res db.PoolStat
	if p.poolCfg != nil {
		res.MaxConns = p.poolCfg.MaxConns
	}
	if p.pool == nil {
		return res
	}

	s := p.pool.Stat()
	res.Created = true
	res.MaxConns = s.MaxConns()
	res.TotalConns = s.TotalConns()
	res.AcquiredConns = s.AcquiredConns()
	res.IdleConns = s.IdleConns()
	res.AcquireCount = s.AcquireCount()
	return res
}

// TableExists checks if a table exists in the current
// database.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer p.Release(conn)

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err = conn.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any tables in the
// public schema.
func (p *pgxOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer p.Release(conn)

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
		)
	`

	var hasTables bool
	err = conn.QueryRow(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableExistsCheckError("*", err)
	}

	return hasTables, nil
}
