package iodb

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gnames/roomdb/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxFunc is a unit of work executed inside a transaction.
type TxFunc func(ctx context.Context, tx pgx.Tx) error

// RunInTransaction borrows a connection, runs work inside a transaction
// and commits it. An error or a panic in work rolls the transaction back.
// Errors are returned as TransactionError, panics are re-raised after
// rollback. The connection is returned to the pool on every path.
func RunInTransaction(ctx context.Context, op db.Operator, work TxFunc) error {
	conn, err := op.Acquire(ctx)
	if err != nil {
		return err
	}
	defer op.Release(conn)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return TransactionError("begin", err)
	}

	defer func() {
		if r := recover(); r != nil {
			rollback(ctx, tx)
			panic(r)
		}
	}()

	if err = work(ctx, tx); err != nil {
		rollback(ctx, tx)
		slog.Warn("Transaction rolled back", "error", err)
		return TransactionError("work", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return TransactionError("commit", err)
	}
	return nil
}

// rollback ignores cancellation of ctx so that a cancelled unit of work
// still gets rolled back.
func rollback(ctx context.Context, tx pgx.Tx) {
	err := tx.Rollback(context.WithoutCancel(ctx))
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Error("Failed to rollback transaction", "error", err)
	}
}

// Scope is a manually driven transaction bound to one pooled
// connection. Close must be called, usually with defer.
type Scope struct {
	op   db.Operator
	conn *pgxpool.Conn
	tx   pgx.Tx
}

// Begin borrows a connection and opens a transaction on it.
func Begin(ctx context.Context, op db.Operator) (*Scope, error) {
	conn, err := op.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := conn.Begin(ctx)
	if err != nil {
		op.Release(conn)
		return nil, TransactionError("begin", err)
	}
	return &Scope{op: op, conn: conn, tx: tx}, nil
}

// Tx returns the open transaction.
func (s *Scope) Tx() pgx.Tx {
	return s.tx
}

// Nested opens a savepoint inside the scope's transaction.
func (s *Scope) Nested(ctx context.Context) (pgx.Tx, error) {
	if s.tx == nil {
		return nil, TransactionError("begin", pgx.ErrTxClosed)
	}
	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, TransactionError("begin", err)
	}
	return tx, nil
}

// Commit commits the transaction and returns the connection to the pool.
func (s *Scope) Commit(ctx context.Context) error {
	if s.tx == nil {
		return TransactionError("commit", pgx.ErrTxClosed)
	}
	defer s.release()

	if err := s.tx.Commit(ctx); err != nil {
		return TransactionError("commit", err)
	}
	return nil
}

// Rollback discards the transaction and returns the connection to the pool.
func (s *Scope) Rollback(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	defer s.release()

	err := s.tx.Rollback(context.WithoutCancel(ctx))
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return TransactionError("rollback", err)
	}
	return nil
}

// Close rolls back a transaction that is still open and returns the
// connection to the pool. It is safe to call more than once.
func (s *Scope) Close(ctx context.Context) {
	if s.tx != nil {
		if err := s.Rollback(ctx); err != nil {
			slog.Error("Failed to close transaction scope", "error", err)
		}
	}
	s.release()
}

func (s *Scope) release() {
	s.tx = nil
	if s.conn != nil {
		s.op.Release(s.conn)
		s.conn = nil
	}
}
