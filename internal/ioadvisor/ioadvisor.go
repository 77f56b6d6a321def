// Package ioadvisor implements lifecycle.Advisor for PostgreSQL.
package ioadvisor

import (
	"context"
	"log/slog"

	"github.com/gnames/roomdb/internal/ioanalytics"
	"github.com/gnames/roomdb/pkg/advisor"
	"github.com/gnames/roomdb/pkg/analytics"
	"github.com/gnames/roomdb/pkg/db"
	"github.com/gnames/roomdb/pkg/lifecycle"
	"github.com/jackc/pgx/v5"
)

const tableStatsSQL = `
SELECT relname::text AS table_name,
  n_live_tup AS row_count,
  COALESCE(seq_scan, 0) AS seq_scans,
  COALESCE(idx_scan, 0) AS index_scans,
  ROUND(pg_table_size(relid) / 1048576.0, 2)::float8 AS data_size_mb,
  ROUND(pg_indexes_size(relid) / 1048576.0, 2)::float8 AS index_size_mb
FROM pg_stat_user_tables
WHERE relname IN ('rooms', 'students')
ORDER BY relname`

const indexStatsSQL = `
SELECT s.relname::text AS table_name,
  s.indexrelname::text AS index_name,
  pg_get_indexdef(s.indexrelid) AS definition,
  i.indisunique AS is_unique,
  COALESCE(s.idx_scan, 0) AS scans,
  COALESCE(s.idx_tup_read, 0) AS tuples_read,
  COALESCE(s.idx_tup_fetch, 0) AS tuples_fetched
FROM pg_stat_user_indexes s
JOIN pg_index i ON i.indexrelid = s.indexrelid
WHERE s.relname IN ('rooms', 'students')
ORDER BY s.relname, s.indexrelname`

type advisorPG struct {
	op db.Operator
}

// New creates an advisor that explains queries on the operator's pool.
func New(op db.Operator) lifecycle.Advisor {
	return &advisorPG{op: op}
}

// AnalyzePerformance runs EXPLAIN (FORMAT JSON) for the query. Failures
// are returned in Analysis.Error with empty plan and suggestions.
func (a *advisorPG) AnalyzePerformance(
	ctx context.Context,
	query string,
	args ...any,
) advisor.Analysis {
	res := advisor.Analysis{Query: query, Suggestions: []string{}}

	conn, err := a.op.Acquire(ctx)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer a.op.Release(conn)

	var data []byte
	err = conn.QueryRow(ctx, "EXPLAIN (FORMAT JSON) "+query, args...).Scan(&data)
	if err != nil {
		slog.Warn("Cannot explain query", "error", err)
		res.Error = err.Error()
		return res
	}

	plan, err := advisor.ParsePlan(data)
	if err != nil {
		slog.Warn("Cannot parse execution plan", "error", err)
		res.Error = err.Error()
		return res
	}

	res.ExecutionPlan = plan.Raw
	res.Suggestions = advisor.Suggest(plan)
	return res
}

func (a *advisorPG) TableStatistics(ctx context.Context) []advisor.TableStat {
	return collect[advisor.TableStat](ctx, a.op, "table statistics", tableStatsSQL)
}

func (a *advisorPG) IndexUsageStatistics(ctx context.Context) []advisor.IndexStat {
	return collect[advisor.IndexStat](ctx, a.op, "index statistics", indexStatsSQL)
}

// AnalyzeAnalytics explains analytical queries with the default limit.
func (a *advisorPG) AnalyzeAnalytics(ctx context.Context) *advisor.Report {
	qs := ioanalytics.Queries(analytics.DefaultTopN)
	res := advisor.Report{Queries: make([]advisor.Analysis, 0, len(qs))}
	for _, q := range qs {
		an := a.AnalyzePerformance(ctx, q.SQL, q.Args...)
		an.Name = q.Name
		res.Queries = append(res.Queries, an)
	}
	res.TableStatistics = a.TableStatistics(ctx)
	res.IndexStatistics = a.IndexUsageStatistics(ctx)
	return &res
}

func (a *advisorPG) Recommendations() []string {
	return advisor.Recommendations()
}

// collect runs a metadata query. Failures are logged and give an empty
// slice.
func collect[T any](
	ctx context.Context,
	op db.Operator,
	what, sql string,
) []T {
	res := []T{}
	conn, err := op.Acquire(ctx)
	if err != nil {
		slog.Warn("Cannot read "+what, "error", err)
		return res
	}
	defer op.Release(conn)

	rows, err := conn.Query(ctx, sql)
	if err != nil {
		slog.Warn("Cannot read "+what, "error", err)
		return res
	}

	stats, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		slog.Warn("Cannot read "+what, "error", err)
		return res
	}
	return stats
}
