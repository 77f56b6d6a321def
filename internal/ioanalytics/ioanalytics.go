// Package ioanalytics implements lifecycle.AnalyticsRepository with
// aggregation queries over rooms and students in PostgreSQL.
package ioanalytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/roomdb/pkg/analytics"
	"github.com/gnames/roomdb/pkg/db"
	"github.com/gnames/roomdb/pkg/lifecycle"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

type repo struct {
	op  db.Operator
	obs lifecycle.Observer
}

// New creates an analytics repository. The observer may be nil.
func New(op db.Operator, obs lifecycle.Observer) lifecycle.AnalyticsRepository {
	return &repo{op: op, obs: obs}
}

func (a *repo) RoomStudentCounts(
	ctx context.Context,
) ([]analytics.RoomStudentCount, error) {
	return query[analytics.RoomStudentCount](
		ctx, a, RoomStudentCountsQuery, roomStudentCountsSQL,
	)
}

func (a *repo) TopRoomsByAverageAge(
	ctx context.Context,
	n int,
) ([]analytics.RoomAverageAge, error) {
	return query[analytics.RoomAverageAge](
		ctx, a, YoungestRoomsQuery, youngestRoomsSQL, analytics.Limit(n),
	)
}

func (a *repo) TopRoomsByAgeDifference(
	ctx context.Context,
	n int,
) ([]analytics.RoomAgeDifference, error) {
	return query[analytics.RoomAgeDifference](
		ctx, a, AgeDifferenceQuery, ageDifferenceSQL, analytics.Limit(n),
	)
}

func (a *repo) MixedGenderRooms(
	ctx context.Context,
) ([]analytics.MixedGenderRoom, error) {
	return query[analytics.MixedGenderRoom](
		ctx, a, MixedGenderRoomsQuery, mixedGenderRoomsSQL,
	)
}

// GenerateReport runs the queries concurrently, each one on its own
// pooled connection. The first failure cancels the rest.
func (a *repo) GenerateReport(
	ctx context.Context,
	n int,
) (*analytics.Report, error) {
	var res analytics.Report
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	g.Go(func() (err error) {
		res.RoomStudentCounts, err = a.RoomStudentCounts(ctx)
		return err
	})
	g.Go(func() (err error) {
		res.YoungestRooms, err = a.TopRoomsByAverageAge(ctx, n)
		return err
	})
	g.Go(func() (err error) {
		res.AgeGapRooms, err = a.TopRoomsByAgeDifference(ctx, n)
		return err
	})
	g.Go(func() (err error) {
		res.MixedGenderRooms, err = a.MixedGenderRooms(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Summary = analytics.Summarize(res.RoomStudentCounts, res.MixedGenderRooms)
	return &res, nil
}

// query borrows a connection, runs sql and maps rows to T by column names.
func query[T any](
	ctx context.Context,
	a *repo,
	name, sql string,
	args ...any,
) (res []T, err error) {
	start := time.Now()
	defer func() { lifecycle.Observe(a.obs, name, start, err) }()

	conn, err := a.op.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer a.op.Release(conn)

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		slog.Error("Analytical query failed", "query", name, "error", err)
		return nil, QueryExecutionError(name, err)
	}

	res, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		slog.Error("Cannot read analytical query rows", "query", name, "error", err)
		return nil, QueryExecutionError(name, err)
	}

	slog.Debug("Analytical query done",
		"query", name, "rows", len(res), "took", time.Since(start))
	return res, nil
}
