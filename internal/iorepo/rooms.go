// Package iorepo implements entity repositories for rooms and students.
// Writes are multi-row upserts over pgx inside one transaction, reads go
// through GORM sharing the same connection pool.
package iorepo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/roomdb/internal/iodb"
	"github.com/gnames/roomdb/pkg/db"
	"github.com/gnames/roomdb/pkg/lifecycle"
	"github.com/gnames/roomdb/pkg/loader"
	"github.com/gnames/roomdb/pkg/schema"
	"github.com/jackc/pgx/v5"
	"gorm.io/gorm"
)

var roomColumns = []column{
	{name: "id"},
	{name: "name"},
}

type roomRepo struct {
	op   db.Operator
	obs  lifecycle.Observer
	gorm *gormConn
	opts repoOptions
}

// NewRoomRepository creates a room repository on top of the operator.
// The observer may be nil.
func NewRoomRepository(
	op db.Operator,
	obs lifecycle.Observer,
	opts ...Option,
) lifecycle.RoomRepository {
	return &roomRepo{
		op:   op,
		obs:  obs,
		gorm: &gormConn{op: op},
		opts: newRepoOptions(opts),
	}
}

// InsertRooms upserts rooms by id. Invalid records stop the call before
// anything is written.
func (r *roomRepo) InsertRooms(
	ctx context.Context,
	recs []loader.Record,
) (res int64, err error) {
	if len(recs) == 0 {
		return 0, nil
	}
	start := time.Now()
	defer func() { lifecycle.Observe(r.obs, "insert_rooms", start, err) }()

	rooms, err := loader.ParseRooms(recs)
	if err != nil {
		return 0, err
	}
	rooms = dedupByID(rooms, func(r schema.Room) int { return r.ID })

	rows := make([][]any, len(rooms))
	for i, v := range rooms {
		rows[i] = []any{v.ID, v.Name}
	}

	err = iodb.RunInTransaction(ctx, r.op, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		res, txErr = upsert(ctx, tx, "rooms", roomColumns, rows,
			r.op.Config().BatchSize, r.opts.progress)
		return txErr
	})
	if err != nil {
		slog.Error("Cannot insert rooms", "records", len(rows), "error", err)
		return 0, QueryExecutionError("insert_rooms", err)
	}

	slog.Debug("Inserted rooms", "records", len(rows), "affected", res)
	return res, nil
}

func (r *roomRepo) GetRoomByID(ctx context.Context, id int) map[string]any {
	var err error
	start := time.Now()
	defer func() { lifecycle.Observe(r.obs, "get_room_by_id", start, err) }()

	gormDB, err := r.gorm.get(ctx)
	if err != nil {
		slog.Warn("Cannot read room", "id", id, "error", err)
		return nil
	}

	var room schema.Room
	err = gormDB.Where("id = ?", id).Take(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
		return nil
	}
	if err != nil {
		slog.Warn("Cannot read room", "id", id, "error", err)
		return nil
	}
	return room.ToMap()
}

func (r *roomRepo) CountRooms(ctx context.Context) int64 {
	var err error
	start := time.Now()
	defer func() { lifecycle.Observe(r.obs, "count_rooms", start, err) }()

	gormDB, err := r.gorm.get(ctx)
	if err != nil {
		slog.Warn("Cannot count rooms", "error", err)
		return 0
	}

	var res int64
	if err = gormDB.Model(&schema.Room{}).Count(&res).Error; err != nil {
		slog.Warn("Cannot count rooms", "error", err)
		return 0
	}
	return res
}
