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

// age_years is left out, the store computes it from birthday.
var studentColumns = []column{
	{name: "id"},
	{name: "name"},
	{name: "birthday", cast: "::date"},
	{name: "sex", cast: "::student_sex"},
	{name: "room_id", cast: "::int"},
}

type studentRepo struct {
	op   db.Operator
	obs  lifecycle.Observer
	gorm *gormConn
	opts repoOptions
}

// NewStudentRepository creates a student repository on top of the
// operator. The observer may be nil.
func NewStudentRepository(
	op db.Operator,
	obs lifecycle.Observer,
	opts ...Option,
) lifecycle.StudentRepository {
	return &studentRepo{
		op:   op,
		obs:  obs,
		gorm: &gormConn{op: op},
		opts: newRepoOptions(opts),
	}
}

// InsertStudents upserts students by id. Students must refer to existing
// rooms or have no room.
func (s *studentRepo) InsertStudents(
	ctx context.Context,
	recs []loader.Record,
) (res int64, err error) {
	if len(recs) == 0 {
		return 0, nil
	}
	start := time.Now()
	defer func() { lifecycle.Observe(s.obs, "insert_students", start, err) }()

	students, err := loader.ParseStudents(recs)
	if err != nil {
		return 0, err
	}
	students = dedupByID(students, func(s schema.Student) int { return s.ID })

	rows := make([][]any, len(students))
	for i, v := range students {
		rows[i] = []any{
			v.ID,
			v.Name,
			v.Birthday.Format(schema.DateTimeFormat),
			v.Sex,
			v.RoomID,
		}
	}

	err = iodb.RunInTransaction(ctx, s.op, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		res, txErr = upsert(ctx, tx, "students", studentColumns, rows,
			s.op.Config().BatchSize, s.opts.progress)
		return txErr
	})
	if err != nil {
		slog.Error("Cannot insert students", "records", len(rows), "error", err)
		return 0, QueryExecutionError("insert_students", err)
	}

	slog.Debug("Inserted students", "records", len(rows), "affected", res)
	return res, nil
}

func (s *studentRepo) GetStudentByID(ctx context.Context, id int) map[string]any {
	var err error
	start := time.Now()
	defer func() { lifecycle.Observe(s.obs, "get_student_by_id", start, err) }()

	gormDB, err := s.gorm.get(ctx)
	if err != nil {
		slog.Warn("Cannot read student", "id", id, "error", err)
		return nil
	}

	var student schema.Student
	err = gormDB.Where("id = ?", id).Take(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
		return nil
	}
	if err != nil {
		slog.Warn("Cannot read student", "id", id, "error", err)
		return nil
	}
	return student.ToMap()
}

func (s *studentRepo) GetStudentsByRoom(
	ctx context.Context,
	roomID int,
) []map[string]any {
	var err error
	start := time.Now()
	defer func() { lifecycle.Observe(s.obs, "get_students_by_room", start, err) }()

	res := []map[string]any{}
	gormDB, err := s.gorm.get(ctx)
	if err != nil {
		slog.Warn("Cannot read students of room", "room_id", roomID, "error", err)
		return res
	}

	var students []schema.Student
	err = gormDB.Where("room_id = ?", roomID).Order("id").Find(&students).Error
	if err != nil {
		slog.Warn("Cannot read students of room", "room_id", roomID, "error", err)
		return res
	}

	for _, v := range students {
		res = append(res, v.ToMap())
	}
	return res
}

func (s *studentRepo) CountStudents(ctx context.Context) int64 {
	var err error
	start := time.Now()
	defer func() { lifecycle.Observe(s.obs, "count_students", start, err) }()

	gormDB, err := s.gorm.get(ctx)
	if err != nil {
		slog.Warn("Cannot count students", "error", err)
		return 0
	}

	var res int64
	if err = gormDB.Model(&schema.Student{}).Count(&res).Error; err != nil {
		slog.Warn("Cannot count students", "error", err)
		return 0
	}
	return res
}
