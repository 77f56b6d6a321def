package lifecycle

import (
	"context"

	"github.com/gnames/roomdb/pkg/loader"
)

// RoomRepository writes and reads rooms.
type RoomRepository interface {
	// InsertRooms upserts records by id in one transaction and returns
	// the affected-rows count reported by the store. PostgreSQL counts
	// every inserted or updated row once, so the value is not a count of
	// new records.
	InsertRooms(ctx context.Context, recs []loader.Record) (int64, error)

	// GetRoomByID returns a normalized room or nil.
	GetRoomByID(ctx context.Context, id int) map[string]any

	// CountRooms returns the number of rooms, 0 on error.
	CountRooms(ctx context.Context) int64
}

// StudentRepository writes and reads students.
type StudentRepository interface {
	// InsertStudents upserts records by id in one transaction and returns
	// the affected-rows count reported by the store.
	InsertStudents(ctx context.Context, recs []loader.Record) (int64, error)

	// GetStudentByID returns a normalized student or nil.
	GetStudentByID(ctx context.Context, id int) map[string]any

	// GetStudentsByRoom returns normalized students of a room ordered
	// by id, empty on error.
	GetStudentsByRoom(ctx context.Context, roomID int) []map[string]any

	// CountStudents returns the number of students, 0 on error.
	CountStudents(ctx context.Context) int64
}
