package lifecycle

import (
	"context"
	"time"

	"github.com/gnames/roomdb/pkg/analytics"
)

// AnalyticsRepository answers fixed analytical questions about rooms.
type AnalyticsRepository interface {
	// RoomStudentCounts returns every room with its number of students,
	// most populated first, ties broken by room id.
	RoomStudentCounts(ctx context.Context) ([]analytics.RoomStudentCount, error)

	// TopRoomsByAverageAge returns up to n rooms with the smallest average
	// student age.
	TopRoomsByAverageAge(ctx context.Context, n int) ([]analytics.RoomAverageAge, error)

	// TopRoomsByAgeDifference returns up to n rooms with the largest gap
	// between the oldest and the youngest student.
	TopRoomsByAgeDifference(ctx context.Context, n int) ([]analytics.RoomAgeDifference, error)

	// MixedGenderRooms returns rooms that have both male and female students.
	MixedGenderRooms(ctx context.Context) ([]analytics.MixedGenderRoom, error)

	// GenerateReport runs all queries and summarizes the results.
	GenerateReport(ctx context.Context, n int) (*analytics.Report, error)
}

// Observer receives the duration and outcome of data-access operations.
type Observer interface {
	Observe(operation string, took time.Duration, err error)
}

// Observe reports an operation that started at start to obs.
// A nil obs is ignored.
func Observe(obs Observer, operation string, start time.Time, err error) {
	if obs == nil {
		return
	}
	obs.Observe(operation, time.Since(start), err)
}
