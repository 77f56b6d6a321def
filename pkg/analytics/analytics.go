// Package analytics contains records returned by analytical queries
// about rooms and their students.
package analytics

import "math"

// DefaultTopN is used when a non-positive limit is requested.
const DefaultTopN = 5

// RoomStudentCount is the number of students in a room.
type RoomStudentCount struct {
	RoomID       int    `json:"room_id"       yaml:"room_id"       db:"room_id"`
	RoomName     string `json:"room_name"     yaml:"room_name"     db:"room_name"`
	StudentCount int    `json:"student_count" yaml:"student_count" db:"student_count"`
}

// RoomAverageAge is the mean age of students in a room.
type RoomAverageAge struct {
	RoomID       int     `json:"room_id"       yaml:"room_id"       db:"room_id"`
	RoomName     string  `json:"room_name"     yaml:"room_name"     db:"room_name"`
	AverageAge   float64 `json:"average_age"   yaml:"average_age"   db:"average_age"`
	StudentCount int     `json:"student_count" yaml:"student_count" db:"student_count"`
}

// RoomAgeDifference is the gap between the oldest and the youngest
// student in a room.
type RoomAgeDifference struct {
	RoomID        int    `json:"room_id"        yaml:"room_id"        db:"room_id"`
	RoomName      string `json:"room_name"      yaml:"room_name"      db:"room_name"`
	AgeDifference int    `json:"age_difference" yaml:"age_difference" db:"age_difference"`
	MinAge        int    `json:"min_age"        yaml:"min_age"        db:"min_age"`
	MaxAge        int    `json:"max_age"        yaml:"max_age"        db:"max_age"`
	StudentCount  int    `json:"student_count"  yaml:"student_count"  db:"student_count"`
}

// MixedGenderRoom is a room with at least one male and one female student.
type MixedGenderRoom struct {
	RoomID        int    `json:"room_id"        yaml:"room_id"        db:"room_id"`
	RoomName      string `json:"room_name"      yaml:"room_name"      db:"room_name"`
	MaleCount     int    `json:"male_count"     yaml:"male_count"     db:"male_count"`
	FemaleCount   int    `json:"female_count"   yaml:"female_count"   db:"female_count"`
	TotalStudents int    `json:"total_students" yaml:"total_students" db:"total_students"`
}

// Summary aggregates a Report.
type Summary struct {
	TotalRoomsAnalyzed   int `json:"total_rooms_analyzed"    yaml:"total_rooms_analyzed"`
	RoomsWithStudents    int `json:"rooms_with_students"     yaml:"rooms_with_students"`
	MixedGenderRoomCount int `json:"mixed_gender_rooms_count" yaml:"mixed_gender_rooms_count"`
}

// Report combines results of all analytical queries.
type Report struct {
	RoomStudentCounts []RoomStudentCount  `json:"room_student_counts"  yaml:"room_student_counts"`
	YoungestRooms     []RoomAverageAge    `json:"youngest_rooms"       yaml:"youngest_rooms"`
	AgeGapRooms       []RoomAgeDifference `json:"largest_age_gaps"     yaml:"largest_age_gaps"`
	MixedGenderRooms  []MixedGenderRoom   `json:"mixed_gender_rooms"   yaml:"mixed_gender_rooms"`
	Summary           Summary             `json:"summary"              yaml:"summary"`
}

// Summarize computes the Summary from counts and mixed-gender rooms.
func Summarize(counts []RoomStudentCount, mixed []MixedGenderRoom) Summary {
	res := Summary{
		TotalRoomsAnalyzed:   len(counts),
		MixedGenderRoomCount: len(mixed),
	}
	for _, v := range counts {
		if v.StudentCount > 0 {
			res.RoomsWithStudents++
		}
	}
	return res
}

// Limit returns n if it is positive, DefaultTopN otherwise.
func Limit(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	return n
}

// Round2 rounds f to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
