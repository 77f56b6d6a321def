package ioanalytics

import "github.com/gnames/roomdb/pkg/analytics"

// Names of analytical queries. They label metrics and errors.
const (
	RoomStudentCountsQuery = "room_student_counts"
	YoungestRoomsQuery     = "top_rooms_by_average_age"
	AgeDifferenceQuery     = "top_rooms_by_age_difference"
	MixedGenderRoomsQuery  = "mixed_gender_rooms"
)

const roomStudentCountsSQL = `
SELECT r.id AS room_id, r.name AS room_name,
  COUNT(s.id)::int AS student_count
FROM rooms r
LEFT JOIN students s ON s.room_id = r.id
GROUP BY r.id, r.name
ORDER BY student_count DESC, r.id`

const youngestRoomsSQL = `
SELECT r.id AS room_id, r.name AS room_name,
  ROUND(AVG(s.age_years)::numeric, 2)::float8 AS average_age,
  COUNT(s.id)::int AS student_count
FROM rooms r
JOIN students s ON s.room_id = r.id
GROUP BY r.id, r.name
HAVING COUNT(s.id) > 0
ORDER BY AVG(s.age_years), student_count DESC, r.id
LIMIT $1`

const ageDifferenceSQL = `
SELECT r.id AS room_id, r.name AS room_name,
  (MAX(s.age_years) - MIN(s.age_years))::int AS age_difference,
  MIN(s.age_years)::int AS min_age,
  MAX(s.age_years)::int AS max_age,
  COUNT(s.id)::int AS student_count
FROM rooms r
JOIN students s ON s.room_id = r.id
GROUP BY r.id, r.name
HAVING COUNT(s.id) > 1
ORDER BY age_difference DESC, student_count DESC, r.id
LIMIT $1`

const mixedGenderRoomsSQL = `
SELECT r.id AS room_id, r.name AS room_name,
  COUNT(*) FILTER (WHERE s.sex = 'M')::int AS male_count,
  COUNT(*) FILTER (WHERE s.sex = 'F')::int AS female_count,
  COUNT(s.id)::int AS total_students
FROM rooms r
JOIN students s ON s.room_id = r.id
GROUP BY r.id, r.name
HAVING COUNT(*) FILTER (WHERE s.sex = 'M') > 0
  AND COUNT(*) FILTER (WHERE s.sex = 'F') > 0
ORDER BY total_students DESC, r.id`

// Query is an analytical query ready to be executed or explained.
type Query struct {
	Name string
	SQL  string
	Args []any
}

// Queries returns all analytical queries, top-N ones limited to n.
func Queries(n int) []Query {
	n = analytics.Limit(n)
	return []Query{
		{Name: RoomStudentCountsQuery, SQL: roomStudentCountsSQL},
		{Name: YoungestRoomsQuery, SQL: youngestRoomsSQL, Args: []any{n}},
		{Name: AgeDifferenceQuery, SQL: ageDifferenceSQL, Args: []any{n}},
		{Name: MixedGenderRoomsQuery, SQL: mixedGenderRoomsSQL},
	}
}
