package ioanalytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueries(t *testing.T) {
	qs := Queries(0)
	assert.Len(t, qs, 4)

	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = q.Name
		assert.NotEmpty(t, q.SQL)
	}
	assert.Equal(t, []string{
		RoomStudentCountsQuery,
		YoungestRoomsQuery,
		AgeDifferenceQuery,
		MixedGenderRoomsQuery,
	}, names)

	assert.Empty(t, qs[0].Args)
	assert.Equal(t, []any{5}, qs[1].Args)
	assert.Equal(t, []any{5}, qs[2].Args)

	qs = Queries(3)
	assert.Equal(t, []any{3}, qs[2].Args)
}

func TestQueriesText(t *testing.T) {
	assert.Contains(t, roomStudentCountsSQL, "LEFT JOIN students")
	assert.Contains(t, roomStudentCountsSQL, "ORDER BY student_count DESC, r.id")
	assert.Contains(t, youngestRoomsSQL, "HAVING COUNT(s.id) > 0")
	// ordering uses the exact mean, not the rounded one
	assert.Contains(t, youngestRoomsSQL,
		"ORDER BY AVG(s.age_years), student_count DESC, r.id")
	assert.Contains(t, ageDifferenceSQL, "HAVING COUNT(s.id) > 1")
	assert.Contains(t, ageDifferenceSQL, "ORDER BY age_difference DESC, student_count DESC")
	assert.Contains(t, mixedGenderRoomsSQL, "ORDER BY total_students DESC, r.id")
}
