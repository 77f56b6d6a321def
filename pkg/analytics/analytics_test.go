package analytics_test

import (
	"testing"

	"github.com/gnames/roomdb/pkg/analytics"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	counts := []analytics.RoomStudentCount{
		{RoomID: 1, StudentCount: 3},
		{RoomID: 2, StudentCount: 0},
		{RoomID: 3, StudentCount: 1},
	}
	mixed := []analytics.MixedGenderRoom{{RoomID: 1}}

	res := analytics.Summarize(counts, mixed)
	assert.Equal(t, 3, res.TotalRoomsAnalyzed)
	assert.Equal(t, 2, res.RoomsWithStudents)
	assert.Equal(t, 1, res.MixedGenderRoomCount)

	assert.Equal(t, analytics.Summary{}, analytics.Summarize(nil, nil))
}

func TestLimit(t *testing.T) {
	tests := []struct {
		msg string
		in  int
		res int
	}{
		{"positive", 3, 3},
		{"zero", 0, analytics.DefaultTopN},
		{"negative", -2, analytics.DefaultTopN},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, analytics.Limit(v.in), v.msg)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 21.67, analytics.Round2(21.666666))
	assert.Equal(t, 20.5, analytics.Round2(20.5))
	assert.Equal(t, 0.0, analytics.Round2(0))
}
