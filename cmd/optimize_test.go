package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/gnames/roomdb/pkg/advisor"
	"github.com/gnames/roomdb/pkg/analytics"
	"github.com/gnames/roomdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// TestGetOptimizeCmd_Flags verifies optimize flags.
func TestGetOptimizeCmd_Flags(t *testing.T) {
	cmd := getOptimizeCmd()
	assert.Equal(t, "optimize", cmd.Use)
	assert.Contains(t, cmd.Long, "EXPLAIN")

	for _, v := range []string{"analyze", "recommendations", "json"} {
		assert.NotNil(t, cmd.Flags().Lookup(v), v)
	}
}

// TestOptimize_Recommendations runs without a database.
func TestOptimize_Recommendations(t *testing.T) {
	cmd := getOptimizeCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--recommendations"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Recommendations")
	assert.Contains(t, out.String(), "1. "+advisor.Recommendations()[0])
}

func TestOptimize_RecommendationsJSON(t *testing.T) {
	cmd := getOptimizeCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"-r", "--json"})

	require.NoError(t, cmd.Execute())

	var res map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Len(t, res["recommendations"], 8)
	assert.NotContains(t, res, "analysis")
}

func TestPrintAnalysis(t *testing.T) {
	out := new(bytes.Buffer)
	printAnalysis(out, &advisor.Report{
		Queries: []advisor.Analysis{
			{Name: "room_student_counts",
				Suggestions: []string{advisor.FullScanSuggestion}},
			{Name: "mixed_gender_rooms", Error: "boom"},
		},
		TableStatistics: []advisor.TableStat{
			{TableName: "rooms", RowCount: 1500, SeqScans: 3},
		},
		IndexStatistics: []advisor.IndexStat{
			{TableName: "rooms", IndexName: "rooms_pkey", Unique: true, Scans: 7},
		},
	})

	res := out.String()
	assert.Contains(t, res, "room_student_counts:\n  - "+advisor.FullScanSuggestion)
	assert.Contains(t, res, "error: boom")
	assert.Contains(t, res, "1,500")
	assert.Contains(t, res, "rooms_pkey")
}

// TestGetAnalyticsCmd_Flags verifies analytics flags.
func TestGetAnalyticsCmd_Flags(t *testing.T) {
	cmd := getAnalyticsCmd()
	assert.Equal(t, "analytics", cmd.Use)
	for _, v := range []string{
		"report", "room-counts", "youngest-rooms", "age-gaps",
		"mixed-gender", "json",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(v), v)
	}
}

func TestPrintReport(t *testing.T) {
	t.Run("full report", func(t *testing.T) {
		out := new(bytes.Buffer)
		counts := []analytics.RoomStudentCount{
			{RoomID: 1, RoomName: "Room #1", StudentCount: 2},
			{RoomID: 2, RoomName: "Room #2", StudentCount: 0},
		}
		mixed := []analytics.MixedGenderRoom{
			{RoomID: 1, RoomName: "Room #1", MaleCount: 1, FemaleCount: 1,
				TotalStudents: 2},
		}
		printReport(out, &analytics.Report{
			RoomStudentCounts: counts,
			YoungestRooms: []analytics.RoomAverageAge{
				{RoomID: 1, RoomName: "Room #1", AverageAge: 10.5, StudentCount: 2},
			},
			AgeGapRooms:      []analytics.RoomAgeDifference{},
			MixedGenderRooms: mixed,
			Summary:          analytics.Summarize(counts, mixed),
		})

		res := out.String()
		assert.Contains(t, res, "Students per room")
		assert.Contains(t, res, "10.50")
		assert.Contains(t, res, "Rooms with the largest age difference")
		assert.Contains(t, res, "Mixed gender rooms")
		assert.Contains(t, res, "rooms with students: 1")
	})

	t.Run("only requested sections", func(t *testing.T) {
		out := new(bytes.Buffer)
		printReport(out, &analytics.Report{
			MixedGenderRooms: []analytics.MixedGenderRoom{},
		})
		res := out.String()
		assert.Contains(t, res, "Mixed gender rooms")
		assert.NotContains(t, res, "Students per room")
		assert.NotContains(t, res, "Summary")
	})
}

func TestPrintTablesAndPool(t *testing.T) {
	out := new(bytes.Buffer)
	printTables(out, []schema.TableInfo{
		{TableName: "students", SizeMB: 1.5, DataSizeMB: 1, IndexSizeMB: 0.5,
			RowCount: 10000},
	})
	printPool(out, map[string]float64{"roomdb_pool_max_conns": 10})

	res := out.String()
	assert.Contains(t, res, "students")
	assert.Contains(t, res, "10,000")
	assert.Contains(t, res, "1.50")
	assert.Contains(t, res, "max connections")
}
