package ioadvisor_test

import (
	"context"
	"testing"

	"github.com/gnames/roomdb/internal/ioadvisor"
	"github.com/gnames/roomdb/internal/ioanalytics"
	"github.com/gnames/roomdb/internal/iodb"
	"github.com/gnames/roomdb/internal/iorepo"
	"github.com/gnames/roomdb/internal/ioschema"
	"github.com/gnames/roomdb/internal/iotesting"
	"github.com/gnames/roomdb/pkg/advisor"
	"github.com/gnames/roomdb/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvisor_NotConnected(t *testing.T) {
	ctx := context.Background()
	adv := ioadvisor.New(iodb.NewPgxOperator())

	res := adv.AnalyzePerformance(ctx, "SELECT 1")
	assert.Equal(t, "SELECT 1", res.Query)
	assert.NotEmpty(t, res.Error)
	assert.Nil(t, res.ExecutionPlan)
	assert.Empty(t, res.Suggestions)

	assert.Empty(t, adv.TableStatistics(ctx))
	assert.Empty(t, adv.IndexUsageStatistics(ctx))

	rep := adv.AnalyzeAnalytics(ctx)
	assert.Len(t, rep.Queries, 4)
	for _, v := range rep.Queries {
		assert.NotEmpty(t, v.Name)
		assert.NotEmpty(t, v.Error)
	}

	assert.Equal(t, advisor.Recommendations(), adv.Recommendations())
}

func TestAdvisor(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	op := iotesting.ConnectedOperator(t)
	iotesting.FreshSchema(t, op)

	_, err := iorepo.NewRoomRepository(op, nil).InsertRooms(ctx, []loader.Record{
		{"id": 1, "name": "A"},
	})
	require.NoError(t, err)
	_, err = ioschema.NewManager(op).CreateIndexes(ctx)
	require.NoError(t, err)

	adv := ioadvisor.New(op)

	t.Run("full scan is detected", func(t *testing.T) {
		res := adv.AnalyzePerformance(ctx,
			"SELECT * FROM rooms WHERE name LIKE $1", "%A%")
		assert.Empty(t, res.Error)
		assert.NotNil(t, res.ExecutionPlan)
		assert.Equal(t, []string{advisor.FullScanSuggestion}, res.Suggestions)
	})

	t.Run("bad query", func(t *testing.T) {
		res := adv.AnalyzePerformance(ctx, "SELECT * FROM no_such_table")
		assert.NotEmpty(t, res.Error)
		assert.Nil(t, res.ExecutionPlan)
		assert.Empty(t, res.Suggestions)
	})

	t.Run("analytics workload", func(t *testing.T) {
		rep := adv.AnalyzeAnalytics(ctx)
		require.Len(t, rep.Queries, 4)
		assert.Equal(t, ioanalytics.RoomStudentCountsQuery, rep.Queries[0].Name)
		for _, v := range rep.Queries {
			assert.Empty(t, v.Error, v.Name)
			assert.NotEmpty(t, v.Suggestions, v.Name)
		}

		tables := make([]string, len(rep.TableStatistics))
		for i, v := range rep.TableStatistics {
			tables[i] = v.TableName
		}
		assert.Equal(t, []string{"rooms", "students"}, tables)
		assert.NotEmpty(t, rep.IndexStatistics)
	})
}
