package iometrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gnames/roomdb/internal/iometrics"
	"github.com/gnames/roomdb/pkg/db"
	"github.com/gnames/roomdb/pkg/lifecycle"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOperator struct {
	db.Operator
	stat db.PoolStat
}

func (f fakeOperator) Stat() db.PoolStat {
	return f.stat
}

func newCollector() *iometrics.Collector {
	return iometrics.NewCollector(fakeOperator{stat: db.PoolStat{
		MaxConns:      10,
		TotalConns:    3,
		AcquiredConns: 1,
		IdleConns:     2,
		AcquireCount:  42,
		Created:       true,
	}})
}

func TestCollector_Pool(t *testing.T) {
	c := newCollector()

	expected := `
# HELP roomdb_pool_max_conns Maximum number of connections in the pool
# TYPE roomdb_pool_max_conns gauge
roomdb_pool_max_conns 10
# HELP roomdb_pool_idle_conns Number of open idle connections
# TYPE roomdb_pool_idle_conns gauge
roomdb_pool_idle_conns 2
# HELP roomdb_pool_acquire_total Cumulative number of successful connection acquires
# TYPE roomdb_pool_acquire_total counter
roomdb_pool_acquire_total 42
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"roomdb_pool_max_conns",
		"roomdb_pool_idle_conns",
		"roomdb_pool_acquire_total",
	)
	assert.NoError(t, err)
	assert.Equal(t, 5, testutil.CollectAndCount(c))
}

func TestCollector_Observe(t *testing.T) {
	c := newCollector()
	var obs lifecycle.Observer = c

	obs.Observe("count_rooms", 10*time.Millisecond, nil)
	obs.Observe("count_rooms", 20*time.Millisecond, nil)
	obs.Observe("insert_rooms", time.Second, assert.AnError)

	assert.Equal(t, 2, testutil.CollectAndCount(c,
		"roomdb_operation_duration_seconds"))
}

func TestSnapshot(t *testing.T) {
	c := newCollector()
	c.Observe("count_rooms", time.Millisecond, nil)
	c.Observe("count_rooms", time.Millisecond, assert.AnError)

	res, err := iometrics.Snapshot(iometrics.NewRegistry(c))
	require.NoError(t, err)
	assert.Equal(t, 10.0, res["roomdb_pool_max_conns"])
	assert.Equal(t, 3.0, res["roomdb_pool_total_conns"])
	assert.Equal(t, 1.0, res["roomdb_pool_acquired_conns"])
	assert.Equal(t, 42.0, res["roomdb_pool_acquire_total"])
	assert.Equal(t, 2.0, res["roomdb_operation_duration_seconds"])
}
