// Package iometrics exposes connection pool state and durations of
// data-access operations as Prometheus metrics.
package iometrics

import (
	"time"

	"github.com/gnames/roomdb/pkg/db"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "roomdb"

// Collector reads pool statistics on every scrape and accumulates
// operation durations reported through Observe.
type Collector struct {
	op db.Operator

	maxConnsDesc      *prometheus.Desc
	totalConnsDesc    *prometheus.Desc
	acquiredConnsDesc *prometheus.Desc
	idleConnsDesc     *prometheus.Desc
	acquireCountDesc  *prometheus.Desc

	durations *prometheus.HistogramVec
}

// NewCollector creates a collector for the operator's pool.
func NewCollector(op db.Operator) *Collector {
	return &Collector{
		op: op,
		maxConnsDesc: prometheus.NewDesc(
			namespace+"_pool_max_conns",
			"Maximum number of connections in the pool",
			nil, nil,
		),
		totalConnsDesc: prometheus.NewDesc(
			namespace+"_pool_total_conns",
			"Number of open connections in the pool",
			nil, nil,
		),
		acquiredConnsDesc: prometheus.NewDesc(
			namespace+"_pool_acquired_conns",
			"Number of connections currently in use",
			nil, nil,
		),
		idleConnsDesc: prometheus.NewDesc(
			namespace+"_pool_idle_conns",
			"Number of open idle connections",
			nil, nil,
		),
		acquireCountDesc: prometheus.NewDesc(
			namespace+"_pool_acquire_total",
			"Cumulative number of successful connection acquires",
			nil, nil,
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of repository and analytics operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "outcome"},
		),
	}
}

// Observe records the duration of an operation. It makes Collector a
// lifecycle.Observer.
func (c *Collector) Observe(operation string, took time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.durations.WithLabelValues(operation, outcome).Observe(took.Seconds())
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.maxConnsDesc
	ch <- c.totalConnsDesc
	ch <- c.acquiredConnsDesc
	ch <- c.idleConnsDesc
	ch <- c.acquireCountDesc
	c.durations.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.op.Stat()
	ch <- prometheus.MustNewConstMetric(
		c.maxConnsDesc, prometheus.GaugeValue, float64(st.MaxConns),
	)
	ch <- prometheus.MustNewConstMetric(
		c.totalConnsDesc, prometheus.GaugeValue, float64(st.TotalConns),
	)
	ch <- prometheus.MustNewConstMetric(
		c.acquiredConnsDesc, prometheus.GaugeValue, float64(st.AcquiredConns),
	)
	ch <- prometheus.MustNewConstMetric(
		c.idleConnsDesc, prometheus.GaugeValue, float64(st.IdleConns),
	)
	ch <- prometheus.MustNewConstMetric(
		c.acquireCountDesc, prometheus.CounterValue, float64(st.AcquireCount),
	)
	c.durations.Collect(ch)
}

// NewRegistry returns a registry with the collector registered.
func NewRegistry(c *Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(c)
	return reg
}

// Snapshot gathers the registry and returns values of gauges and
// counters by metric name. Histograms give their sample count summed
// over labels.
func Snapshot(g prometheus.Gatherer) (map[string]float64, error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, err
	}

	res := make(map[string]float64, len(mfs))
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			res[mf.GetName()] += value(mf.GetType(), m)
		}
	}
	return res, nil
}

func value(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount())
	}
	return 0
}
