package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "digital_organisms"

// Metrics 进程内全部 Prometheus 指标
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 定时任务
	JobRunsTotal   *prometheus.CounterVec
	JobDuration    *prometheus.HistogramVec
	JobLastSuccess *prometheus.GaugeVec

	// 业务
	SnapshotsRecorded    prometheus.Counter
	UsageEventsConsumed  *prometheus.CounterVec
	UsageLogsArchived    prometheus.Counter
	IntegrationProbes    *prometheus.CounterVec
	HistoricalCacheTotal *prometheus.CounterVec
}

// NewMetrics 创建并注册全部指标
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		JobRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "job_runs_total",
				Help:      "Total number of scheduled job runs",
			},
			[]string{"job", "status"},
		),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "job_duration_seconds",
				Help:      "Scheduled job duration in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"job"},
		),
		JobLastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "job_last_success_timestamp_seconds",
				Help:      "Unix time of the last successful job run",
			},
			[]string{"job"},
		),
		SnapshotsRecorded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshots_recorded_total",
				Help:      "Total number of daily snapshots written",
			},
		),
		UsageEventsConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "usage_events_consumed_total",
				Help:      "Total number of integration usage events consumed",
			},
			[]string{"result"},
		),
		UsageLogsArchived: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "usage_logs_archived_total",
				Help:      "Total number of usage logs archived and removed",
			},
		),
		IntegrationProbes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "integration_probes_total",
				Help:      "Total number of integration health probes",
			},
			[]string{"health_status"},
		),
		HistoricalCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "historical_cache_total",
				Help:      "Historical series cache lookups",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.JobRunsTotal,
		m.JobDuration,
		m.JobLastSuccess,
		m.SnapshotsRecorded,
		m.UsageEventsConsumed,
		m.UsageLogsArchived,
		m.IntegrationProbes,
		m.HistoricalCacheTotal,
	)
	return m
}

var (
	// Registry 进程级注册表，/metrics 只暴露它
	Registry = prometheus.NewRegistry()
	// M 全局指标实例
	M = NewMetrics(Registry)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler Prometheus 拉取入口
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
