package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	// SlotsTotal 已执行的时隙数
	SlotsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "uav",
		Name:      "slots_total",
		Help:      "Number of simulation slots executed.",
	})
	// TasksComputed 已计算的任务数
	TasksComputed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "uav",
		Name:      "tasks_computed_total",
		Help:      "Number of task units drained from computation queues.",
	})
	// TasksForwarded 已卸载给邻居的任务数
	TasksForwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "uav",
		Name:      "tasks_forwarded_total",
		Help:      "Number of task units transmitted to a neighbor.",
	})
	// TasksDropped 被丢弃的任务数，按队列类型区分
	TasksDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "uav",
		Name:      "tasks_dropped_total",
		Help:      "Number of task units dropped, by queue kind.",
	}, []string{"queue"})
	// RunsFinished 结束的仿真数，按结束状态区分
	RunsFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "uav",
		Name:      "runs_finished_total",
		Help:      "Number of finished simulation runs, by status.",
	}, []string{"status"})
	// SimulationRunning 当前是否有仿真在运行
	SimulationRunning = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "uav",
		Name:      "simulation_running",
		Help:      "1 while a simulation run is in progress.",
	})
	// HTTPRequests API 请求数
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "uav",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of API requests, by method, route and status.",
	}, []string{"method", "route", "status"})
	// HTTPDuration API 请求耗时
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "uav",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	registry.MustRegister(SlotsTotal, TasksComputed, TasksForwarded, TasksDropped, RunsFinished, SimulationRunning, HTTPRequests, HTTPDuration)
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// ObserveRequest 记录一次 API 请求
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
