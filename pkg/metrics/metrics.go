// Package metrics 提供基于Prometheus的指标收集
//
// 指标通过/metrics端点暴露，由Prometheus Server定时抓取。
// 必须在程序启动时调用InitMetrics()完成注册。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method、path、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅业务指标

	// LoansCreatedTotal 借出总数（Counter）
	LoansCreatedTotal prometheus.Counter

	// LoansReturnedTotal 归还总数（Counter）
	LoansReturnedTotal prometheus.Counter

	// LoansRejectedTotal 因业务规则被拒绝的借出请求总数（Counter）
	// 标签：reason（no_copies/duplicate_loan）
	LoansRejectedTotal *prometheus.CounterVec

	// OverdueSweepMarked 过期扫描中被标记为overdue的记录数（Counter）
	OverdueSweepMarked prometheus.Counter
)

// InitMetrics 初始化所有Prometheus指标
// 使用promauto.New*自动注册到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	LoansCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_created_total",
			Help: "借出总数",
		},
	)

	LoansReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "归还总数",
		},
	)

	LoansRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loans_rejected_total",
			Help: "因业务规则被拒绝的借出请求总数",
		},
		[]string{"reason"},
	)

	OverdueSweepMarked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "overdue_sweep_marked_total",
			Help: "过期扫描中被标记为overdue的记录数",
		},
	)
}

// =========================================
// 辅助函数（未初始化时安全空操作，便于单元测试）
// =========================================

// IncCounter 计数器+1
func IncCounter(counter prometheus.Counter) {
	if counter != nil {
		counter.Inc()
	}
}

// AddCounter 计数器+n
func AddCounter(counter prometheus.Counter, n float64) {
	if counter != nil {
		counter.Add(n)
	}
}

// IncCounterVec 带标签计数器+1
func IncCounterVec(counter *prometheus.CounterVec, labelValues ...string) {
	if counter != nil {
		counter.WithLabelValues(labelValues...).Inc()
	}
}

// ObserveHistogramVec 带标签直方图观测
func ObserveHistogramVec(histogram *prometheus.HistogramVec, value float64, labelValues ...string) {
	if histogram != nil {
		histogram.WithLabelValues(labelValues...).Observe(value)
	}
}
