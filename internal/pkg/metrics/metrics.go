package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// ホールド試行の総数（outcome: held, rejected, error）
	HoldAttemptsTotal *prometheus.CounterVec

	// 座席状況フェッチのレイテンシ（status: success, failed）
	SeatStatusFetchDuration *prometheus.HistogramVec

	// 区域同期の総数（status: success, failed, skipped）
	SectionSyncsTotal *prometheus.CounterVec

	// アクティブなホールド数（status: holding, confirmed）
	ActiveHolds *prometheus.GaugeVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HoldAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hold_attempts_total",
				Help: "Total number of seat hold attempts",
			},
			[]string{"outcome"},
		),
		SeatStatusFetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seat_status_fetch_duration_seconds",
				Help:    "Time spent fetching per-section seat status",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"status"},
		),
		SectionSyncsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "section_syncs_total",
				Help: "Total number of section availability syncs",
			},
			[]string{"status"},
		),
		ActiveHolds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "active_holds",
				Help: "Current number of active seat holds",
			},
			[]string{"status"},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HoldAttemptsTotal,
		m.SeatStatusFetchDuration,
		m.SectionSyncsTotal,
		m.ActiveHolds,
	)

	return m
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
