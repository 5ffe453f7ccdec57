package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 予約作成の結果ラベル
const (
	ResultCreated    = "created"
	ResultConflict   = "conflict"
	ResultInvalid    = "invalid"
	ResultLockFailed = "lock_failed"
	ResultError      = "error"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 予約作成の総数（result: created, conflict, invalid, lock_failed, error）
	ReservationsTotal *prometheus.CounterVec

	// 予約の状態遷移の総数（to: active, completed, cancelled）
	ReservationTransitionsTotal *prometheus.CounterVec

	// 分散ロックの操作時間（operation: acquire/release, status: success/failed）
	DistributedLockDuration *prometheus.HistogramVec

	// 状態ごとの座席数（status: free, reserved, occupied, maintenance）
	SeatsByStatus *prometheus.GaugeVec

	// 座席状態の変更回数（status: 変更後の状態）
	SeatStatusChangesTotal *prometheus.CounterVec

	// 予約イベント配信の失敗回数
	EventPublishFailuresTotal prometheus.Counter
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
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "club_reservations_total",
				Help: "Total number of reservation attempts by result",
			},
			[]string{"result"},
		),
		ReservationTransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "club_reservation_transitions_total",
				Help: "Total number of reservation status transitions",
			},
			[]string{"to"},
		),
		DistributedLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "distributed_lock_duration_seconds",
				Help:    "Time spent on distributed lock operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		SeatsByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "club_seats",
				Help: "Current number of seats by status",
			},
			[]string{"status"},
		),
		SeatStatusChangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "club_seat_status_changes_total",
				Help: "Total number of committed seat status changes by new status",
			},
			[]string{"status"},
		),
		EventPublishFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "club_event_publish_failures_total",
				Help: "Total number of reservation events that could not be published",
			},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsTotal,
		m.ReservationTransitionsTotal,
		m.DistributedLockDuration,
		m.SeatsByStatus,
		m.SeatStatusChangesTotal,
		m.EventPublishFailuresTotal,
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
