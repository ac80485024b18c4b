// Package metrics は gRPC 呼び出しとストア件数の Prometheus メトリクスを提供します。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel_pms"

// Metrics はアプリケーションのメトリクス群です。
type Metrics struct {
	registry *prometheus.Registry

	rpcTotal    *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
}

// New は専用レジストリにメトリクスを登録した Metrics を生成します。
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		rpcTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Total number of gRPC requests by method and status code.",
		}, []string{"method", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "Duration of gRPC requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}
}

// Registry はメトリクスの収集元です。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRPC は gRPC 呼び出し 1 件を記録します。
func (m *Metrics) ObserveRPC(method, code string, duration time.Duration) {
	m.rpcTotal.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method, code).Observe(duration.Seconds())
}

// RegisterStoreSize はコレクションの件数を返す関数をゲージとして登録します。
// 値はスクレイプ時に評価します。
func (m *Metrics) RegisterStoreSize(collection string, size func() int) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "store_records",
		Help:        "Number of records held in the entity store.",
		ConstLabels: prometheus.Labels{"collection": collection},
	}, func() float64 {
		return float64(size())
	})
}
