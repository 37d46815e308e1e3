// Package metrics содержит prometheus-метрики загрузки и запросов заказов.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Значения метки result для загрузок.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Registry хранит собственный prometheus.Registry и коллекторы сервиса.
type Registry struct {
	reg            *prometheus.Registry
	Uploads        *prometheus.CounterVec
	UploadLines    prometheus.Counter
	UploadDuration prometheus.Histogram
	StoredUsers    prometheus.Gauge
	StoredOrders   prometheus.Gauge
	Queries        *prometheus.CounterVec
}

// NewRegistry создаёт и регистрирует все метрики.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	uploads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_uploads_total",
		Help: "Order file uploads by result.",
	}, []string{"result"})
	lines := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_upload_lines_total",
		Help: "Lines accepted from successful uploads.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orders_upload_duration_seconds",
		Help:    "Time spent parsing, normalizing and loading an upload.",
		Buckets: prometheus.DefBuckets,
	})
	users := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orders_stored_users",
		Help: "Users in the current store snapshot.",
	})
	orders := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orders_stored_orders",
		Help: "Orders in the current store snapshot.",
	})
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_queries_total",
		Help: "Store queries by kind.",
	}, []string{"kind"})

	r.MustRegister(
		uploads, lines, duration, users, orders, queries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:            r,
		Uploads:        uploads,
		UploadLines:    lines,
		UploadDuration: duration,
		StoredUsers:    users,
		StoredOrders:   orders,
		Queries:        queries,
	}
}

// ObserveUpload фиксирует результат одной загрузки.
func (r *Registry) ObserveUpload(result string, lines int, elapsed time.Duration) {
	r.Uploads.WithLabelValues(result).Inc()
	r.UploadDuration.Observe(elapsed.Seconds())
	if result == ResultOK {
		r.UploadLines.Add(float64(lines))
	}
}

// SetStored выставляет размер текущего снимка хранилища.
func (r *Registry) SetStored(users, orders int) {
	r.StoredUsers.Set(float64(users))
	r.StoredOrders.Set(float64(orders))
}

// ObserveQuery увеличивает счётчик запросов заданного вида.
func (r *Registry) ObserveQuery(kind string) {
	r.Queries.WithLabelValues(kind).Inc()
}

// Handler отдаёт метрики в формате prometheus.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
