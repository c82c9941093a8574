package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio.
type Metrics struct {
	registry        *prometheus.Registry
	intents         *prometheus.CounterVec
	ordersCreated   prometheus.Counter
	ordersRejected  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registra los collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	metrics := &Metrics{
		registry: registry,
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prendas_intents_dispatched_total",
			Help: "Intents despachados por tipo y resultado.",
		}, []string{"kind", "outcome"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prendas_orders_created_total",
			Help: "Pedidos confirmados.",
		}),
		ordersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prendas_orders_rejected_total",
			Help: "Pedidos rechazados por motivo.",
		}, []string{"reason"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prendas_http_request_duration_seconds",
			Help:    "Duración de requests HTTP por ruta.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.intents,
		metrics.ordersCreated,
		metrics.ordersRejected,
		metrics.requestDuration,
	)
	return metrics
}

// IntentDispatched implementa chat.DispatchRecorder.
func (metrics *Metrics) IntentDispatched(kind, outcome string) {
	metrics.intents.WithLabelValues(kind, outcome).Inc()
}

// OrderCreated implementa orders.Recorder.
func (metrics *Metrics) OrderCreated() {
	metrics.ordersCreated.Inc()
}

// OrderRejected implementa orders.Recorder.
func (metrics *Metrics) OrderRejected(reason string) {
	metrics.ordersRejected.WithLabelValues(reason).Inc()
}

// Handler expone GET /metrics.
func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{Registry: metrics.registry})
}

// Middleware mide la duración de cada request.
// Usa el patrón de ruta de chi para no crear una serie por id.
func (metrics *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if routeContext := chi.RouteContext(r.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
