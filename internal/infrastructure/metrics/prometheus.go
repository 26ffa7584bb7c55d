// Package metrics expone contadores de proceso en formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DenisZev/wildberries-bot/internal/application/notify"
	"github.com/DenisZev/wildberries-bot/internal/application/report"
)

const namespace = "wbbot"

var (
	_ report.Recorder = (*Registry)(nil)
	_ notify.Recorder = (*Registry)(nil)
)

// Registry métricas de reportes, artefactos, avisos y HTTP sobre un registro propio.
type Registry struct {
	reg *prometheus.Registry

	reportsTotal     *prometheus.CounterVec
	reportDuration   prometheus.Histogram
	artifactFailures *prometheus.CounterVec
	ordersNotified   prometheus.Counter
	orderFailures    prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registra todas las métricas, más las de proceso y runtime de Go.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Reportes generados por resultado.",
		}, []string{"outcome"}),
		reportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Tiempo de agregación y renderizado de un reporte.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		artifactFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_failures_total",
			Help:      "Artefactos que no se pudieron generar o guardar.",
		}, []string{"kind"}),
		ordersNotified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_notified_total",
			Help:      "Avisos de órdenes nuevas enviados.",
		}),
		orderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_notify_failures_total",
			Help:      "Avisos de órdenes que no se pudieron enviar.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Solicitudes HTTP por ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las solicitudes HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.reg.MustRegister(
		r.reportsTotal, r.reportDuration, r.artifactFailures,
		r.ordersNotified, r.orderFailures,
		r.httpRequests, r.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) ReportGenerated(outcome string, elapsed time.Duration) {
	r.reportsTotal.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		r.reportDuration.Observe(elapsed.Seconds())
	}
}

func (r *Registry) ArtifactFailed(kind string) {
	r.artifactFailures.WithLabelValues(kind).Inc()
}

func (r *Registry) OrderNotified()     { r.ordersNotified.Inc() }
func (r *Registry) OrderNotifyFailed() { r.orderFailures.Inc() }

// ObserveHTTP registra una solicitud atendida.
func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato de texto de Prometheus.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer acceso al registro (pruebas).
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
