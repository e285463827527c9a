package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Batch outcomes recorded on the batches counter
const (
	resultAllocated  = "allocated"
	resultOverridden = "overridden"
	resultRepeated   = "repeated"
	resultEmpty      = "empty"
	resultPersistErr = "persist_error"
)

// Metrics holds the Prometheus collectors of one server
type Metrics struct {
	registry *prometheus.Registry

	batches         *prometheus.CounterVec
	labelsIssued    prometheus.Counter
	peeks           prometheus.Counter
	renders         *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qrlabel_batches_total",
			Help: "Label batches requested, by outcome",
		}, []string{"result"}),
		labelsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qrlabel_labels_issued_total",
			Help: "Labels allocated against the sequence store",
		}),
		peeks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qrlabel_peeks_total",
			Help: "Next-number lookups",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qrlabel_renders_total",
			Help: "Rendered label documents, by format",
		}, []string{"format"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qrlabel_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // ~1ms to 8s
		}, []string{"route", "method", "code"}),
	}

	m.registry.MustRegister(
		m.batches,
		m.labelsIssued,
		m.peeks,
		m.renders,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeBatch(result string, issued int) {
	m.batches.WithLabelValues(result).Inc()
	if issued > 0 {
		m.labelsIssued.Add(float64(issued))
	}
}
