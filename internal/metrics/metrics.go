// Package metrics exports tool invocation metrics in Prometheus format.
package metrics

import (
	"context"
	"net/http"

	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "awsdocs"

// Metrics owns its registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	Invocations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	ResultBytes *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tool",
				Name:      "invocations_total",
				Help:      "Total number of tool invocations",
			},
			[]string{"tool", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "tool",
				Name:      "duration_seconds",
				Help:      "Tool invocation latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"tool"},
		),
		ResultBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "tool",
				Name:      "result_bytes",
				Help:      "Size of successful tool results in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"tool"},
		),
	}
}

// Observe records one invocation.
func (m *Metrics) Observe(_ context.Context, inv domain.Invocation) error {
	m.Invocations.WithLabelValues(inv.ToolID, string(inv.Outcome)).Inc()
	m.Duration.WithLabelValues(inv.ToolID).Observe(inv.Duration.Seconds())
	if inv.Outcome == domain.OutcomeOK {
		m.ResultBytes.WithLabelValues(inv.ToolID).Observe(float64(inv.ResultSize))
	}
	return nil
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
