package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the per-App Prometheus collectors.
type metrics struct {
	registry *prometheus.Registry
	loads    *prometheus.CounterVec
	evals    *prometheus.CounterVec
	renders  prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "modelbind",
			Name:      "loads_total",
			Help:      "Model and data loads by outcome.",
		}, []string{"outcome"}),
		evals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "modelbind",
			Name:      "script_evaluations_total",
			Help:      "Script evaluations by outcome.",
		}, []string{"outcome"}),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "modelbind",
			Name:      "renders_total",
			Help:      "Table renders.",
		}),
	}
	m.registry.MustRegister(m.loads, m.evals, m.renders)
	return m
}

// observe counts one operation under its outcome label.
func (m *metrics) observe(c *prometheus.CounterVec, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.WithLabelValues(outcome).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
