package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CommandMetrics tracks toolkit command dispatches.
type CommandMetrics struct {
	Commands  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewCommandMetrics registers and returns the command metric set.
func NewCommandMetrics() *CommandMetrics {
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "frodo",
		Subsystem: "toolkit",
		Name:      "commands_total",
		Help:      "Total number of dispatched order commands.",
	}, []string{"command", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "frodo",
		Subsystem: "toolkit",
		Name:      "command_duration_ms",
		Help:      "Order command latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"command"})

	prometheus.MustRegister(commands, latency)
	return &CommandMetrics{Commands: commands, LatencyMS: latency}
}

// Observe records one dispatched command.
func (m *CommandMetrics) Observe(command string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Commands.WithLabelValues(command, outcome).Inc()
}

// Time returns a stop function recording command latency.
func (m *CommandMetrics) Time(command string) func() {
	start := time.Now()
	return func() {
		m.LatencyMS.WithLabelValues(command).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
