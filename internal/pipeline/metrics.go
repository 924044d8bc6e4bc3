package pipeline

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "qir"

// Metrics holds the per-run Prometheus collectors. Each pipeline owns its
// registry so runs never share series.
type Metrics struct {
	registry  *prometheus.Registry
	qubits    *prometheus.GaugeVec
	gates     *prometheus.GaugeVec
	depth     *prometheus.GaugeVec
	synthesis *prometheus.HistogramVec
	failures  *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		qubits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "program_qubits",
			Help:      "Qubit count of the synthesized program",
		}, []string{"dataset", "scheme"}),
		gates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "program_gates",
			Help:      "Gate count of the synthesized program, barriers excluded",
		}, []string{"dataset", "scheme"}),
		depth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "program_depth",
			Help:      "Circuit depth of the synthesized program",
		}, []string{"dataset", "scheme"}),
		synthesis: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "synthesis_duration_seconds",
			Help:      "Time taken to synthesize one program",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"scheme"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "synthesis_failures_total",
			Help:      "Programs that could not be synthesized",
		}, []string{"scheme", "reason"}),
	}
	m.registry.MustRegister(m.qubits, m.gates, m.depth, m.synthesis, m.failures)
	return m
}

func (m *Metrics) observe(r Result) {
	if r.Error != "" {
		m.failures.WithLabelValues(r.Scheme, r.reason).Inc()
		return
	}
	m.qubits.WithLabelValues(r.Dataset, r.Scheme).Set(float64(r.Qubits))
	m.gates.WithLabelValues(r.Dataset, r.Scheme).Set(float64(r.Gates))
	m.depth.WithLabelValues(r.Dataset, r.Scheme).Set(float64(r.Depth))
	m.synthesis.WithLabelValues(r.Scheme).Observe(r.Seconds)
}

// WriteTextfile writes every series in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return errors.Wrap(prometheus.WriteToTextfile(path, m.registry), "write metrics")
}
