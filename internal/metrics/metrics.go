package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
}

type Gauge interface {
	Set(v float64)
	Add(v float64)
}

// Metrics bundles the instrumentation handed to services. Construct
// with New for the process-wide registry or NewTestMetrics in tests.
type Metrics struct {
	LinesClassified Counter // label: level
	TailReads       Counter // label: outcome
	StreamClients   Gauge
	DaemonUp        Gauge
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *PrometheusCounter {
	return &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, labels),
	}
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

type PrometheusGauge struct {
	gauge prometheus.Gauge
}

func newGauge(name, help string) *PrometheusGauge {
	return &PrometheusGauge{
		gauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: name,
			Help: help,
		}),
	}
}

func (p *PrometheusGauge) Set(v float64) {
	p.gauge.Set(v)
}

func (p *PrometheusGauge) Add(v float64) {
	p.gauge.Add(v)
}

func build() (*Metrics, []prometheus.Collector) {
	linesClassified := newCounterVec(
		"proxboard_lines_classified_total",
		"Log lines classified, by resulting level",
		[]string{"level"},
	)
	tailReads := newCounterVec(
		"proxboard_tail_reads_total",
		"Tail reads against the log source, by outcome",
		[]string{"outcome"},
	)
	streamClients := newGauge(
		"proxboard_stream_clients",
		"Currently connected live log stream clients",
	)
	daemonUp := newGauge(
		"proxboard_daemon_up",
		"Whether the balancer container is running (1) or not (0)",
	)

	m := &Metrics{
		LinesClassified: linesClassified,
		TailReads:       tailReads,
		StreamClients:   streamClients,
		DaemonUp:        daemonUp,
	}
	collectors := []prometheus.Collector{
		linesClassified.counter,
		tailReads.counter,
		streamClients.gauge,
		daemonUp.gauge,
	}
	return m, collectors
}

func New() *Metrics {
	m, collectors := build()
	for _, c := range collectors {
		prometheus.MustRegister(c)
	}
	return m
}

// NewTestMetrics registers on a private registry so tests can construct
// services repeatedly without duplicate-registration panics.
func NewTestMetrics() *Metrics {
	m, collectors := build()
	reg := prometheus.NewRegistry()
	for _, c := range collectors {
		reg.MustRegister(c)
	}
	return m
}
