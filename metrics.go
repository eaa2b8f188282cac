package certmaker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "certmaker"

// Metrics holds the generation collectors. A nil *Metrics records nothing.
type Metrics struct {
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
	keyBits     prometheus.Gauge
}

func NewMetrics(registerer prometheus.Registerer) (m *Metrics, err error) {
	m = &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Number of certificate generations by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating the key pair and signing the certificate.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		keyBits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "key_bits",
			Help:      "RSA modulus size of the last generated key.",
		}),
	}
	if registerer == nil {
		return
	}
	for _, c := range []prometheus.Collector{m.generations, m.duration, m.keyBits} {
		if err = registerer.Register(c); err != nil {
			m = nil
			return
		}
	}
	return
}

func (m *Metrics) observe(keyBits int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.generations.WithLabelValues(KindOf(err).String()).Inc()
		return
	}
	m.generations.WithLabelValues("success").Inc()
	m.duration.Observe(elapsed.Seconds())
	m.keyBits.Set(float64(keyBits))
}

// Generations returns the counter for result; on a nil *Metrics it is a detached counter.
func (m *Metrics) Generations(result string) prometheus.Counter {
	if m == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Number of certificate generations by result.",
		})
	}
	return m.generations.WithLabelValues(result)
}
