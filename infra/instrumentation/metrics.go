package instrumentation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"lobreplay/domain/event"
)

// Metrics counts replay progress for the optional Prometheus listener.
// The replay loop updates these outside its timed region, so they never
// leak into the latency samples.
type Metrics struct {
	EventsTotal       *prometheus.CounterVec
	UnrecognizedTotal prometheus.Counter
	Books             prometheus.Gauge
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		EventsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "lobreplay_events_applied_total",
			Help: "Book mutations applied, by event kind",
		}, []string{"kind"}),

		UnrecognizedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "lobreplay_events_unrecognized_total",
			Help: "Rows with a message kind outside A/C/E/U, skipped",
		}),

		Books: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "lobreplay_books",
			Help: "Distinct symbols with an instantiated order book",
		}),
	}
}

// ObserveApplied records one applied event of the given kind.
func (m *Metrics) ObserveApplied(k event.Kind) {
	m.EventsTotal.WithLabelValues(k.String()).Inc()
}

// ObserveUnrecognized records one skipped row.
func (m *Metrics) ObserveUnrecognized() {
	m.UnrecognizedTotal.Inc()
}

// SetBooks publishes the current distinct-symbol count.
func (m *Metrics) SetBooks(n int) {
	m.Books.Set(float64(n))
}
