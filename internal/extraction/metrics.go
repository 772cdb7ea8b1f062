package extraction

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts model calls, cache lookups and fallbacks. A nil *Metrics
// records nothing.
type Metrics struct {
	requests    *prometheus.CounterVec
	cacheLookup *prometheus.CounterVec
	fallbacks   prometheus.Counter
}

// NewMetrics registers the extraction collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Language model calls by purpose and outcome",
		}, []string{"kind", "outcome"}),
		cacheLookup: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Subsystem: "llm",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by result",
		}, []string{"result"}),
		fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "resume",
			Subsystem: "extraction",
			Name:      "fallbacks_total",
			Help:      "Keyword extractions served by the local extractor after a remote failure",
		}),
	}
}

func (m *Metrics) request(kind, outcome string) {
	if m != nil {
		m.requests.WithLabelValues(kind, outcome).Inc()
	}
}

func (m *Metrics) cache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookup.WithLabelValues(result).Inc()
}

func (m *Metrics) fallback() {
	if m != nil {
		m.fallbacks.Inc()
	}
}
