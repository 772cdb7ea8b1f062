package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts session lookups. A nil *Metrics records nothing.
type Metrics struct {
	hits    *prometheus.CounterVec
	misses  *prometheus.CounterVec
	stores  *prometheus.CounterVec
	expired prometheus.Counter
}

// NewMetrics registers the session collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Subsystem: "session",
			Name:      "hits_total",
			Help:      "Session lookups that found an entry",
		}, []string{"kind"}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Subsystem: "session",
			Name:      "misses_total",
			Help:      "Session lookups for missing or expired entries",
		}, []string{"kind"}),
		stores: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Subsystem: "session",
			Name:      "stores_total",
			Help:      "Entries written to the session store",
		}, []string{"kind"}),
		expired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "resume",
			Subsystem: "session",
			Name:      "expired_total",
			Help:      "Entries dropped by the in-memory store after their TTL",
		}),
	}
}

func (m *Metrics) hit(kind Kind) {
	if m != nil {
		m.hits.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) miss(kind Kind) {
	if m != nil {
		m.misses.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) stored(kind Kind) {
	if m != nil {
		m.stores.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) expiredEntries(n int) {
	if m != nil && n > 0 {
		m.expired.Add(float64(n))
	}
}
