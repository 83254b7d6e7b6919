package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the domain counters. A nil *Metrics records nothing.
type Metrics struct {
	documentsIssued     *prometheus.CounterVec
	documentsUpdated    prometheus.Counter
	revalidationSignals *prometheus.CounterVec
}

// New creates the domain counters and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		documentsIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_issued_total",
				Help: "Billing documents created, by document type.",
			},
			[]string{"type"},
		),
		documentsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "documents_updated_total",
			Help: "Billing document updates applied.",
		}),
		revalidationSignals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "revalidation_signals_total",
				Help: "Cache revalidation signals sent to the storefront, by result.",
			},
			[]string{"result"},
		),
	}

	for _, c := range []prometheus.Collector{m.documentsIssued, m.documentsUpdated, m.revalidationSignals} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) DocumentIssued(docType string) {
	if m == nil {
		return
	}
	m.documentsIssued.WithLabelValues(docType).Inc()
}

func (m *Metrics) DocumentUpdated() {
	if m == nil {
		return
	}
	m.documentsUpdated.Inc()
}

// RevalidationSent records the outcome of one signal: "ok" or "error".
func (m *Metrics) RevalidationSent(result string) {
	if m == nil {
		return
	}
	m.revalidationSignals.WithLabelValues(result).Inc()
}
