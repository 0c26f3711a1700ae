package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records reconcile batches. It satisfies reconcile_list.Recorder.
type Metrics struct {
	batches  *prometheus.CounterVec
	items    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the reconcile collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		batches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reflist",
			Name:      "reconcile_batches_total",
			Help:      "Reconcile batches by list and outcome.",
		}, []string{"list", "status"}),
		items: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reflist",
			Name:      "reconcile_items_total",
			Help:      "Items handled by reconcile batches, by list and phase.",
		}, []string{"list", "phase"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reflist",
			Name:      "reconcile_duration_seconds",
			Help:      "Wall time of reconcile batches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"list"}),
	}
}

func (m *Metrics) ObserveBatch(list, status string, d time.Duration) {
	m.batches.WithLabelValues(list, status).Inc()
	m.duration.WithLabelValues(list).Observe(d.Seconds())
}

func (m *Metrics) ObserveItems(list, phase string, n int) {
	if n <= 0 {
		return
	}
	m.items.WithLabelValues(list, phase).Add(float64(n))
}
