package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for registry operations.
type Metrics struct {
	// Operation outcomes by operation and result code ("ok" on success)
	Operations *prometheus.CounterVec

	OperationLatency *prometheus.HistogramVec

	// Coins credited by vouchers and moved by purchases
	CoinsRecharged   prometheus.Counter
	CoinsTransferred prometheus.Counter

	EventsPublished *prometheus.CounterVec
}

// New registers registry metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "regnet_registry_operations_total",
			Help: "Registry operations by operation and outcome code",
		}, []string{"operation", "code"}),

		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "regnet_registry_operation_duration_seconds",
			Help:    "Duration of registry operations including ledger commit",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		CoinsRecharged: f.NewCounter(prometheus.CounterOpts{
			Name: "regnet_registry_coins_recharged_total",
			Help: "Coins added to balances through vouchers",
		}),

		CoinsTransferred: f.NewCounter(prometheus.CounterOpts{
			Name: "regnet_registry_coins_transferred_total",
			Help: "Coins moved from buyers to sellers by purchases",
		}),

		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "regnet_registry_events_published_total",
			Help: "Ledger events handed to the publisher by result",
		}, []string{"result"}), // result: "ok", "error"
	}
}

// ObserveOperation records an operation outcome and its latency.
func (m *Metrics) ObserveOperation(operation, code string, d time.Duration) {
	if m != nil {
		m.Operations.WithLabelValues(operation, code).Inc()
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) AddRecharged(amount int64) {
	if m != nil {
		m.CoinsRecharged.Add(float64(amount))
	}
}

func (m *Metrics) AddTransferred(amount int64) {
	if m != nil {
		m.CoinsTransferred.Add(float64(amount))
	}
}

// IncrementEvent records a publish attempt.
func (m *Metrics) IncrementEvent(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.EventsPublished.WithLabelValues(result).Inc()
}
