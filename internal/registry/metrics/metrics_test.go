package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveOperation("purchaseProperty", "ok", 10*time.Millisecond)
	m.ObserveOperation("purchaseProperty", "insufficient_funds", time.Millisecond)
	m.ObserveOperation("purchaseProperty", "ok", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("purchaseProperty", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("purchaseProperty", "insufficient_funds")))
}

func TestCoinsAndEvents(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.AddRecharged(500)
	m.AddTransferred(200)
	m.IncrementEvent(true)
	m.IncrementEvent(false)

	assert.Equal(t, 500.0, testutil.ToFloat64(m.CoinsRecharged))
	assert.Equal(t, 200.0, testutil.ToFloat64(m.CoinsTransferred))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("error")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("viewUser", "ok", time.Millisecond)
		m.AddRecharged(1)
		m.AddTransferred(1)
		m.IncrementEvent(true)
	})
}
