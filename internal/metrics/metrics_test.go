package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/geokit/internal/geo"
	"github.com/woozymasta/geokit/internal/metrics"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.Decoded.WithLabelValues("Point").Inc()
	m.Decoded.WithLabelValues("Point").Inc()
	m.DecodeErrors.WithLabelValues("malformed").Inc()
	m.EquivalenceSeconds.Observe(0.001)

	families, err := reg.Gather()
	require.NoError(t, err)

	counters := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				counters[f.GetName()] += c.GetValue()
			}
		}
	}

	assert.InDelta(t, 2.0, counters["geokit_objects_decoded_total"], 0)
	assert.InDelta(t, 1.0, counters["geokit_decode_errors_total"], 0)

	assert.Panics(t, func() { metrics.NewMetrics(reg) }, "duplicate registration")
}

func TestObserve(t *testing.T) {
	t.Parallel()

	t.Run("success - nil metrics are a no-op", func(t *testing.T) {
		t.Parallel()
		var m *metrics.Metrics

		assert.NotPanics(t, func() {
			m.ObserveDecode(nil, assert.AnError)
			m.ObserveEquivalence(true, time.Millisecond)
		})
	})

	t.Run("success - decode outcomes", func(t *testing.T) {
		t.Parallel()
		m := metrics.NewMetrics(prometheus.NewRegistry())

		obj, err := geo.Decode(`{"type":"MultiPoint","coordinates":[[1,2]]}`)
		require.NoError(t, err)
		m.ObserveDecode(obj, nil)

		_, err = geo.Decode(`{"type":"Point"}`)
		m.ObserveDecode(nil, err)

		assert.Equal(t, "key not found", metrics.Reason(err))
		assert.Equal(t, "other", metrics.Reason(assert.AnError))
	})
}
