// Package metrics holds the Prometheus collectors of the geokit service.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/woozymasta/geokit/internal/geo"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decoded            *prometheus.CounterVec
	DecodeErrors       *prometheus.CounterVec
	Invalid            *prometheus.CounterVec
	EquivalenceChecks  *prometheus.CounterVec
	EquivalenceSeconds prometheus.Histogram
	RequestSeconds     *prometheus.HistogramVec
	ActiveWorkers      prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Decoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geokit_objects_decoded_total",
			Help: "Total number of GeoJSON objects decoded, by kind.",
		}, []string{"kind"}),
		DecodeErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geokit_decode_errors_total",
			Help: "Total number of rejected GeoJSON documents, by error kind.",
		}, []string{"reason"}),
		Invalid: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geokit_objects_invalid_total",
			Help: "Total number of decoded objects that failed validation, by kind.",
		}, []string{"kind"}),
		EquivalenceChecks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geokit_equivalence_checks_total",
			Help: "Total number of equivalence comparisons, by outcome.",
		}, []string{"result"}),
		EquivalenceSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "geokit_equivalence_duration_seconds",
			Help:    "Duration of equivalence comparisons.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geokit_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "status"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "geokit_active_workers",
			Help: "Current number of batch workers processing documents.",
		}),
	}
}

// ObserveDecode records the outcome of one decode. A nil receiver is a no-op.
func (m *Metrics) ObserveDecode(obj geo.Object, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.DecodeErrors.WithLabelValues(Reason(err)).Inc()
		return
	}
	m.Decoded.WithLabelValues(obj.Type().String()).Inc()
	if !obj.IsValid() {
		m.Invalid.WithLabelValues(obj.Type().String()).Inc()
	}
}

// ObserveEquivalence records one comparison and its duration.
func (m *Metrics) ObserveEquivalence(equal bool, d time.Duration) {
	if m == nil {
		return
	}
	m.EquivalenceChecks.WithLabelValues(strconv.FormatBool(equal)).Inc()
	m.EquivalenceSeconds.Observe(d.Seconds())
}

// Reason maps a decode error onto a bounded label value.
func Reason(err error) string {
	var de *geo.DecodeError
	if errors.As(err, &de) && de.Kind != nil {
		return de.Kind.Error()
	}
	return "other"
}
