package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultNoop    = "noop"
	ResultError   = "error"
)

// BannerMetrics records table/form activity.
type BannerMetrics struct {
	operations *prometheus.CounterVec
	records    prometheus.Gauge
}

// NewBannerMetrics registers the banner metrics on the provided registerer.
// A nil registerer yields a recorder that drops every observation.
func NewBannerMetrics(reg prometheus.Registerer) *BannerMetrics {
	if reg == nil {
		return &BannerMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "banner_operations_total",
		Help: "Banner table operations partitioned by outcome.",
	}, []string{"operation", "result"})
	records := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "banners_records",
		Help: "Number of banner records currently held.",
	})
	reg.MustRegister(operations, records)
	return &BannerMetrics{operations: operations, records: records}
}

// Observe increments the operation counter for the given outcome.
func (m *BannerMetrics) Observe(operation, result string) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(operation), normalizeLabel(result)).Inc()
}

// SetRecords publishes the current record count.
func (m *BannerMetrics) SetRecords(n int) {
	if m == nil || m.records == nil {
		return
	}
	m.records.Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
