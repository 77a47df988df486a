package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	calculationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "healthy_weight_service",
		Subsystem: "calculator",
		Name:      "calculations_total",
		Help:      "Number of weight-range calculations that produced a result.",
	})

	invalidInputTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "healthy_weight_service",
		Subsystem: "calculator",
		Name:      "invalid_input_total",
		Help:      "Number of calculation requests rejected as out of domain.",
	})

	usageCountGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "healthy_weight_service",
		Subsystem: "usage",
		Name:      "counter_value",
		Help:      "Most recently observed value of the persisted usage counter.",
	})

	storageFailureTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "healthy_weight_service",
		Subsystem: "usage",
		Name:      "storage_failures_total",
		Help:      "Number of counter storage operations that failed.",
	})
)

func init() {
	prometheus.MustRegister(calculationsTotal, invalidInputTotal, usageCountGauge, storageFailureTotal)
}

// RecordCalculation counts a successful weight-range computation.
func RecordCalculation() {
	calculationsTotal.Inc()
}

// RecordInvalidInput counts a rejected computation.
func RecordInvalidInput() {
	invalidInputTotal.Inc()
}

// RecordUsageCount updates the usage counter watermark.
func RecordUsageCount(count int64) {
	if count < 0 {
		return
	}
	usageCountGauge.Set(float64(count))
}

// RecordStorageFailure counts a failed read or write of the counter store.
func RecordStorageFailure() {
	storageFailureTotal.Inc()
}
