package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dictionary Prometheus metrics.
var (
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iskwet",
			Name:      "lookups_total",
			Help:      "Total number of dictionary lookups",
		},
		[]string{"operation", "result"}, // result: "hit" / "miss" / "error"
	)

	LookupResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "iskwet",
			Name:      "lookup_results",
			Help:      "Number of words returned per lookup",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"operation"},
	)

	DictionaryWords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "iskwet",
			Name:      "dictionary_words",
			Help:      "Number of words in the loaded dictionary",
		},
	)

	DictionaryLoadedAt = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "iskwet",
			Name:      "dictionary_loaded_timestamp_seconds",
			Help:      "Unix time the dictionary snapshot was loaded",
		},
	)
)

// LookupRecorder feeds search lookups into LookupsTotal and LookupResults.
type LookupRecorder struct{}

// RecordLookup counts one lookup; failed lookups are not added to the result histogram.
func (LookupRecorder) RecordLookup(op, result string, n int) {
	LookupsTotal.WithLabelValues(op, result).Inc()
	if result != "error" {
		LookupResults.WithLabelValues(op).Observe(float64(n))
	}
}

var dictMetricsRegistered bool

// RegisterDictionaryMetrics registers Prometheus dictionary metrics. Must be called once from main.
func RegisterDictionaryMetrics() {
	if dictMetricsRegistered {
		return
	}
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(LookupResults)
	prometheus.MustRegister(DictionaryWords)
	prometheus.MustRegister(DictionaryLoadedAt)
	dictMetricsRegistered = true
}
