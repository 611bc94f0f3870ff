package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	suggestionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admission",
		Subsystem: "suggest",
		Name:      "requests_total",
		Help:      "Suggestion requests by qualification",
	}, []string{"qualification"})

	suggestionResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "admission",
		Subsystem: "suggest",
		Name:      "results_count",
		Help:      "Number of suggestions returned per request",
		Buckets:   []float64{0, 1, 5, 10, 20, 30, 40, 50, 60, 70},
	})

	aiFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admission",
		Subsystem: "ai",
		Name:      "fallbacks_total",
		Help:      "AI calls downgraded to their deterministic fallback, by component and reason",
	}, []string{"component", "reason"})

	applicationsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admission",
		Subsystem: "applications",
		Name:      "submitted_total",
		Help:      "Applications by outcome: stored, duplicate or failed",
	}, []string{"outcome"})

	catalogReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admission",
		Subsystem: "catalog",
		Name:      "reloads_total",
		Help:      "Catalog reloads by outcome",
	}, []string{"outcome"})

	catalogOfferings = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "admission",
		Subsystem: "catalog",
		Name:      "offerings",
		Help:      "Offerings in the active catalog",
	})
)

// Fallback reasons.
const (
	ReasonNoClient = "no_client"
	ReasonError    = "error"
	ReasonTimeout  = "timeout"
	ReasonParse    = "parse"
	ReasonSkipped  = "skipped"
)

// RecordSuggestion counts one suggestion request and its result size.
func RecordSuggestion(qualification string, results int) {
	switch qualification {
	case "10th", "12th":
	default:
		qualification = "other"
	}
	suggestionRequests.WithLabelValues(qualification).Inc()
	suggestionResults.Observe(float64(results))
}

// RecordAIFallback counts an AI call that fell back.
func RecordAIFallback(component, reason string) {
	aiFallbacks.WithLabelValues(component, reason).Inc()
}

// RecordApplication counts an application submission outcome.
func RecordApplication(outcome string) {
	applicationsSubmitted.WithLabelValues(outcome).Inc()
}

// RecordCatalogReload counts a reload and, on success, the new catalog size.
func RecordCatalogReload(offerings int, err error) {
	if err != nil {
		catalogReloads.WithLabelValues("failure").Inc()
		return
	}
	catalogReloads.WithLabelValues("success").Inc()
	catalogOfferings.Set(float64(offerings))
}
