package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// metricsOnce ensures metrics are registered only once
	metricsOnce sync.Once

	// pairsScoredTotal tracks scored officer pairs by confidence tier
	pairsScoredTotal *prometheus.CounterVec

	// scoreDistribution tracks the distribution of total connection scores
	scoreDistribution prometheus.Histogram

	// scoringDuration tracks latency of whole-company analyses
	scoringDuration prometheus.Histogram

	// registryErrorsTotal tracks registry API errors by type
	registryErrorsTotal *prometheus.CounterVec

	// ingestedOfficersTotal tracks officers ingested by source
	ingestedOfficersTotal *prometheus.CounterVec
)

// Init registers all Prometheus metrics for the scoring service.
// This should be called once at application startup.
func Init() {
	metricsOnce.Do(func() {
		pairsScoredTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kindred_pairs_scored_total",
				Help: "Total number of officer pairs scored, by confidence tier",
			},
			[]string{"confidence"},
		)

		scoreDistribution = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kindred_connection_score",
				Help:    "Distribution of total connection scores",
				Buckets: []float64{0, 10, 20, 40, 60, 80, 100, 130, 160, 200},
			},
		)

		scoringDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kindred_company_analysis_duration_seconds",
				Help:    "Duration of whole-company pair analyses in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
		)

		registryErrorsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kindred_registry_errors_total",
				Help: "Total number of registry API errors by error type",
			},
			[]string{"error_type"},
		)

		ingestedOfficersTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kindred_ingested_officers_total",
				Help: "Total number of officer records ingested, by source",
			},
			[]string{"source"},
		)
	})
}

// RecordPairScored records one scored pair with its confidence tier.
func RecordPairScored(confidence string, total float64) {
	if pairsScoredTotal != nil {
		pairsScoredTotal.WithLabelValues(confidence).Inc()
	}
	if scoreDistribution != nil {
		scoreDistribution.Observe(total)
	}
}

// RecordRegistryError records a registry client error by type.
// errorType: "timeout", "auth", "rate_limit", "server_error", "connection", "parse", "circuit_open", "http_error"
func RecordRegistryError(errorType string) {
	if registryErrorsTotal != nil {
		registryErrorsTotal.WithLabelValues(errorType).Inc()
	}
}

// RecordIngestedOfficers records a batch of ingested officer records.
func RecordIngestedOfficers(source string, count int) {
	if ingestedOfficersTotal != nil {
		ingestedOfficersTotal.WithLabelValues(source).Add(float64(count))
	}
}

// AnalysisTimer is a helper for timing whole-company analyses.
type AnalysisTimer struct {
	start time.Time
}

// StartTimer creates a new timer for measuring analysis duration
func StartTimer() *AnalysisTimer {
	return &AnalysisTimer{start: time.Now()}
}

// ObserveDuration records the elapsed time since the timer started
func (t *AnalysisTimer) ObserveDuration() {
	if t != nil && scoringDuration != nil {
		scoringDuration.Observe(time.Since(t.start).Seconds())
	}
}
