package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis Metrics
var (
	// AnalysesTotal tracks submissions by outcome (empty, invalid, done, failed)
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_analyses_total",
			Help: "Total sentiment submissions by outcome",
		},
		[]string{"outcome"},
	)

	// ClassifierDuration tracks classifier call latency in seconds
	ClassifierDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentiment_classifier_duration_seconds",
			Help:    "Classifier call duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)

	// ClassifierCacheTotal tracks result cache lookups (hit, miss, error)
	ClassifierCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_classifier_cache_total",
			Help: "Classifier result cache lookups by result",
		},
		[]string{"result"},
	)

	// SideEffectErrorsTotal tracks history and event publishing failures
	SideEffectErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_side_effect_errors_total",
			Help: "Failures recording or publishing completed analyses",
		},
		[]string{"target"},
	)
)

// HTTP Metrics
var (
	// HTTPErrorsTotal tracks HTTP errors by type
	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors by error type",
		},
		[]string{"type"},
	)
)
