// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Vector cache metrics.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suadeo_vector_cache_hits_total",
			Help: "Total number of vector cache hits",
		},
		[]string{"namespace"}, // "event", "cluster", "other"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suadeo_vector_cache_misses_total",
			Help: "Total number of vector cache misses, including degraded reads",
		},
		[]string{"namespace"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suadeo_vector_cache_errors_total",
			Help: "Total number of cache store failures degraded to miss/no-op",
		},
		[]string{"operation"}, // "get", "set", "delete", "exists", "clear"
	)

	// Embedding metrics.
	EmbedDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "suadeo_embed_batch_duration_seconds",
			Help:    "Duration of embedding model batch calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	EmbedErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suadeo_embed_errors_total",
			Help: "Total number of failed embedding model calls",
		},
	)

	EmbedTexts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suadeo_embed_texts_total",
			Help: "Total number of texts embedded",
		},
	)

	// Recommendation metrics.
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suadeo_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"}, // "sequence", "fallback", "cold"
	)

	MatcherEmptyResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suadeo_matcher_empty_results_total",
			Help: "Total number of events for which cluster matching returned nothing",
		},
	)

	// Training metrics.
	TrainingSteps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suadeo_training_steps_total",
			Help: "Total number of completed sequence-model training steps",
		},
	)

	TrainingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suadeo_training_failures_total",
			Help: "Total number of skipped or failed training steps",
		},
	)

	TrainingLastLoss = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "suadeo_training_last_loss",
			Help: "Reconstruction loss of the most recent training step",
		},
	)
)

// ObserveEmbed records one embedding batch call.
func ObserveEmbed(start time.Time, texts int, err error) {
	EmbedDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		EmbedErrors.Inc()
		return
	}
	EmbedTexts.Add(float64(texts))
}

// ObserveRecommend records one recommendation request.
func ObserveRecommend(mode string, start time.Time) {
	RecommendDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}
