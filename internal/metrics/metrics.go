package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline Metrics
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_analyses_total",
		Help: "Total number of channel analyses by outcome.",
	}, []string{"outcome"}) // outcome: "success", "input", "config", "not_found", "rate_limited", "error"

	AnalysisDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "app_analysis_duration_seconds",
		Help:    "Duration of full channel analyses in seconds.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
	})

	FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_fallbacks_total",
		Help: "Total number of times a pipeline stage fell back to deterministic output.",
	}, []string{"stage", "reason"}) // stage: "topics", "ideas"

	EnrichmentFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_enrichment_failures_total",
		Help: "Total number of enrichment branches that failed and were replaced by an empty list.",
	}, []string{"source"}) // source: "news" or "discussions"

	// Generative Model Metrics
	LLMCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_llm_calls_total",
		Help: "Total number of generative model calls.",
	}, []string{"operation", "status"})

	LLMSecondaryDecodeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_llm_secondary_decode_total",
		Help: "Total number of model responses decoded through the structural fallback.",
	}, []string{"key"})

	IdeasGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_ideas_generated_total",
		Help: "Total number of ideas returned, by origin.",
	}, []string{"origin"}) // origin: "model" or "template"
)
