// Package metrics 定義服務與離線建置的 Prometheus 指標
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinner_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dinner_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RecommendationMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinner_recommendation_matches_total",
			Help: "Total number of recipe matches returned per match type",
		},
		[]string{"match_type"},
	)

	PipelineRecipes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinner_pipeline_recipes_total",
			Help: "Recipes produced by the offline pipeline per stage",
		},
		[]string{"stage"},
	)

	PipelineRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinner_pipeline_rejections_total",
			Help: "Quality gate rejections per reason",
		},
		[]string{"reason"},
	)

	SignalSourceFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dinner_signal_source_failures_total",
			Help: "Market signal sources that failed to fetch",
		},
	)
)

// Handler 輸出 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
