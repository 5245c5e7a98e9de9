package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "libramind_uploads_total",
			Help: "Total PDF upload pipeline runs",
		},
		[]string{"status"},
	)

	summaryFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "libramind_summary_fallback_total",
			Help: "Summaries produced by the extractive fallback instead of the LLM",
		},
	)

	extractionFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "libramind_extraction_placeholder_total",
			Help: "Uploads whose text extraction degraded to the placeholder",
		},
	)

	chatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "libramind_chat_turns_total",
			Help: "Total chat turns handled",
		},
		[]string{"status"},
	)

	uploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "libramind_upload_duration_seconds",
			Help:    "Upload pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// IncUpload records one pipeline run with the given terminal status.
func IncUpload(status string) {
	uploadsTotal.WithLabelValues(status).Inc()
}

// IncSummaryFallback records one fallback summary.
func IncSummaryFallback() {
	summaryFallbackTotal.Inc()
}

// IncExtractionPlaceholder records one degraded extraction.
func IncExtractionPlaceholder() {
	extractionFallbackTotal.Inc()
}

// IncChatTurn records one chat turn with the given terminal status.
func IncChatTurn(status string) {
	chatTurnsTotal.WithLabelValues(status).Inc()
}

// ObserveUploadSeconds records an upload pipeline duration.
func ObserveUploadSeconds(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	uploadDuration.Observe(seconds)
}

// Handler exposes the Prometheus scrape endpoint on a gin route.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
