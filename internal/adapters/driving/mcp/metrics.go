package mcp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// resultOK labels a successful tool call; failures are labelled by error kind.
const resultOK = "ok"

var (
	toolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annotator_tool_calls_total",
			Help: "Total MCP tool calls by tool and result",
		},
		[]string{"tool", "result"},
	)

	toolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "annotator_tool_duration_seconds",
			Help:    "MCP tool call latency in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"tool"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "annotator_http_rate_limited_total",
			Help: "HTTP requests rejected by the rate limiter",
		},
	)
)

func observeToolCall(tool, result string, elapsed time.Duration) {
	toolCalls.WithLabelValues(tool, result).Inc()
	toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
