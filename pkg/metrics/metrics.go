package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charchat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "charchat_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	ChatTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charchat_chat_turns_total",
			Help: "Total chat turns processed",
		},
		[]string{"provider", "model"},
	)

	ChatFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charchat_chat_failures_total",
			Help: "Total chat turns that failed",
		},
		[]string{"provider", "reason"},
	)

	LLMLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "charchat_llm_latency_seconds",
			Help:    "External LLM call latency",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	RoomJoins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charchat_room_joins_total",
			Help: "Total room join attempts",
		},
		[]string{"outcome"}, // "ok", "already_member", "bad_password", "full", "inactive", "not_found"
	)

	SessionResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charchat_session_resolutions_total",
			Help: "Total session resolution attempts",
		},
		[]string{"outcome"}, // "ok", "miss", "expired"
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "charchat_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
	)
)
