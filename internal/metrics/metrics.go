package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Realtime session metrics
var (
	TurnsAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callcenter_turns_accepted_total",
			Help: "Total number of turns accepted by the session router",
		},
		[]string{"role"},
	)

	AnalysisRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callcenter_analysis_requests_total",
			Help: "Analysis requests by outcome",
		},
		[]string{"trigger", "outcome"}, // trigger: manual/live, outcome: started/coalesced/rejected
	)

	AnalysisResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callcenter_analysis_results_total",
			Help: "Completed analyses by outcome",
		},
		[]string{"outcome"}, // applied/stale/failed
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "callcenter_scoring_duration_seconds",
			Help:    "Scoring engine call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~1min
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "callcenter_active_sessions",
			Help: "Sessions with a running sequencer",
		},
	)

	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "callcenter_active_connections",
			Help: "Open websocket connections",
		},
	)

	DroppedFrames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callcenter_dropped_frames_total",
			Help: "Inbound frames rejected by the codec",
		},
		[]string{"side"}, // router/client
	)
)
