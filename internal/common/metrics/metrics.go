// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat messages processed, by resolved intent",
		},
		[]string{"intent"},
	)

	ChatFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_failures_total",
			Help: "Total number of chat messages that degraded to an empty reply",
		},
		[]string{"stage"},
	)

	ChatHandleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_handle_duration_seconds",
			Help: "Duration of message handling in seconds",
		},
		[]string{"intent"},
	)

	ChatRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
