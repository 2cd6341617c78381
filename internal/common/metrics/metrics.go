// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_messages_total",
			Help: "Total number of chat messages resolved",
		},
		[]string{"intent", "language"},
	)

	ActionDispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_action_dispatches_total",
			Help: "Total number of confirmed actions dispatched to the backend",
		},
		[]string{"action", "outcome"},
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chatbot_resolution_duration_seconds",
			Help: "Duration of chat message resolution in seconds",
		},
		[]string{"intent"},
	)

	UserDataFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_user_data_fetches_total",
			Help: "Total number of user data fetches by result",
		},
		[]string{"result"},
	)
)
