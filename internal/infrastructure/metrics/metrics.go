package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brewline_orders_placed_total",
		Help: "Orders successfully persisted.",
	})

	OrdersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brewline_orders_completed_total",
		Help: "Staff completion actions acknowledged by the store.",
	})

	FeedbackRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brewline_feedback_recorded_total",
		Help: "Feedback submissions persisted.",
	})

	ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brewline_chat_requests_total",
		Help: "Provider round-trips attempted, by provider.",
	}, []string{"provider"})

	ChatFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brewline_chat_fallbacks_total",
		Help: "Primary replies carrying the fallback sentinel.",
	})
)
