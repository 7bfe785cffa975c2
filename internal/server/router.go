package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	chatcontroller "brewline/internal/chat/controller"
	"brewline/internal/notification"
	ordercontroller "brewline/internal/order/controller"
)

func NewRouter(
	orders *ordercontroller.OrderController,
	live *ordercontroller.LiveController,
	notifications *notification.Controller,
	chat *chatcontroller.ChatController,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.HandlePlaceOrder)
			r.Post("/{orderId}/complete", orders.HandleCompleteOrder)
			r.Post("/{orderId}/feedback", orders.HandleRecordFeedback)
		})

		r.Get("/notifications", notifications.HandleList)
		r.Get("/staff/orders/live", live.HandlePendingOrders)
		r.Get("/feedback/live", live.HandleFeedbackOrders)

		r.Route("/chat/sessions", func(r chi.Router) {
			r.Post("/", chat.HandleOpenSession)
			r.Get("/{sessionId}", chat.HandleGetSession)
			r.Post("/{sessionId}/messages", chat.HandleSendMessage)
			r.Delete("/{sessionId}", chat.HandleCloseSession)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
