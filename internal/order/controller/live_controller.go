package controller

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"brewline/internal/domain"
	"brewline/internal/dto"
	"brewline/internal/order/store"
)

type Subscriber interface {
	Subscribe(ctx context.Context, filter store.Filter) <-chan []domain.Order
}

// LiveController streams full-collection snapshots over websocket. Every
// frame carries the complete filtered set; clients replace their view, they
// never patch it.
type LiveController struct {
	store    Subscriber
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewLiveController(subscriber Subscriber, logger *zap.Logger) *LiveController {
	return &LiveController{
		store: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger: logger,
	}
}

// HandlePendingOrders is the staff dashboard's live view.
func (c *LiveController) HandlePendingOrders(w http.ResponseWriter, r *http.Request) {
	c.stream(w, r, store.FilterPending)
}

// HandleFeedbackOrders is the analytics view over orders with feedback.
func (c *LiveController) HandleFeedbackOrders(w http.ResponseWriter, r *http.Request) {
	c.stream(w, r, store.FilterFeedbackGiven)
}

type snapshotFrame struct {
	Orders []dto.Order `json:"orders"`
}

func (c *LiveController) stream(w http.ResponseWriter, r *http.Request, filter store.Filter) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The read loop only detects the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	snapshots := c.store.Subscribe(ctx, filter)
	for snap := range snapshots {
		if err := conn.WriteJSON(snapshotFrame{Orders: dto.OrdersFromDomain(snap)}); err != nil {
			c.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}
