package notification

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"brewline/internal/dto"
)

type Controller struct {
	reconciler *Reconciler
	logger     *zap.Logger
}

func NewController(reconciler *Reconciler, logger *zap.Logger) *Controller {
	return &Controller{
		reconciler: reconciler,
		logger:     logger,
	}
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	resp := dto.NotificationsResponse{
		HasUnread:     c.reconciler.HasUnread(),
		Notifications: c.reconciler.Snapshot(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
