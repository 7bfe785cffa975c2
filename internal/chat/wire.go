package chat

import (
	"go.uber.org/zap"

	"brewline/internal/chat/controller"
	"brewline/internal/chat/gateway"
	"brewline/internal/chat/session"
	"brewline/internal/config"
)

type Module struct {
	Router     *gateway.Router
	Sessions   *session.Manager
	Controller *controller.ChatController
}

func NewModule(cfg config.AIConfig, logger *zap.Logger) *Module {
	primary := gateway.NewPrimaryClient(cfg.PrimaryURL, cfg.ClientTimeout)
	secondary := gateway.NewSecondaryClient(cfg.SecondaryURL, cfg.SecondaryAPIKey, cfg.ClientTimeout)
	router := gateway.NewRouter(primary, secondary, logger)
	sessions := session.NewManager(router, logger)

	return &Module{
		Router:     router,
		Sessions:   sessions,
		Controller: controller.NewChatController(sessions, logger),
	}
}
