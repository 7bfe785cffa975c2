package order

import (
	"database/sql"

	"go.uber.org/zap"

	"brewline/internal/identity"
	"brewline/internal/notification"
	"brewline/internal/order/controller"
	"brewline/internal/order/repository"
	"brewline/internal/order/store"
	"brewline/internal/order/usecase"
)

type Module struct {
	Store      *store.Store
	UseCase    *usecase.LifecycleUseCase
	Controller *controller.OrderController
	Live       *controller.LiveController
}

func NewModule(db *sql.DB, reconciler *notification.Reconciler, resolver identity.Resolver, logger *zap.Logger) *Module {
	orderRepo := repository.NewMySQLOrderRepository(db)
	orderStore := store.New(orderRepo, logger)
	lifecycle := usecase.NewLifecycleUseCase(orderStore, reconciler, logger)

	return &Module{
		Store:      orderStore,
		UseCase:    lifecycle,
		Controller: controller.NewOrderController(lifecycle, resolver, logger),
		Live:       controller.NewLiveController(orderStore, logger),
	}
}
