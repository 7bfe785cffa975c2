package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"brewline/internal/domain"
	apperrors "brewline/internal/errors"
	"brewline/internal/identity"
	"brewline/internal/infrastructure/metrics"
)

type OrderStore interface {
	Create(ctx context.Context, order domain.Order) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	UpdateFeedback(ctx context.Context, id string, rating int, comment string) error
}

type NotificationSink interface {
	OnOrderCreated(text string)
	OnOrderCompleted(text string)
}

// LifecycleUseCase owns the order state machine. Every write goes through
// the store; the reconciler event is emitted only after the store ack, so a
// failed write leaves no notification behind.
type LifecycleUseCase struct {
	store         OrderStore
	notifications NotificationSink
	logger        *zap.Logger
}

func NewLifecycleUseCase(store OrderStore, notifications NotificationSink, logger *zap.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{
		store:         store,
		notifications: notifications,
		logger:        logger,
	}
}

func (uc *LifecycleUseCase) PlaceOrder(
	ctx context.Context,
	userID string,
	itemName string,
	cupSize string,
	sugarLevel string,
	quantity int,
	orderType string,
) (string, error) {
	if err := validatePlaceOrder(itemName, quantity, orderType); err != nil {
		return "", err
	}

	if strings.TrimSpace(userID) == "" {
		userID = identity.UnknownUser
	}
	if strings.TrimSpace(cupSize) == "" {
		cupSize = domain.SelectorNotApplicable
	}
	if strings.TrimSpace(sugarLevel) == "" {
		sugarLevel = domain.SelectorNotApplicable
	}

	order := domain.Order{
		UserID:        userID,
		ItemName:      itemName,
		CupSize:       cupSize,
		SugarLevel:    sugarLevel,
		Quantity:      quantity,
		OrderType:     orderType,
		Status:        domain.OrderStatusPending,
		FeedbackGiven: false,
	}

	id, err := uc.store.Create(ctx, order)
	if err != nil {
		uc.logger.Error("placing order failed", zap.String("userId", userID), zap.Error(err))
		return "", apperrors.NewInternalError("persisting order", err)
	}

	uc.notifications.OnOrderCreated(order.NotificationText())
	metrics.OrdersPlaced.Inc()

	uc.logger.Info("order placed",
		zap.String("orderId", id),
		zap.String("userId", userID),
		zap.String("itemName", itemName),
		zap.Int("quantity", quantity),
		zap.String("orderType", orderType),
	)

	return id, nil
}

// CompleteOrder marks an order Completed. Completing an already-completed
// order is a no-op success: the status overwrite carries the same value and
// no reconciler event fires.
func (uc *LifecycleUseCase) CompleteOrder(ctx context.Context, orderID string) error {
	order, err := uc.store.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !domain.CanTransition(order.Status, domain.OrderStatusCompleted) {
		return apperrors.NewInternalError("order in unknown status "+order.Status, nil)
	}

	alreadyCompleted := order.Status == domain.OrderStatusCompleted

	if err := uc.store.UpdateStatus(ctx, orderID, domain.OrderStatusCompleted); err != nil {
		uc.logger.Error("completing order failed", zap.String("orderId", orderID), zap.Error(err))
		return apperrors.NewInternalError("updating order status", err)
	}

	// Notification identity is the formatted string, so duplicates across
	// orders are legitimate. A repeated completion must not emit a second
	// removal or it would strip another pending order's entry.
	if !alreadyCompleted {
		uc.notifications.OnOrderCompleted(order.NotificationText())
		metrics.OrdersCompleted.Inc()
	}

	uc.logger.Info("order completed", zap.String("orderId", orderID))
	return nil
}

// RecordFeedback is writable any time after creation; the flow does not gate
// it on completion. Last write wins.
func (uc *LifecycleUseCase) RecordFeedback(ctx context.Context, orderID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return apperrors.NewValidationError("invalid rating", apperrors.ValidationDetail{
			Field:   "rating",
			Message: "rating must be between 1 and 5",
		})
	}

	if _, err := uc.store.FindByID(ctx, orderID); err != nil {
		return err
	}

	if err := uc.store.UpdateFeedback(ctx, orderID, rating, comment); err != nil {
		uc.logger.Error("recording feedback failed", zap.String("orderId", orderID), zap.Error(err))
		return apperrors.NewInternalError("updating order feedback", err)
	}

	metrics.FeedbackRecorded.Inc()

	uc.logger.Info("feedback recorded", zap.String("orderId", orderID), zap.Int("rating", rating))
	return nil
}

func validatePlaceOrder(itemName string, quantity int, orderType string) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(itemName) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "itemName",
			Message: "itemName is required",
		})
	}

	if quantity < 1 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}

	if !domain.ValidOrderType(orderType) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "orderType",
			Message: "orderType must be Delivery or OnSite",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid order", details...)
	}

	return nil
}
