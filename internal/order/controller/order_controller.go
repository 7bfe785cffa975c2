package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"brewline/internal/dto"
	apperrors "brewline/internal/errors"
	"brewline/internal/identity"
)

type LifecycleUseCase interface {
	PlaceOrder(ctx context.Context, userID, itemName, cupSize, sugarLevel string, quantity int, orderType string) (string, error)
	CompleteOrder(ctx context.Context, orderID string) error
	RecordFeedback(ctx context.Context, orderID string, rating int, comment string) error
}

type OrderController struct {
	useCase  LifecycleUseCase
	identity identity.Resolver
	logger   *zap.Logger
}

func NewOrderController(useCase LifecycleUseCase, resolver identity.Resolver, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase:  useCase,
		identity: resolver,
		logger:   logger,
	}
}

func (c *OrderController) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	userID := c.identity.CurrentUser(r)

	orderID, err := c.useCase.PlaceOrder(r.Context(), userID, req.ItemName, req.CupSize, req.SugarLevel, req.Quantity, req.OrderType)
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.PlaceOrderResponse{OrderID: orderID})
}

func (c *OrderController) HandleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderId")

	if err := c.useCase.CompleteOrder(r.Context(), orderID); err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"status": "Completed"})
}

func (c *OrderController) HandleRecordFeedback(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderId")

	var req dto.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.useCase.RecordFeedback(r.Context(), orderID, req.Rating, req.Comment); err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *OrderController) writeError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": nfe.Message,
		})
		return
	}
	if _, ok := apperrors.IsUnavailableError(err); ok {
		logger.Warn("dependency unavailable", zap.Error(err))
		c.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "UNAVAILABLE",
			"message": "service temporarily unavailable",
		})
		return
	}

	logger.Error("order operation failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
