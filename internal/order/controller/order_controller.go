package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"opply/internal/auth"
	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, buyerID uint, req dto.CreateOrderRequest) (*domain.Order, error)
}

type GetOrdersUseCase interface {
	List(ctx context.Context, buyerID uint) ([]domain.Order, error)
	Get(ctx context.Context, buyerID, orderID uint) (*domain.Order, error)
}

type TransitionOrderUseCase interface {
	Transition(ctx context.Context, buyerID, orderID uint, statusLabel string) (*domain.Order, error)
}

type OrderController struct {
	createUC     CreateOrderUseCase
	getUC        GetOrdersUseCase
	transitionUC TransitionOrderUseCase
	logger       *zap.Logger
}

func NewOrderController(
	createUC CreateOrderUseCase,
	getUC GetOrdersUseCase,
	transitionUC TransitionOrderUseCase,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		createUC:     createUC,
		getUC:        getUC,
		transitionUC: transitionUC,
		logger:       logger,
	}
}

func (c *OrderController) HandleList(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := auth.BuyerIDFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
		return
	}

	orders, err := c.getUC.List(r.Context(), buyerID)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	responses := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, dto.NewOrderResponse(&orders[i]))
	}

	c.writeJSON(w, http.StatusOK, responses)
}

func (c *OrderController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	buyerID, ok := auth.BuyerIDFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
		return
	}

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.createUC.CreateOrder(r.Context(), buyerID, req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.NewOrderDetailResponse(order))
}

func (c *OrderController) HandleGet(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := auth.BuyerIDFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
		return
	}

	orderID, err := parseOrderID(r)
	if err != nil {
		c.writeValidationError(w, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return
	}

	order, err := c.getUC.Get(r.Context(), buyerID, orderID)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderDetailResponse(order))
}

func (c *OrderController) HandleTransition(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	buyerID, ok := auth.BuyerIDFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
		return
	}

	orderID, err := parseOrderID(r)
	if err != nil {
		c.writeValidationError(w, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return
	}

	var req dto.TransitionOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Status == "" {
		c.writeValidationError(w, "status is required", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is required",
		})
		return
	}

	order, err := c.transitionUC.Transition(r.Context(), buyerID, orderID, req.Status)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderDetailResponse(order))
}

func parseOrderID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "orderId"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if ite, ok := apperrors.IsInvalidTransitionError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_TRANSITION", Message: ite.Error()})
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, errorResponse{Error: "NOT_FOUND", Message: nfe.Message})
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeJSON(w, http.StatusConflict, errorResponse{Error: "CONFLICT", Message: ce.Message})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "INTERNAL_ERROR", Message: "an unexpected error occurred"})
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
