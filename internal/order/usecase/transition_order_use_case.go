package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"opply/internal/domain"
	apperrors "opply/internal/errors"
)

type TransitionOrderUseCase struct {
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
}

func NewTransitionOrderUseCase(
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
) *TransitionOrderUseCase {
	return &TransitionOrderUseCase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
	}
}

// Transition moves an order to the target status if the lifecycle table
// allows it. Unrecognized labels are rejected before the state machine is
// consulted; a rejected transition leaves the stored order untouched.
func (uc *TransitionOrderUseCase) Transition(ctx context.Context, buyerID, orderID uint, statusLabel string) (*domain.Order, error) {
	target, err := domain.ParseOrderStatus(statusLabel)
	if err != nil {
		return nil, apperrors.NewValidationError("unknown status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("%q is not a valid order status", statusLabel),
		})
	}

	order, err := uc.orderRepo.FindByID(ctx, orderID, buyerID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	now := time.Now().UTC()

	if err := order.TransitionTo(target, now); err != nil {
		uc.logger.Warn("transition rejected",
			zap.Uint("orderId", orderID),
			zap.String("from", from.String()),
			zap.String("to", target.String()),
		)
		return nil, err
	}

	// The update is guarded by the status we read; a concurrent transition
	// makes it match zero rows and surface as a conflict.
	if err := uc.orderRepo.UpdateStatus(ctx, orderID, buyerID, from, target, now); err != nil {
		return nil, err
	}

	uc.logger.Info("order transitioned",
		zap.Uint("orderId", orderID),
		zap.String("from", from.String()),
		zap.String("to", target.String()),
	)

	items, err := uc.orderItemRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}
