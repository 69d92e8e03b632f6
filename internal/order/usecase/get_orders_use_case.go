package usecase

import (
	"context"

	"go.uber.org/zap"

	"opply/internal/domain"
)

type GetOrdersUseCase struct {
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
}

func NewGetOrdersUseCase(
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
) *GetOrdersUseCase {
	return &GetOrdersUseCase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
	}
}

// List returns the requesting buyer's orders with items attached. Orders of
// other buyers are never visible here.
func (uc *GetOrdersUseCase) List(ctx context.Context, buyerID uint) ([]domain.Order, error) {
	orders, err := uc.orderRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]uint, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	itemsByOrder, err := uc.orderItemRepo.FindByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}

	return orders, nil
}

func (uc *GetOrdersUseCase) Get(ctx context.Context, buyerID, orderID uint) (*domain.Order, error) {
	order, err := uc.orderRepo.FindByID(ctx, orderID, buyerID)
	if err != nil {
		return nil, err
	}

	items, err := uc.orderItemRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}
