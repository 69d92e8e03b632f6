package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

type CreateOrderUseCase struct {
	db             TransactionManager
	orderRepo      OrderRepository
	orderItemRepo  OrderItemRepository
	ingredientRepo IngredientRepository
	logger         *zap.Logger
}

func NewCreateOrderUseCase(
	db TransactionManager,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	ingredientRepo IngredientRepository,
	logger *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		db:             db,
		orderRepo:      orderRepo,
		orderItemRepo:  orderItemRepo,
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

// CreateOrder creates a PENDING order with its full item set in one
// transaction. Each item snapshots the ingredient's current price; an
// unknown ingredient aborts the whole creation.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, buyerID uint, req dto.CreateOrderRequest) (*domain.Order, error) {
	if err := validateCreateOrderRequest(req); err != nil {
		return nil, err
	}

	ingredients := make([]*domain.Ingredient, len(req.Items))
	for i, item := range req.Items {
		ing, err := uc.ingredientRepo.FindByID(ctx, item.IngredientID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				return nil, apperrors.NewValidationError("unknown ingredient", apperrors.ValidationDetail{
					Field:   fmt.Sprintf("items[%d].ingredient_id", i),
					Message: fmt.Sprintf("ingredient with id %d does not exist", item.IngredientID),
				})
			}
			return nil, err
		}
		ingredients[i] = ing
	}

	now := time.Now().UTC()
	order := domain.NewOrder(buyerID, now)

	tx, err := uc.db.BeginTx(ctx, nil)
	if err != nil {
		uc.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Rollback is a no-op after a successful commit.
	defer tx.Rollback()

	orderID, err := uc.orderRepo.Insert(ctx, tx, order)
	if err != nil {
		return nil, err
	}
	order.ID = orderID

	for i, reqItem := range req.Items {
		item := domain.OrderItem{
			OrderID:      orderID,
			IngredientID: reqItem.IngredientID,
			Quantity:     reqItem.Quantity,
			UnitPrice:    ingredients[i].PricePerUnit,
			Ingredient:   ingredients[i],
		}

		itemID, err := uc.orderItemRepo.Insert(ctx, tx, item)
		if err != nil {
			return nil, err
		}
		item.ID = itemID

		order.Items = append(order.Items, item)
	}

	if err := tx.Commit(); err != nil {
		uc.logger.Error("failed to commit order creation", zap.Uint("buyerId", buyerID), zap.Error(err))
		return nil, apperrors.NewInternalError("committing order creation", err)
	}

	uc.logger.Info("order created",
		zap.Uint("orderId", order.ID),
		zap.Uint("buyerId", buyerID),
		zap.Int("itemCount", order.ItemCount()),
		zap.String("totalAmount", order.Total().StringFixed(2)),
	)

	return order, nil
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for i, item := range req.Items {
		if item.IngredientID == 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].ingredient_id", i),
				Message: "ingredient_id is required",
			})
		}

		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
