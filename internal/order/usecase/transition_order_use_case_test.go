package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"opply/internal/domain"
	apperrors "opply/internal/errors"
)

func TestTransition_UnknownStatusLabel(t *testing.T) {
	ctx := context.Background()

	findCalled := false
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id, buyerID uint) (*domain.Order, error) {
			findCalled = true
			return nil, nil
		},
	}

	uc := NewTransitionOrderUseCase(orderRepo, &mockOrderItemRepository{}, zap.NewNop())

	_, err := uc.Transition(ctx, 1, 1, "ARCHIVED")

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if ve.Details[0].Field != "status" {
		t.Errorf("expected status detail, got %s", ve.Details[0].Field)
	}

	if findCalled {
		t.Errorf("expected no repository access for an unknown label")
	}
}

func TestTransition_LowercaseLabelRejected(t *testing.T) {
	ctx := context.Background()

	uc := NewTransitionOrderUseCase(&mockOrderRepository{}, &mockOrderItemRepository{}, zap.NewNop())

	_, err := uc.Transition(ctx, 1, 1, "confirmed")

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError for lowercase label, got %T", err)
	}
}

func TestTransition_OrderNotFound(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id, buyerID uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}

	uc := NewTransitionOrderUseCase(orderRepo, &mockOrderItemRepository{}, zap.NewNop())

	_, err := uc.Transition(ctx, 1, 42, "CONFIRMED")

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestTransition_InvalidTransition(t *testing.T) {
	ctx := context.Background()

	updateCalled := false
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id, buyerID uint) (*domain.Order, error) {
			return &domain.Order{ID: id, BuyerID: buyerID, Status: domain.OrderStatusConfirmed}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id, buyerID uint, from, to domain.OrderStatus, updatedAt time.Time) error {
			updateCalled = true
			return nil
		},
	}

	uc := NewTransitionOrderUseCase(orderRepo, &mockOrderItemRepository{}, zap.NewNop())

	_, err := uc.Transition(ctx, 1, 1, "DELIVERED")

	ite, ok := apperrors.IsInvalidTransitionError(err)
	if !ok {
		t.Fatalf("expected InvalidTransitionError, got %T", err)
	}

	if ite.From != "CONFIRMED" || ite.To != "DELIVERED" {
		t.Errorf("expected CONFIRMED -> DELIVERED in error, got %s -> %s", ite.From, ite.To)
	}

	if updateCalled {
		t.Errorf("expected no status update for a rejected transition")
	}
}

func TestTransition_TerminalOrder(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id, buyerID uint) (*domain.Order, error) {
			return &domain.Order{ID: id, BuyerID: buyerID, Status: domain.OrderStatusCancelled}, nil
		},
	}

	uc := NewTransitionOrderUseCase(orderRepo, &mockOrderItemRepository{}, zap.NewNop())

	_, err := uc.Transition(ctx, 1, 1, "PENDING")

	if _, ok := apperrors.IsInvalidTransitionError(err); !ok {
		t.Errorf("expected InvalidTransitionError from a terminal status, got %T", err)
	}
}

func TestTransition_Success(t *testing.T) {
	ctx := context.Background()

	var recordedFrom, recordedTo domain.OrderStatus
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id, buyerID uint) (*domain.Order, error) {
			return &domain.Order{ID: id, BuyerID: buyerID, Status: domain.OrderStatusPending}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id, buyerID uint, from, to domain.OrderStatus, updatedAt time.Time) error {
			recordedFrom = from
			recordedTo = to
			return nil
		},
	}

	orderItemRepo := &mockOrderItemRepository{
		FindByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
			return []domain.OrderItem{{OrderID: orderID, Quantity: 2}}, nil
		},
	}

	uc := NewTransitionOrderUseCase(orderRepo, orderItemRepo, zap.NewNop())

	order, err := uc.Transition(ctx, 1, 7, "CONFIRMED")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if order.Status != domain.OrderStatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", order.Status)
	}

	if recordedFrom != domain.OrderStatusPending || recordedTo != domain.OrderStatusConfirmed {
		t.Errorf("expected guarded update PENDING -> CONFIRMED, got %s -> %s", recordedFrom, recordedTo)
	}

	if len(order.Items) != 1 {
		t.Errorf("expected items reloaded, got %d", len(order.Items))
	}
}

func TestTransition_ConcurrentConflict(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id, buyerID uint) (*domain.Order, error) {
			return &domain.Order{ID: id, BuyerID: buyerID, Status: domain.OrderStatusPending}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id, buyerID uint, from, to domain.OrderStatus, updatedAt time.Time) error {
			// Another request already moved the order.
			return apperrors.NewConflictError("order status changed concurrently")
		},
	}

	uc := NewTransitionOrderUseCase(orderRepo, &mockOrderItemRepository{}, zap.NewNop())

	_, err := uc.Transition(ctx, 1, 1, "CONFIRMED")

	if _, ok := apperrors.IsConflictError(err); !ok {
		t.Errorf("expected ConflictError, got %T", err)
	}
}
