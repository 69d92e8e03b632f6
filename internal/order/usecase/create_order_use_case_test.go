package usecase

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

// Mock implementations

type mockTransactionManager struct {
	BeginTxFunc func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTransactionManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFunc(ctx, opts)
}

type mockOrderRepository struct {
	InsertFunc       func(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint, error)
	FindByIDFunc     func(ctx context.Context, id, buyerID uint) (*domain.Order, error)
	FindByBuyerFunc  func(ctx context.Context, buyerID uint) ([]domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id, buyerID uint, from, to domain.OrderStatus, updatedAt time.Time) error
}

func (m *mockOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint, error) {
	return m.InsertFunc(ctx, tx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id, buyerID uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id, buyerID)
}

func (m *mockOrderRepository) FindByBuyer(ctx context.Context, buyerID uint) ([]domain.Order, error) {
	return m.FindByBuyerFunc(ctx, buyerID)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id, buyerID uint, from, to domain.OrderStatus, updatedAt time.Time) error {
	return m.UpdateStatusFunc(ctx, id, buyerID, from, to, updatedAt)
}

type mockOrderItemRepository struct {
	InsertFunc         func(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
	FindByOrderIDFunc  func(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
	FindByOrderIDsFunc func(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error)
}

func (m *mockOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error) {
	return m.InsertFunc(ctx, tx, item)
}

func (m *mockOrderItemRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	return m.FindByOrderIDFunc(ctx, orderID)
}

func (m *mockOrderItemRepository) FindByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error) {
	return m.FindByOrderIDsFunc(ctx, orderIDs)
}

type mockIngredientRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Ingredient, error)
}

func (m *mockIngredientRepository) FindByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	return m.FindByIDFunc(ctx, id)
}

// Tests

func TestCreateOrder_EmptyItems(t *testing.T) {
	ctx := context.Background()

	uc := NewCreateOrderUseCase(
		&mockTransactionManager{},
		&mockOrderRepository{},
		&mockOrderItemRepository{},
		&mockIngredientRepository{},
		zap.NewNop(),
	)

	_, err := uc.CreateOrder(ctx, 1, dto.CreateOrderRequest{Items: nil})

	if err == nil {
		t.Errorf("expected error, got nil")
	}

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if len(ve.Details) != 1 || ve.Details[0].Field != "items" {
		t.Errorf("expected detail for field items, got %+v", ve.Details)
	}
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	ctx := context.Background()

	uc := NewCreateOrderUseCase(
		&mockTransactionManager{},
		&mockOrderRepository{},
		&mockOrderItemRepository{},
		&mockIngredientRepository{},
		zap.NewNop(),
	)

	req := dto.CreateOrderRequest{Items: []dto.CreateOrderItem{
		{IngredientID: 1, Quantity: 0},
		{IngredientID: 0, Quantity: 5},
	}}

	_, err := uc.CreateOrder(ctx, 1, req)

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if len(ve.Details) != 2 {
		t.Errorf("expected 2 validation details, got %d", len(ve.Details))
	}

	if ve.Details[0].Field != "items[0].quantity" {
		t.Errorf("expected items[0].quantity detail, got %s", ve.Details[0].Field)
	}

	if ve.Details[1].Field != "items[1].ingredient_id" {
		t.Errorf("expected items[1].ingredient_id detail, got %s", ve.Details[1].Field)
	}
}

func TestCreateOrder_UnknownIngredient(t *testing.T) {
	ctx := context.Background()

	ingredientRepo := &mockIngredientRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Ingredient, error) {
			return nil, apperrors.NewNotFoundError("ingredient not found")
		},
	}

	beginCalled := false
	txManager := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			beginCalled = true
			return nil, errors.New("should not be reached")
		},
	}

	uc := NewCreateOrderUseCase(
		txManager,
		&mockOrderRepository{},
		&mockOrderItemRepository{},
		ingredientRepo,
		zap.NewNop(),
	)

	req := dto.CreateOrderRequest{Items: []dto.CreateOrderItem{
		{IngredientID: 99, Quantity: 5},
	}}

	_, err := uc.CreateOrder(ctx, 1, req)

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if ve.Details[0].Field != "items[0].ingredient_id" {
		t.Errorf("expected items[0].ingredient_id detail, got %s", ve.Details[0].Field)
	}

	if beginCalled {
		t.Errorf("expected no transaction when an ingredient is unknown")
	}
}

func TestCreateOrder_BeginTxError(t *testing.T) {
	ctx := context.Background()

	price := decimal.RequireFromString("1.85")

	ingredientRepo := &mockIngredientRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Ingredient, error) {
			return &domain.Ingredient{ID: id, PricePerUnit: price}, nil
		},
	}

	txManager := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			return nil, errors.New("connection lost")
		},
	}

	uc := NewCreateOrderUseCase(
		txManager,
		&mockOrderRepository{},
		&mockOrderItemRepository{},
		ingredientRepo,
		zap.NewNop(),
	)

	req := dto.CreateOrderRequest{Items: []dto.CreateOrderItem{
		{IngredientID: 1, Quantity: 50},
	}}

	_, err := uc.CreateOrder(ctx, 1, req)

	if err == nil {
		t.Errorf("expected error when transaction cannot start, got nil")
	}
}
