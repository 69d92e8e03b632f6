package usecase

import (
	"context"
	"database/sql"
	"time"

	"opply/internal/domain"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint, error)
	FindByID(ctx context.Context, id, buyerID uint) (*domain.Order, error)
	FindByBuyer(ctx context.Context, buyerID uint) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, buyerID uint, from, to domain.OrderStatus, updatedAt time.Time) error
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
	FindByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error)
}

type IngredientRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Ingredient, error)
}
