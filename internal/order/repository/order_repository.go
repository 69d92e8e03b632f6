package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"opply/internal/domain"
	"opply/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint, error) {
	query := `INSERT INTO orders (buyer_id, status, created_at, updated_at) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		order.BuyerID, order.Status.String(), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// FindByID is scoped to the owning buyer: an order belonging to another
// buyer reads as not found, never as forbidden.
func (r *MySQLOrderRepository) FindByID(ctx context.Context, id, buyerID uint) (*domain.Order, error) {
	query := `
		SELECT id, buyer_id, status, created_at, updated_at
		FROM orders
		WHERE id = ? AND buyer_id = ?
	`

	var order domain.Order
	var status string
	err := r.db.QueryRowContext(ctx, query, id, buyerID).Scan(
		&order.ID, &order.BuyerID, &status, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("order %d has unknown status %q: %w", order.ID, status, err)
	}
	order.Status = parsed

	return &order, nil
}

func (r *MySQLOrderRepository) FindByBuyer(ctx context.Context, buyerID uint) ([]domain.Order, error) {
	query := `
		SELECT id, buyer_id, status, created_at, updated_at
		FROM orders
		WHERE buyer_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("querying orders by buyer: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		var status string
		if err := rows.Scan(&order.ID, &order.BuyerID, &status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		parsed, err := domain.ParseOrderStatus(status)
		if err != nil {
			return nil, fmt.Errorf("order %d has unknown status %q: %w", order.ID, status, err)
		}
		order.Status = parsed

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus applies a transition as a single optimistic read-modify-write:
// the UPDATE only matches if the stored status still equals the status the
// caller read. Zero affected rows means another transition got there first.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id, buyerID uint, from, to domain.OrderStatus, updatedAt time.Time) error {
	query := `
		UPDATE orders
		SET status = ?, updated_at = ?
		WHERE id = ? AND buyer_id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, to.String(), updatedAt, id, buyerID, from.String())
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewConflictError(fmt.Sprintf("order %d status changed concurrently", id))
	}

	return nil
}

func (r *MySQLOrderRepository) CountByBuyer(ctx context.Context, buyerID uint) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE buyer_id = ?`, buyerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting orders by buyer: %w", err)
	}
	return count, nil
}
