package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"opply/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error) {
	query := `INSERT INTO order_items (order_id, ingredient_id, quantity, unit_price) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		item.OrderID, item.IngredientID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

const orderItemSelect = `
	SELECT
		oi.id, oi.order_id, oi.ingredient_id, oi.quantity, oi.unit_price,
		i.id, i.supplier_id, s.name, i.name, i.description, i.unit, i.price_per_unit, i.created_at
	FROM order_items oi
	JOIN ingredients i ON i.id = oi.ingredient_id
	JOIN suppliers s ON s.id = i.supplier_id
`

func scanOrderItem(rows *sql.Rows) (domain.OrderItem, error) {
	var item domain.OrderItem
	var ing domain.Ingredient

	err := rows.Scan(
		&item.ID, &item.OrderID, &item.IngredientID, &item.Quantity, &item.UnitPrice,
		&ing.ID, &ing.SupplierID, &ing.SupplierName, &ing.Name, &ing.Description,
		&ing.Unit, &ing.PricePerUnit, &ing.CreatedAt,
	)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("scanning order item: %w", err)
	}

	item.Ingredient = &ing
	return item, nil
}

func (r *MySQLOrderItemRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	query := orderItemSelect + ` WHERE oi.order_id = ? ORDER BY oi.id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}

// FindByOrderIDs loads the items of several orders at once, grouped by order
// ID, so listings avoid a query per order.
func (r *MySQLOrderItemRepository) FindByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error) {
	grouped := map[uint][]domain.OrderItem{}
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	placeholders := strings.Repeat("?,", len(orderIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := orderItemSelect + ` WHERE oi.order_id IN (` + placeholders + `) ORDER BY oi.order_id, oi.id`

	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return grouped, nil
}
