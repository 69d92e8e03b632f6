package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"opply/internal/domain"
)

type MySQLProductIngredientRepository struct {
	db *sql.DB
}

func NewMySQLProductIngredientRepository(db *sql.DB) *MySQLProductIngredientRepository {
	return &MySQLProductIngredientRepository{db: db}
}

func (r *MySQLProductIngredientRepository) Insert(ctx context.Context, tx *sql.Tx, line domain.ProductIngredient) (uint, error) {
	query := `INSERT INTO product_ingredients (product_id, ingredient_id, quantity) VALUES (?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, line.ProductID, line.IngredientID, line.Quantity)
	if err != nil {
		return 0, fmt.Errorf("inserting product ingredient: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// DeleteByProduct clears the recipe ahead of a wholesale replacement.
func (r *MySQLProductIngredientRepository) DeleteByProduct(ctx context.Context, tx *sql.Tx, productID uint) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_ingredients WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("deleting product ingredients: %w", err)
	}
	return nil
}

const productIngredientSelect = `
	SELECT
		pi.id, pi.product_id, pi.ingredient_id, pi.quantity,
		i.id, i.supplier_id, s.name, i.name, i.description, i.unit, i.price_per_unit, i.created_at
	FROM product_ingredients pi
	JOIN ingredients i ON i.id = pi.ingredient_id
	JOIN suppliers s ON s.id = i.supplier_id
`

func scanProductIngredient(rows *sql.Rows) (domain.ProductIngredient, error) {
	var line domain.ProductIngredient
	var ing domain.Ingredient

	err := rows.Scan(
		&line.ID, &line.ProductID, &line.IngredientID, &line.Quantity,
		&ing.ID, &ing.SupplierID, &ing.SupplierName, &ing.Name, &ing.Description,
		&ing.Unit, &ing.PricePerUnit, &ing.CreatedAt,
	)
	if err != nil {
		return domain.ProductIngredient{}, fmt.Errorf("scanning product ingredient: %w", err)
	}

	line.Ingredient = &ing
	return line, nil
}

func (r *MySQLProductIngredientRepository) FindByProductID(ctx context.Context, productID uint) ([]domain.ProductIngredient, error) {
	query := productIngredientSelect + ` WHERE pi.product_id = ? ORDER BY pi.id`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying product ingredients: %w", err)
	}
	defer rows.Close()

	lines := []domain.ProductIngredient{}
	for rows.Next() {
		line, err := scanProductIngredient(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product ingredients: %w", err)
	}

	return lines, nil
}

func (r *MySQLProductIngredientRepository) FindByProductIDs(ctx context.Context, productIDs []uint) (map[uint][]domain.ProductIngredient, error) {
	grouped := map[uint][]domain.ProductIngredient{}
	if len(productIDs) == 0 {
		return grouped, nil
	}

	placeholders := strings.Repeat("?,", len(productIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := productIngredientSelect + ` WHERE pi.product_id IN (` + placeholders + `) ORDER BY pi.product_id, pi.id`

	args := make([]interface{}, len(productIDs))
	for i, id := range productIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying product ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		line, err := scanProductIngredient(rows)
		if err != nil {
			return nil, err
		}
		grouped[line.ProductID] = append(grouped[line.ProductID], line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product ingredients: %w", err)
	}

	return grouped, nil
}
