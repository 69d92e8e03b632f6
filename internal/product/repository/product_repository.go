package repository

import (
	"context"
	"database/sql"
	"fmt"

	"opply/internal/domain"
	"opply/internal/errors"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

func (r *MySQLProductRepository) Insert(ctx context.Context, tx *sql.Tx, product *domain.Product) (uint, error) {
	query := `
		INSERT INTO products (buyer_id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		product.BuyerID, product.Name, product.Description, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// FindByID is buyer-scoped: another buyer's product reads as not found.
func (r *MySQLProductRepository) FindByID(ctx context.Context, id, buyerID uint) (*domain.Product, error) {
	query := `
		SELECT id, buyer_id, name, description, created_at, updated_at
		FROM products
		WHERE id = ? AND buyer_id = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id, buyerID).Scan(
		&p.ID, &p.BuyerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLProductRepository) FindByBuyer(ctx context.Context, buyerID uint) ([]domain.Product, error) {
	query := `
		SELECT id, buyer_id, name, description, created_at, updated_at
		FROM products
		WHERE buyer_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("querying products by buyer: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.BuyerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

func (r *MySQLProductRepository) Update(ctx context.Context, tx *sql.Tx, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, updated_at = ?
		WHERE id = ? AND buyer_id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		product.Name, product.Description, product.UpdatedAt, product.ID, product.BuyerID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", product.ID))
	}

	return nil
}

// Delete removes the product; its recipe rows go with it via the cascading
// foreign key.
func (r *MySQLProductRepository) Delete(ctx context.Context, id, buyerID uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ? AND buyer_id = ?`, id, buyerID)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}
