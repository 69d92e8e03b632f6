package repository

import (
	"context"
	"database/sql"
	"fmt"

	"opply/internal/domain"
	"opply/internal/errors"
)

type MySQLIngredientRepository struct {
	db *sql.DB
}

func NewMySQLIngredientRepository(db *sql.DB) *MySQLIngredientRepository {
	return &MySQLIngredientRepository{db: db}
}

const ingredientSelect = `
	SELECT i.id, i.supplier_id, s.name, i.name, i.description, i.unit, i.price_per_unit, i.created_at
	FROM ingredients i
	JOIN suppliers s ON s.id = i.supplier_id
`

func scanIngredient(scan func(dest ...interface{}) error) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := scan(
		&ing.ID, &ing.SupplierID, &ing.SupplierName, &ing.Name,
		&ing.Description, &ing.Unit, &ing.PricePerUnit, &ing.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *MySQLIngredientRepository) FindAll(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, ingredientSelect+` ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	return collectIngredients(rows)
}

func (r *MySQLIngredientRepository) FindBySupplier(ctx context.Context, supplierID uint) ([]domain.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, ingredientSelect+` WHERE i.supplier_id = ? ORDER BY i.id`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients by supplier: %w", err)
	}
	defer rows.Close()

	return collectIngredients(rows)
}

func (r *MySQLIngredientRepository) FindByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	row := r.db.QueryRowContext(ctx, ingredientSelect+` WHERE i.id = ?`, id)

	ing, err := scanIngredient(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ingredient with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying ingredient by id: %w", err)
	}

	return ing, nil
}

// FindBySupplierAndName supports idempotent seeding.
func (r *MySQLIngredientRepository) FindBySupplierAndName(ctx context.Context, supplierID uint, name string) (*domain.Ingredient, error) {
	row := r.db.QueryRowContext(ctx, ingredientSelect+` WHERE i.supplier_id = ? AND i.name = ?`, supplierID, name)

	ing, err := scanIngredient(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ingredient %q not found for supplier %d", name, supplierID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying ingredient by name: %w", err)
	}

	return ing, nil
}

func (r *MySQLIngredientRepository) Insert(ctx context.Context, ing *domain.Ingredient) (uint, error) {
	query := `
		INSERT INTO ingredients (supplier_id, name, description, unit, price_per_unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		ing.SupplierID, ing.Name, ing.Description, ing.Unit, ing.PricePerUnit, ing.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting ingredient: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func collectIngredients(rows *sql.Rows) ([]domain.Ingredient, error) {
	ingredients := []domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		ingredients = append(ingredients, *ing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredients: %w", err)
	}

	return ingredients, nil
}
