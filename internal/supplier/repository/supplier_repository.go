package repository

import (
	"context"
	"database/sql"
	"fmt"

	"opply/internal/domain"
	"opply/internal/errors"
)

type MySQLSupplierRepository struct {
	db *sql.DB
}

func NewMySQLSupplierRepository(db *sql.DB) *MySQLSupplierRepository {
	return &MySQLSupplierRepository{db: db}
}

// supplierSelect aggregates the catalog size the way supplier listings
// present it.
const supplierSelect = `
	SELECT s.id, s.name, s.description, s.created_at, COUNT(i.id)
	FROM suppliers s
	LEFT JOIN ingredients i ON i.supplier_id = s.id
`

func (r *MySQLSupplierRepository) FindAll(ctx context.Context) ([]domain.Supplier, error) {
	query := supplierSelect + ` GROUP BY s.id, s.name, s.description, s.created_at ORDER BY s.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		var s domain.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.IngredientCount); err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *MySQLSupplierRepository) FindByID(ctx context.Context, id uint) (*domain.Supplier, error) {
	query := supplierSelect + ` WHERE s.id = ? GROUP BY s.id, s.name, s.description, s.created_at`

	var s domain.Supplier
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.IngredientCount)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("supplier with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying supplier by id: %w", err)
	}

	return &s, nil
}

// FindByName supports idempotent seeding.
func (r *MySQLSupplierRepository) FindByName(ctx context.Context, name string) (*domain.Supplier, error) {
	query := supplierSelect + ` WHERE s.name = ? GROUP BY s.id, s.name, s.description, s.created_at`

	var s domain.Supplier
	err := r.db.QueryRowContext(ctx, query, name).Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.IngredientCount)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("supplier %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying supplier by name: %w", err)
	}

	return &s, nil
}

func (r *MySQLSupplierRepository) Insert(ctx context.Context, s *domain.Supplier) (uint, error) {
	query := `INSERT INTO suppliers (name, description, created_at) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, s.Name, s.Description, s.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting supplier: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}
