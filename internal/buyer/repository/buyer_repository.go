package repository

import (
	"context"
	"database/sql"
	"fmt"

	"opply/internal/domain"
	"opply/internal/errors"
)

type MySQLBuyerRepository struct {
	db *sql.DB
}

func NewMySQLBuyerRepository(db *sql.DB) *MySQLBuyerRepository {
	return &MySQLBuyerRepository{db: db}
}

const buyerSelect = `
	SELECT id, username, email, password_hash, company_name, created_at
	FROM buyers
`

func (r *MySQLBuyerRepository) FindByID(ctx context.Context, id uint) (*domain.Buyer, error) {
	var b domain.Buyer
	err := r.db.QueryRowContext(ctx, buyerSelect+` WHERE id = ?`, id).Scan(
		&b.ID, &b.Username, &b.Email, &b.PasswordHash, &b.CompanyName, &b.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("buyer with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying buyer by id: %w", err)
	}

	return &b, nil
}

func (r *MySQLBuyerRepository) FindByUsername(ctx context.Context, username string) (*domain.Buyer, error) {
	var b domain.Buyer
	err := r.db.QueryRowContext(ctx, buyerSelect+` WHERE username = ?`, username).Scan(
		&b.ID, &b.Username, &b.Email, &b.PasswordHash, &b.CompanyName, &b.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("buyer %q not found", username))
	}
	if err != nil {
		return nil, fmt.Errorf("querying buyer by username: %w", err)
	}

	return &b, nil
}

func (r *MySQLBuyerRepository) Insert(ctx context.Context, b *domain.Buyer) (uint, error) {
	query := `
		INSERT INTO buyers (username, email, password_hash, company_name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		b.Username, b.Email, b.PasswordHash, b.CompanyName, b.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting buyer: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLBuyerRepository) UpdatePasswordHash(ctx context.Context, id uint, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE buyers SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating buyer password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("buyer with id %d not found", id))
	}

	return nil
}
