package usecase

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, product *domain.Product) (uint, error)
	FindByID(ctx context.Context, id, buyerID uint) (*domain.Product, error)
	FindByBuyer(ctx context.Context, buyerID uint) ([]domain.Product, error)
	Update(ctx context.Context, tx *sql.Tx, product *domain.Product) error
	Delete(ctx context.Context, id, buyerID uint) error
}

type ProductIngredientRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, line domain.ProductIngredient) (uint, error)
	DeleteByProduct(ctx context.Context, tx *sql.Tx, productID uint) error
	FindByProductID(ctx context.Context, productID uint) ([]domain.ProductIngredient, error)
	FindByProductIDs(ctx context.Context, productIDs []uint) (map[uint][]domain.ProductIngredient, error)
}

type IngredientRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Ingredient, error)
}

// minRecipeQuantity matches the DECIMAL(10,3) resolution of recipe lines.
var minRecipeQuantity = decimal.New(1, -3) // 0.001

// parseRecipeInputs validates recipe lines and parses their quantities into
// exact decimals.
func parseRecipeInputs(inputs []dto.ProductIngredientInput) ([]decimal.Decimal, error) {
	var details []apperrors.ValidationDetail
	quantities := make([]decimal.Decimal, len(inputs))

	for i, input := range inputs {
		if input.IngredientID == 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("ingredients[%d].ingredient_id", i),
				Message: "ingredient_id is required",
			})
		}

		qty, err := decimal.NewFromString(input.Quantity)
		if err != nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("ingredients[%d].quantity", i),
				Message: "quantity must be a decimal number",
			})
			continue
		}

		if qty.LessThan(minRecipeQuantity) {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("ingredients[%d].quantity", i),
				Message: "quantity must be at least 0.001",
			})
			continue
		}

		quantities[i] = qty
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return quantities, nil
}

// resolveIngredients maps recipe inputs to catalog ingredients, turning a
// missing ingredient into a validation rejection before anything persists.
func resolveIngredients(ctx context.Context, repo IngredientRepository, inputs []dto.ProductIngredientInput) ([]*domain.Ingredient, error) {
	ingredients := make([]*domain.Ingredient, len(inputs))
	for i, input := range inputs {
		ing, err := repo.FindByID(ctx, input.IngredientID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				return nil, apperrors.NewValidationError("unknown ingredient", apperrors.ValidationDetail{
					Field:   fmt.Sprintf("ingredients[%d].ingredient_id", i),
					Message: fmt.Sprintf("ingredient with id %d does not exist", input.IngredientID),
				})
			}
			return nil, err
		}
		ingredients[i] = ing
	}
	return ingredients, nil
}
