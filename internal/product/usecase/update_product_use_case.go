package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

type UpdateProductUseCase struct {
	db             TransactionManager
	productRepo    ProductRepository
	recipeRepo     ProductIngredientRepository
	ingredientRepo IngredientRepository
	logger         *zap.Logger
}

func NewUpdateProductUseCase(
	db TransactionManager,
	productRepo ProductRepository,
	recipeRepo ProductIngredientRepository,
	ingredientRepo IngredientRepository,
	logger *zap.Logger,
) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		db:             db,
		productRepo:    productRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

// UpdateProduct applies a partial update. When the request carries an
// ingredients list the whole recipe is replaced in the same transaction as
// the product row; otherwise the recipe is left alone.
func (uc *UpdateProductUseCase) UpdateProduct(ctx context.Context, buyerID, productID uint, req dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := uc.productRepo.FindByID(ctx, productID, buyerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	product.UpdatedAt = time.Now().UTC()

	tx, err := uc.db.BeginTx(ctx, nil)
	if err != nil {
		uc.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := uc.productRepo.Update(ctx, tx, product); err != nil {
		return nil, err
	}

	if req.Ingredients != nil {
		inputs := *req.Ingredients

		parsed, err := parseRecipeInputs(inputs)
		if err != nil {
			return nil, err
		}

		ingredients, err := resolveIngredients(ctx, uc.ingredientRepo, inputs)
		if err != nil {
			return nil, err
		}

		if err := uc.recipeRepo.DeleteByProduct(ctx, tx, productID); err != nil {
			return nil, err
		}

		product.Ingredients = nil
		for i, input := range inputs {
			line := domain.ProductIngredient{
				ProductID:    productID,
				IngredientID: input.IngredientID,
				Quantity:     parsed[i],
				Ingredient:   ingredients[i],
			}

			lineID, err := uc.recipeRepo.Insert(ctx, tx, line)
			if err != nil {
				return nil, err
			}
			line.ID = lineID

			product.Ingredients = append(product.Ingredients, line)
		}
	} else {
		lines, err := uc.recipeRepo.FindByProductID(ctx, productID)
		if err != nil {
			return nil, err
		}
		product.Ingredients = lines
	}

	if err := tx.Commit(); err != nil {
		uc.logger.Error("failed to commit product update", zap.Uint("productId", productID), zap.Error(err))
		return nil, apperrors.NewInternalError("committing product update", err)
	}

	uc.logger.Info("product updated", zap.Uint("productId", productID), zap.Uint("buyerId", buyerID))

	return product, nil
}
