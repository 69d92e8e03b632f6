package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

type CreateProductUseCase struct {
	db             TransactionManager
	productRepo    ProductRepository
	recipeRepo     ProductIngredientRepository
	ingredientRepo IngredientRepository
	logger         *zap.Logger
}

func NewCreateProductUseCase(
	db TransactionManager,
	productRepo ProductRepository,
	recipeRepo ProductIngredientRepository,
	ingredientRepo IngredientRepository,
	logger *zap.Logger,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		db:             db,
		productRepo:    productRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

// CreateProduct persists a product with its full recipe in one transaction.
func (uc *CreateProductUseCase) CreateProduct(ctx context.Context, buyerID uint, req dto.CreateProductRequest) (*domain.Product, error) {
	if req.Name == "" {
		return nil, apperrors.NewValidationError("name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	quantities, err := parseRecipeInputs(req.Ingredients)
	if err != nil {
		return nil, err
	}

	ingredients, err := resolveIngredients(ctx, uc.ingredientRepo, req.Ingredients)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		BuyerID:     buyerID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := uc.db.BeginTx(ctx, nil)
	if err != nil {
		uc.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	productID, err := uc.productRepo.Insert(ctx, tx, product)
	if err != nil {
		return nil, err
	}
	product.ID = productID

	for i, input := range req.Ingredients {
		line := domain.ProductIngredient{
			ProductID:    productID,
			IngredientID: input.IngredientID,
			Quantity:     quantities[i],
			Ingredient:   ingredients[i],
		}

		lineID, err := uc.recipeRepo.Insert(ctx, tx, line)
		if err != nil {
			return nil, err
		}
		line.ID = lineID

		product.Ingredients = append(product.Ingredients, line)
	}

	if err := tx.Commit(); err != nil {
		uc.logger.Error("failed to commit product creation", zap.Uint("buyerId", buyerID), zap.Error(err))
		return nil, apperrors.NewInternalError("committing product creation", err)
	}

	uc.logger.Info("product created",
		zap.Uint("productId", product.ID),
		zap.Uint("buyerId", buyerID),
		zap.Int("ingredientCount", product.IngredientCount()),
	)

	return product, nil
}
