package usecase

import (
	"context"

	"go.uber.org/zap"

	"opply/internal/domain"
)

type GetProductsUseCase struct {
	productRepo ProductRepository
	recipeRepo  ProductIngredientRepository
	logger      *zap.Logger
}

func NewGetProductsUseCase(
	productRepo ProductRepository,
	recipeRepo ProductIngredientRepository,
	logger *zap.Logger,
) *GetProductsUseCase {
	return &GetProductsUseCase{
		productRepo: productRepo,
		recipeRepo:  recipeRepo,
		logger:      logger,
	}
}

func (uc *GetProductsUseCase) List(ctx context.Context, buyerID uint) ([]domain.Product, error) {
	products, err := uc.productRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return products, nil
	}

	productIDs := make([]uint, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	linesByProduct, err := uc.recipeRepo.FindByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i].Ingredients = linesByProduct[products[i].ID]
	}

	return products, nil
}

func (uc *GetProductsUseCase) Get(ctx context.Context, buyerID, productID uint) (*domain.Product, error) {
	product, err := uc.productRepo.FindByID(ctx, productID, buyerID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.recipeRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Ingredients = lines

	return product, nil
}
