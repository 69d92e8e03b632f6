package usecase

import (
	"context"

	"go.uber.org/zap"
)

type DeleteProductUseCase struct {
	productRepo ProductRepository
	logger      *zap.Logger
}

func NewDeleteProductUseCase(productRepo ProductRepository, logger *zap.Logger) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (uc *DeleteProductUseCase) DeleteProduct(ctx context.Context, buyerID, productID uint) error {
	if err := uc.productRepo.Delete(ctx, productID, buyerID); err != nil {
		return err
	}

	uc.logger.Info("product deleted", zap.Uint("productId", productID), zap.Uint("buyerId", buyerID))
	return nil
}
