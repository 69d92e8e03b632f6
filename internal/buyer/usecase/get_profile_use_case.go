package usecase

import (
	"context"

	"go.uber.org/zap"

	"opply/internal/dto"
)

type OrderCounter interface {
	CountByBuyer(ctx context.Context, buyerID uint) (int, error)
}

type GetProfileUseCase struct {
	buyerRepo BuyerRepository
	orders    OrderCounter
	logger    *zap.Logger
}

func NewGetProfileUseCase(buyerRepo BuyerRepository, orders OrderCounter, logger *zap.Logger) *GetProfileUseCase {
	return &GetProfileUseCase{
		buyerRepo: buyerRepo,
		orders:    orders,
		logger:    logger,
	}
}

func (uc *GetProfileUseCase) GetProfile(ctx context.Context, buyerID uint) (*dto.BuyerProfileResponse, error) {
	buyer, err := uc.buyerRepo.FindByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	totalOrders, err := uc.orders.CountByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	return &dto.BuyerProfileResponse{
		ID:          buyer.ID,
		CompanyName: buyer.CompanyName,
		Username:    buyer.Username,
		Email:       buyer.Email,
		TotalOrders: totalOrders,
	}, nil
}
