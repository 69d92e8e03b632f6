package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

type BuyerRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Buyer, error)
	FindByUsername(ctx context.Context, username string) (*domain.Buyer, error)
}

type TokenBuilder interface {
	BuildToken(buyerID uint) (string, error)
}

type LoginUseCase struct {
	buyerRepo BuyerRepository
	tokens    TokenBuilder
	logger    *zap.Logger
}

func NewLoginUseCase(buyerRepo BuyerRepository, tokens TokenBuilder, logger *zap.Logger) *LoginUseCase {
	return &LoginUseCase{
		buyerRepo: buyerRepo,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login verifies credentials and issues a bearer token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (uc *LoginUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		var details []apperrors.ValidationDetail
		if req.Username == "" {
			details = append(details, apperrors.ValidationDetail{Field: "username", Message: "username is required"})
		}
		if req.Password == "" {
			details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password is required"})
		}
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	buyer, err := uc.buyerRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(buyer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	token, err := uc.tokens.BuildToken(buyer.ID)
	if err != nil {
		uc.logger.Error("failed to build token", zap.Uint("buyerId", buyer.ID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("buyer logged in", zap.Uint("buyerId", buyer.ID))

	return &dto.LoginResponse{Token: token}, nil
}
