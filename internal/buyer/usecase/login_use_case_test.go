package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

// Mock implementations

type mockBuyerRepository struct {
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Buyer, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.Buyer, error)
}

func (m *mockBuyerRepository) FindByID(ctx context.Context, id uint) (*domain.Buyer, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockBuyerRepository) FindByUsername(ctx context.Context, username string) (*domain.Buyer, error) {
	return m.FindByUsernameFunc(ctx, username)
}

type mockTokenBuilder struct {
	BuildTokenFunc func(buyerID uint) (string, error)
}

func (m *mockTokenBuilder) BuildToken(buyerID uint) (string, error) {
	return m.BuildTokenFunc(buyerID)
}

type mockOrderCounter struct {
	CountByBuyerFunc func(ctx context.Context, buyerID uint) (int, error)
}

func (m *mockOrderCounter) CountByBuyer(ctx context.Context, buyerID uint) (int, error) {
	return m.CountByBuyerFunc(ctx, buyerID)
}

func demoBuyer(t *testing.T) *domain.Buyer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	return &domain.Buyer{
		ID:           1,
		Username:     "demo",
		Email:        "demo@opply.com",
		PasswordHash: string(hash),
		CompanyName:  "Demo Buying Co.",
		CreatedAt:    time.Now(),
	}
}

// Tests

func TestLogin_MissingCredentials(t *testing.T) {
	ctx := context.Background()

	uc := NewLoginUseCase(&mockBuyerRepository{}, &mockTokenBuilder{}, zap.NewNop())

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "demo"})

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if ve.Details[0].Field != "password" {
		t.Errorf("expected password detail, got %s", ve.Details[0].Field)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	ctx := context.Background()

	buyerRepo := &mockBuyerRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.Buyer, error) {
			return nil, apperrors.NewNotFoundError("buyer not found")
		},
	}

	uc := NewLoginUseCase(buyerRepo, &mockTokenBuilder{}, zap.NewNop())

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Errorf("expected UnauthorizedError, got %T", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()

	buyer := demoBuyer(t)
	buyerRepo := &mockBuyerRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.Buyer, error) {
			return buyer, nil
		},
	}

	uc := NewLoginUseCase(buyerRepo, &mockTokenBuilder{}, zap.NewNop())

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "demo", Password: "wrong"})

	if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Errorf("expected UnauthorizedError, got %T", err)
	}
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()

	buyer := demoBuyer(t)
	buyerRepo := &mockBuyerRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.Buyer, error) {
			return buyer, nil
		},
	}

	tokens := &mockTokenBuilder{
		BuildTokenFunc: func(buyerID uint) (string, error) {
			if buyerID != buyer.ID {
				t.Errorf("expected token for buyer %d, got %d", buyer.ID, buyerID)
			}
			return "signed-token", nil
		},
	}

	uc := NewLoginUseCase(buyerRepo, tokens, zap.NewNop())

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "demo", Password: "demo1234"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.Token != "signed-token" {
		t.Errorf("expected issued token in response, got %q", resp.Token)
	}
}

func TestGetProfile_CountsOrders(t *testing.T) {
	ctx := context.Background()

	buyer := demoBuyer(t)
	buyerRepo := &mockBuyerRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Buyer, error) {
			return buyer, nil
		},
	}

	orders := &mockOrderCounter{
		CountByBuyerFunc: func(ctx context.Context, buyerID uint) (int, error) {
			return 3, nil
		},
	}

	uc := NewGetProfileUseCase(buyerRepo, orders, zap.NewNop())

	profile, err := uc.GetProfile(ctx, 1)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profile.TotalOrders != 3 {
		t.Errorf("expected 3 total orders, got %d", profile.TotalOrders)
	}

	if profile.CompanyName != "Demo Buying Co." {
		t.Errorf("unexpected company name %q", profile.CompanyName)
	}
}
