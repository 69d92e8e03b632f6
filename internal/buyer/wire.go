package buyer

import (
	"database/sql"

	"go.uber.org/zap"

	"opply/internal/auth"
	"opply/internal/buyer/controller"
	"opply/internal/buyer/repository"
	"opply/internal/buyer/usecase"
	orderrepo "opply/internal/order/repository"
)

func NewModule(db *sql.DB, tokens *auth.TokenManager, logger *zap.Logger) *controller.BuyerController {
	buyerRepo := repository.NewMySQLBuyerRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)

	loginUC := usecase.NewLoginUseCase(buyerRepo, tokens, logger)
	profileUC := usecase.NewGetProfileUseCase(buyerRepo, orderRepo, logger)

	return controller.NewBuyerController(loginUC, profileUC, logger)
}
