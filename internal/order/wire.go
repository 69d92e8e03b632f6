package order

import (
	"database/sql"

	"go.uber.org/zap"

	ingredientrepo "opply/internal/ingredient/repository"
	"opply/internal/order/controller"
	orderrepo "opply/internal/order/repository"
	"opply/internal/order/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	ingredientRepo := ingredientrepo.NewMySQLIngredientRepository(db)

	createUC := usecase.NewCreateOrderUseCase(db, orderRepo, orderItemRepo, ingredientRepo, logger)
	getUC := usecase.NewGetOrdersUseCase(orderRepo, orderItemRepo, logger)
	transitionUC := usecase.NewTransitionOrderUseCase(orderRepo, orderItemRepo, logger)

	return controller.NewOrderController(createUC, getUC, transitionUC, logger)
}
