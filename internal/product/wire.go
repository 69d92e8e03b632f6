package product

import (
	"database/sql"

	"go.uber.org/zap"

	ingredientrepo "opply/internal/ingredient/repository"
	"opply/internal/product/controller"
	"opply/internal/product/repository"
	"opply/internal/product/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ProductController {
	productRepo := repository.NewMySQLProductRepository(db)
	recipeRepo := repository.NewMySQLProductIngredientRepository(db)
	ingredientRepo := ingredientrepo.NewMySQLIngredientRepository(db)

	createUC := usecase.NewCreateProductUseCase(db, productRepo, recipeRepo, ingredientRepo, logger)
	getUC := usecase.NewGetProductsUseCase(productRepo, recipeRepo, logger)
	updateUC := usecase.NewUpdateProductUseCase(db, productRepo, recipeRepo, ingredientRepo, logger)
	deleteUC := usecase.NewDeleteProductUseCase(productRepo, logger)

	return controller.NewProductController(createUC, getUC, updateUC, deleteUC, logger)
}
