package supplier

import (
	"database/sql"

	"go.uber.org/zap"

	ingredientrepo "opply/internal/ingredient/repository"
	"opply/internal/supplier/controller"
	"opply/internal/supplier/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.SupplierController {
	supplierRepo := repository.NewMySQLSupplierRepository(db)
	ingredientRepo := ingredientrepo.NewMySQLIngredientRepository(db)
	return controller.NewSupplierController(supplierRepo, ingredientRepo, logger)
}
