package ingredient

import (
	"database/sql"

	"go.uber.org/zap"

	"opply/internal/ingredient/controller"
	"opply/internal/ingredient/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.IngredientController {
	repo := repository.NewMySQLIngredientRepository(db)
	return controller.NewIngredientController(repo, logger)
}
