package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"opply/internal/domain"
	"opply/internal/dto"
)

type IngredientRepository interface {
	FindAll(ctx context.Context) ([]domain.Ingredient, error)
}

type IngredientController struct {
	repo   IngredientRepository
	logger *zap.Logger
}

func NewIngredientController(repo IngredientRepository, logger *zap.Logger) *IngredientController {
	return &IngredientController{
		repo:   repo,
		logger: logger,
	}
}

func (c *IngredientController) HandleList(w http.ResponseWriter, r *http.Request) {
	ingredients, err := c.repo.FindAll(r.Context())
	if err != nil {
		c.logger.Error("listing ingredients failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	responses := make([]dto.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		responses = append(responses, dto.NewIngredientResponse(&ingredients[i]))
	}

	c.writeJSON(w, http.StatusOK, responses)
}

func (c *IngredientController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
