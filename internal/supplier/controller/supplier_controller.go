package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

type SupplierRepository interface {
	FindAll(ctx context.Context) ([]domain.Supplier, error)
	FindByID(ctx context.Context, id uint) (*domain.Supplier, error)
}

type IngredientRepository interface {
	FindBySupplier(ctx context.Context, supplierID uint) ([]domain.Ingredient, error)
}

type SupplierController struct {
	supplierRepo   SupplierRepository
	ingredientRepo IngredientRepository
	logger         *zap.Logger
}

func NewSupplierController(
	supplierRepo SupplierRepository,
	ingredientRepo IngredientRepository,
	logger *zap.Logger,
) *SupplierController {
	return &SupplierController{
		supplierRepo:   supplierRepo,
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

func (c *SupplierController) HandleList(w http.ResponseWriter, r *http.Request) {
	suppliers, err := c.supplierRepo.FindAll(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	responses := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, dto.NewSupplierResponse(&suppliers[i]))
	}

	c.writeJSON(w, http.StatusOK, responses)
}

func (c *SupplierController) HandleGet(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := c.parseSupplierID(w, r)
	if !ok {
		return
	}

	supplier, err := c.supplierRepo.FindByID(r.Context(), supplierID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewSupplierResponse(supplier))
}

func (c *SupplierController) HandleListIngredients(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := c.parseSupplierID(w, r)
	if !ok {
		return
	}

	ingredients, err := c.ingredientRepo.FindBySupplier(r.Context(), supplierID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	responses := make([]dto.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		responses = append(responses, dto.NewIngredientResponse(&ingredients[i]))
	}

	c.writeJSON(w, http.StatusOK, responses)
}

func (c *SupplierController) parseSupplierID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "supplierId"), 10, 32)
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "VALIDATION_ERROR",
			"message": "supplierId must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *SupplierController) handleError(w http.ResponseWriter, err error) {
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": nfe.Message,
		})
		return
	}

	c.logger.Error("supplier request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *SupplierController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
