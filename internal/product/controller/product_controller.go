package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"opply/internal/auth"
	"opply/internal/domain"
	"opply/internal/dto"
	apperrors "opply/internal/errors"
)

type CreateProductUseCase interface {
	CreateProduct(ctx context.Context, buyerID uint, req dto.CreateProductRequest) (*domain.Product, error)
}

type GetProductsUseCase interface {
	List(ctx context.Context, buyerID uint) ([]domain.Product, error)
	Get(ctx context.Context, buyerID, productID uint) (*domain.Product, error)
}

type UpdateProductUseCase interface {
	UpdateProduct(ctx context.Context, buyerID, productID uint, req dto.UpdateProductRequest) (*domain.Product, error)
}

type DeleteProductUseCase interface {
	DeleteProduct(ctx context.Context, buyerID, productID uint) error
}

type ProductController struct {
	createUC CreateProductUseCase
	getUC    GetProductsUseCase
	updateUC UpdateProductUseCase
	deleteUC DeleteProductUseCase
	logger   *zap.Logger
}

func NewProductController(
	createUC CreateProductUseCase,
	getUC GetProductsUseCase,
	updateUC UpdateProductUseCase,
	deleteUC DeleteProductUseCase,
	logger *zap.Logger,
) *ProductController {
	return &ProductController{
		createUC: createUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

func (c *ProductController) HandleList(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := c.buyerID(w, r)
	if !ok {
		return
	}

	products, err := c.getUC.List(r.Context(), buyerID)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	responses := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, dto.NewProductResponse(&products[i]))
	}

	c.writeJSON(w, http.StatusOK, responses)
}

func (c *ProductController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	buyerID, ok := c.buyerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	product, err := c.createUC.CreateProduct(r.Context(), buyerID, req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.NewProductDetailResponse(product))
}

func (c *ProductController) HandleGet(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := c.buyerID(w, r)
	if !ok {
		return
	}

	productID, ok := c.parseProductID(w, r)
	if !ok {
		return
	}

	product, err := c.getUC.Get(r.Context(), buyerID, productID)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewProductDetailResponse(product))
}

func (c *ProductController) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	buyerID, ok := c.buyerID(w, r)
	if !ok {
		return
	}

	productID, ok := c.parseProductID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	product, err := c.updateUC.UpdateProduct(r.Context(), buyerID, productID, req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewProductDetailResponse(product))
}

func (c *ProductController) HandleDelete(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := c.buyerID(w, r)
	if !ok {
		return
	}

	productID, ok := c.parseProductID(w, r)
	if !ok {
		return
	}

	if err := c.deleteUC.DeleteProduct(r.Context(), buyerID, productID); err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *ProductController) buyerID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	buyerID, ok := auth.BuyerIDFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
		return 0, false
	}
	return buyerID, true
}

func (c *ProductController) parseProductID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "productId"), 10, 32)
	if err != nil {
		c.writeValidationError(w, "invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *ProductController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, errorResponse{Error: "NOT_FOUND", Message: nfe.Message})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "INTERNAL_ERROR", Message: "an unexpected error occurred"})
}

func (c *ProductController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *ProductController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
