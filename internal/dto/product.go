package dto

import "time"

type ProductIngredientInput struct {
	IngredientID uint   `json:"ingredient_id"`
	Quantity     string `json:"quantity"`
}

type CreateProductRequest struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Ingredients []ProductIngredientInput `json:"ingredients"`
}

// UpdateProductRequest carries partial updates. A nil Ingredients leaves the
// recipe unchanged; a non-nil one replaces it wholesale.
type UpdateProductRequest struct {
	Name        *string                   `json:"name"`
	Description *string                   `json:"description"`
	Ingredients *[]ProductIngredientInput `json:"ingredients"`
}

type ProductResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	IngredientCount int       `json:"ingredient_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type ProductDetailResponse struct {
	ProductResponse
	Ingredients []ProductIngredientResponse `json:"ingredients"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

type ProductIngredientResponse struct {
	Ingredient IngredientResponse `json:"ingredient"`
	Quantity   string             `json:"quantity"`
}
