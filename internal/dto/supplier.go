package dto

import "time"

type SupplierResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	IngredientCount int       `json:"ingredient_count"`
}
