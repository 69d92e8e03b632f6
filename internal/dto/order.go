package dto

import "time"

type CreateOrderItem struct {
	IngredientID uint `json:"ingredient_id"`
	Quantity     int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

type TransitionOrderRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID          uint      `json:"id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ItemCount   int       `json:"item_count"`
	TotalAmount string    `json:"total_amount"`
}

type OrderDetailResponse struct {
	OrderResponse
	Items     []OrderItemResponse `json:"items"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type OrderItemResponse struct {
	Ingredient IngredientResponse `json:"ingredient"`
	Quantity   int                `json:"quantity"`
	UnitPrice  string             `json:"unit_price"`
	LineTotal  string             `json:"line_total"`
}
