package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a buyer-owned recipe composed of ingredient quantities.
type Product struct {
	ID          uint
	BuyerID     uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Ingredients []ProductIngredient
}

func (p *Product) IngredientCount() int {
	return len(p.Ingredients)
}

// ProductIngredient is one recipe line. Quantity carries three fractional
// digits since recipe amounts are often sub-unit (e.g. 0.005 litre).
type ProductIngredient struct {
	ID           uint
	ProductID    uint
	IngredientID uint
	Quantity     decimal.Decimal
	Ingredient   *Ingredient
}
