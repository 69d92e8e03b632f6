package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is a supplier catalog entry. PricePerUnit is the current list
// price; orders copy it into their items at creation time rather than
// referencing it live.
type Ingredient struct {
	ID           uint
	SupplierID   uint
	SupplierName string
	Name         string
	Description  string
	Unit         string
	PricePerUnit decimal.Decimal
	CreatedAt    time.Time
}
