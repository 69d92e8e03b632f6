package domain

import "time"

type Supplier struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time

	// IngredientCount is populated on reads that aggregate the supplier's
	// catalog; it is not a stored column.
	IngredientCount int
}
