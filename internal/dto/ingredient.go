package dto

// IngredientResponse renders prices as fixed-point decimal strings with two
// fractional digits; binary floats never cross the API boundary.
type IngredientResponse struct {
	ID           uint   `json:"id"`
	SupplierID   uint   `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Unit         string `json:"unit"`
	PricePerUnit string `json:"price_per_unit"`
}
