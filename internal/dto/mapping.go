package dto

import "opply/internal/domain"

func NewIngredientResponse(ing *domain.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:           ing.ID,
		SupplierID:   ing.SupplierID,
		SupplierName: ing.SupplierName,
		Name:         ing.Name,
		Description:  ing.Description,
		Unit:         ing.Unit,
		PricePerUnit: ing.PricePerUnit.StringFixed(2),
	}
}

func NewSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		CreatedAt:       s.CreatedAt,
		IngredientCount: s.IngredientCount,
	}
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		Status:      o.Status.String(),
		CreatedAt:   o.CreatedAt,
		ItemCount:   o.ItemCount(),
		TotalAmount: o.Total().StringFixed(2),
	}
}

func NewOrderDetailResponse(o *domain.Order) OrderDetailResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		resp := OrderItemResponse{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.LineTotal().StringFixed(2),
		}
		if item.Ingredient != nil {
			resp.Ingredient = NewIngredientResponse(item.Ingredient)
		}
		items = append(items, resp)
	}

	return OrderDetailResponse{
		OrderResponse: NewOrderResponse(o),
		Items:         items,
		UpdatedAt:     o.UpdatedAt,
	}
}

func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		IngredientCount: p.IngredientCount(),
		CreatedAt:       p.CreatedAt,
	}
}

func NewProductDetailResponse(p *domain.Product) ProductDetailResponse {
	ingredients := make([]ProductIngredientResponse, 0, len(p.Ingredients))
	for i := range p.Ingredients {
		line := &p.Ingredients[i]
		resp := ProductIngredientResponse{
			Quantity: line.Quantity.StringFixed(3),
		}
		if line.Ingredient != nil {
			resp.Ingredient = NewIngredientResponse(line.Ingredient)
		}
		ingredients = append(ingredients, resp)
	}

	return ProductDetailResponse{
		ProductResponse: NewProductResponse(p),
		Ingredients:     ingredients,
		UpdatedAt:       p.UpdatedAt,
	}
}
