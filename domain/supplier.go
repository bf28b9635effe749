package domain

import "github.com/shopspring/decimal"

type SupplierIngredient struct {
	IngredientID   int             `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
}

type Supplier struct {
	ID          int                  `json:"id"`
	Name        string               `json:"name"`
	Contact     string               `json:"contact"`
	Ingredients []SupplierIngredient `json:"ingredients"`
}

// CatalogueValue is the sum of quantity times price over the supplier's ingredients.
func (s *Supplier) CatalogueValue() decimal.Decimal {
	total := decimal.Zero
	for _, ing := range s.Ingredients {
		total = total.Add(ing.Price.Mul(decimal.NewFromInt(int64(ing.Quantity))))
	}
	return total
}
