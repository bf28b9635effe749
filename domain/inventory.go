package domain

import "github.com/shopspring/decimal"

type ItemType string

const (
	ItemRaw      ItemType = "raw"
	ItemMaterial ItemType = "material"
	ItemProduct  ItemType = "product"
)

func ParseItemType(s string) (ItemType, bool) {
	switch ItemType(s) {
	case ItemRaw, ItemMaterial, ItemProduct:
		return ItemType(s), true
	}
	return "", false
}

type StockStatus string

const (
	StockLow      StockStatus = "low"
	StockModerate StockStatus = "moderate"
	StockOptimal  StockStatus = "optimal"
)

// RemoteItem is a product or an ingredient as listed by the backend.
type RemoteItem struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	AvailableUnits *int   `json:"available_units,omitempty"`
	MaxCapacity    *int   `json:"max_capacity,omitempty"`
	Type           string `json:"type,omitempty"`
}

type InventoryItem struct {
	ID             ID       `json:"id"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	Unit           string   `json:"unit"`
	Min            int      `json:"min"`
	Supplier       string   `json:"supplier"`
	Type           ItemType `json:"type"`
	Kind           string   `json:"kind,omitempty"`
	AvailableUnits *int     `json:"available_units,omitempty"`
}

func (i *InventoryItem) StockStatus() StockStatus {
	if i.Quantity <= i.Min {
		return StockLow
	}
	if i.Quantity <= i.Min*2 {
		return StockModerate
	}
	return StockOptimal
}

// IngredientUpdate is the PUT /ingredients/{id} payload.
type IngredientUpdate struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	AvailableUnits int    `json:"available_units"`
	MaxCapacity    int    `json:"max_capacity"`
	Type           string `json:"type"`
}

// PurchaseRegistration is the POST /ingredients/purchase payload.
type PurchaseRegistration struct {
	Reference    string          `json:"reference"`
	IngredientID ID              `json:"ingredient_id"`
	Name         string          `json:"name"`
	Lots         int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Supplier     string          `json:"supplier,omitempty"`
}
