package adapter

import (
	"context"
	"net/url"
	"strconv"

	"lemonworks/client/api"
	"lemonworks/domain"
)

const (
	PathProducts           = "/products"
	PathIngredients        = "/ingredients"
	PathIngredientPurchase = "/ingredients/purchase"
	PathProductBatch       = "/products/production"
)

type InventoryAdapter struct {
	client *api.Client
}

func NewInventoryAdapter(client *api.Client) *InventoryAdapter {
	return &InventoryAdapter{client: client}
}

func (a *InventoryAdapter) Products(ctx context.Context) ([]domain.RemoteItem, error) {
	var resp struct {
		Products []domain.RemoteItem `json:"products"`
	}
	if err := a.client.Get(ctx, PathProducts, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (a *InventoryAdapter) Ingredients(ctx context.Context) ([]domain.RemoteItem, error) {
	var resp struct {
		Ingredients []domain.RemoteItem `json:"ingredients"`
	}
	if err := a.client.Get(ctx, PathIngredients, &resp); err != nil {
		return nil, err
	}
	return resp.Ingredients, nil
}

func (a *InventoryAdapter) UpdateIngredient(ctx context.Context, id domain.ID, update domain.IngredientUpdate) error {
	return a.client.Put(ctx, PathIngredients+"/"+url.PathEscape(id.String()), update, nil)
}

func (a *InventoryAdapter) RegisterPurchase(ctx context.Context, purchase domain.PurchaseRegistration) error {
	return a.client.Post(ctx, PathIngredientPurchase, purchase, nil)
}

// RequestProductBatch asks the backend to produce quantity units of a product.
func (a *InventoryAdapter) RequestProductBatch(ctx context.Context, productID, quantity int) error {
	q := url.Values{}
	q.Set("product_id", strconv.Itoa(productID))
	q.Set("quantity", strconv.Itoa(quantity))
	return a.client.Post(ctx, PathProductBatch+"?"+q.Encode(), nil, nil)
}
