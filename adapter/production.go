package adapter

import (
	"bytes"
	"context"
	"encoding/json"

	"lemonworks/client/api"
	"lemonworks/domain"
)

const (
	PathOrders            = "/orders"
	PathCurrentProduction = "/production/current"
	PathStartProduction   = "/production/start"
	PathStopProduction    = "/production/stop"
	PathInventoryUpdate   = "/inventory/update"
	PathMetrics           = "/production/metrics"
)

type ProductionAdapter struct {
	client *api.Client
}

func NewProductionAdapter(client *api.Client) *ProductionAdapter {
	return &ProductionAdapter{client: client}
}

// Orders lists production orders. Both a bare array and an {"orders": [...]} envelope are accepted.
func (a *ProductionAdapter) Orders(ctx context.Context) ([]domain.Order, error) {
	var raw json.RawMessage
	if err := a.client.Get(ctx, PathOrders, &raw); err != nil {
		return nil, err
	}
	orders := []domain.Order{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return orders, nil
	}
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &orders); err != nil {
			return nil, invalidResponse(PathOrders, err)
		}
		return orders, nil
	}
	var envelope struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, invalidResponse(PathOrders, err)
	}
	if envelope.Orders != nil {
		orders = envelope.Orders
	}
	return orders, nil
}

func (a *ProductionAdapter) CurrentProduction(ctx context.Context) (*domain.ProductionState, error) {
	s := domain.ProductionState{}
	if err := a.client.Get(ctx, PathCurrentProduction, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *ProductionAdapter) StartProduction(ctx context.Context, orderID domain.ID) error {
	body := map[string]string{"orderId": orderID.String()}
	return a.client.Post(ctx, PathStartProduction, body, nil)
}

func (a *ProductionAdapter) StopProduction(ctx context.Context) error {
	return a.client.Post(ctx, PathStopProduction, struct{}{}, nil)
}

// UpdateInventory asks the server to persist amount and returns the inventory it reports back.
// The server may answer with a bare number or with {"inventory": n}.
func (a *ProductionAdapter) UpdateInventory(ctx context.Context, amount int) (int, error) {
	var raw json.RawMessage
	if err := a.client.Post(ctx, PathInventoryUpdate, map[string]int{"amount": amount}, &raw); err != nil {
		return 0, err
	}
	raw = bytes.TrimSpace(raw)

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var envelope struct {
		Inventory *int `json:"inventory"`
		Amount    *int `json:"amount"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return 0, invalidResponse(PathInventoryUpdate, err)
	}
	switch {
	case envelope.Inventory != nil:
		return *envelope.Inventory, nil
	case envelope.Amount != nil:
		return *envelope.Amount, nil
	}
	return 0, invalidResponse(PathInventoryUpdate, nil)
}

func (a *ProductionAdapter) Metrics(ctx context.Context) (*domain.ProductionMetrics, error) {
	m := domain.ProductionMetrics{}
	if err := a.client.Get(ctx, PathMetrics, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func invalidResponse(path string, cause error) error {
	return &api.Error{Kind: api.KindServer, URL: path, Message: "invalid response from the server", Cause: cause}
}
