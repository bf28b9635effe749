package adapter

import (
	"context"

	"lemonworks/client/api"
	"lemonworks/domain"
)

const PathSuppliers = "/suppliers"

type SuppliersAdapter struct {
	client *api.Client
}

func NewSuppliersAdapter(client *api.Client) *SuppliersAdapter {
	return &SuppliersAdapter{client: client}
}

func (a *SuppliersAdapter) Suppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{}
	if err := a.client.Get(ctx, PathSuppliers, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}
