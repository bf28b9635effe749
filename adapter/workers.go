package adapter

import (
	"context"
	"net/url"

	"lemonworks/client/api"
	"lemonworks/domain"
)

const PathWorkers = "/workers"

type WorkersAdapter struct {
	client *api.Client
}

func NewWorkersAdapter(client *api.Client) *WorkersAdapter {
	return &WorkersAdapter{client: client}
}

func workerPath(id domain.ID) string {
	return PathWorkers + "/" + url.PathEscape(id.String())
}

func (a *WorkersAdapter) Workers(ctx context.Context) ([]domain.Worker, error) {
	workers := []domain.Worker{}
	if err := a.client.Get(ctx, PathWorkers, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func (a *WorkersAdapter) Worker(ctx context.Context, id domain.ID) (*domain.Worker, error) {
	w := domain.Worker{}
	if err := a.client.Get(ctx, workerPath(id), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (a *WorkersAdapter) CreateWorker(ctx context.Context, c domain.WorkerCreation) (*domain.Worker, error) {
	w := domain.Worker{}
	if err := a.client.Post(ctx, PathWorkers, c, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (a *WorkersAdapter) UpdateWorker(ctx context.Context, id domain.ID, patch domain.WorkerPatch) (*domain.Worker, error) {
	w := domain.Worker{}
	if err := a.client.Put(ctx, workerPath(id), patch, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (a *WorkersAdapter) DeleteWorker(ctx context.Context, id domain.ID) error {
	return a.client.Delete(ctx, workerPath(id), nil)
}
