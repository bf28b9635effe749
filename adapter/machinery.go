package adapter

import (
	"context"
	"net/url"
	"strconv"

	"lemonworks/client/api"
	"lemonworks/domain"
)

const (
	PathProductionLines = "/production_lines"
	PathMachines        = "/machines"
)

type MachineryAdapter struct {
	client *api.Client
}

func NewMachineryAdapter(client *api.Client) *MachineryAdapter {
	return &MachineryAdapter{client: client}
}

func (a *MachineryAdapter) ProductionLines(ctx context.Context) ([]domain.ProductionLine, error) {
	lines := []domain.ProductionLine{}
	if err := a.client.Get(ctx, PathProductionLines, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (a *MachineryAdapter) WorkersByMachine(ctx context.Context, machineID int) ([]domain.LineWorker, error) {
	workers := []domain.LineWorker{}
	path := PathMachines + "/" + url.PathEscape(strconv.Itoa(machineID)) + "/workers"
	if err := a.client.Get(ctx, path, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}
