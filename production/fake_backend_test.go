package production_test

import (
	"context"
	"sync"

	"lemonworks/client/api"
	"lemonworks/domain"
)

var errBoom = &api.Error{Kind: api.KindServer, StatusCode: 500, Message: "boom"}

// fakeBackend is an in-memory production backend with switchable failures.
type fakeBackend struct {
	mu sync.Mutex

	current domain.ProductionState
	metrics domain.ProductionMetrics
	orders  []domain.Order

	inventory int

	currentErr, metricsErr, ordersErr error
	startErr, stopErr, updateErr      error

	startCalls  []domain.ID
	stopCalls   int
	updateCalls []int

	// when set, UpdateInventory blocks until released
	gate chan struct{}
}

func (b *fakeBackend) CurrentProduction(ctx context.Context) (*domain.ProductionState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.currentErr != nil {
		return nil, b.currentErr
	}
	s := b.current.Clone()
	return &s, nil
}

func (b *fakeBackend) Metrics(ctx context.Context) (*domain.ProductionMetrics, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.metricsErr != nil {
		return nil, b.metricsErr
	}
	m := b.metrics
	return &m, nil
}

func (b *fakeBackend) Orders(ctx context.Context) ([]domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ordersErr != nil {
		return nil, b.ordersErr
	}
	return append([]domain.Order{}, b.orders...), nil
}

func (b *fakeBackend) StartProduction(ctx context.Context, orderID domain.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.startCalls = append(b.startCalls, orderID)
	return b.startErr
}

func (b *fakeBackend) StopProduction(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopCalls++
	return b.stopErr
}

func (b *fakeBackend) UpdateInventory(ctx context.Context, amount int) (int, error) {
	b.mu.Lock()
	gate := b.gate
	b.updateCalls = append(b.updateCalls, amount)
	b.mu.Unlock()

	if gate != nil {
		<-gate
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.updateErr != nil {
		return 0, b.updateErr
	}
	b.inventory = amount
	return b.inventory, nil
}

func (b *fakeBackend) counts() (starts, stops, updates int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.startCalls), b.stopCalls, len(b.updateCalls)
}

func (b *fakeBackend) set(f func(b *fakeBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f(b)
}
