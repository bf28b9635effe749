package production

import (
	"context"
	"errors"
	"sync"
	"time"

	"lemonworks/client/api"
	"lemonworks/domain"
	"lemonworks/event"

	"github.com/sirupsen/logrus"
)

const (
	EventSourceView        = "PRODUCTION_VIEW"
	EventCategoryViewState = "VIEW_CHANGED"

	DefaultMinLoadingDelay = 800 * time.Millisecond
)

type OrderSource interface {
	Orders(ctx context.Context) ([]domain.Order, error)
}

// ViewModel is everything the production screen renders.
type ViewModel struct {
	State              domain.ProductionState `json:"state"`
	Progress           int                    `json:"progress"`
	Loading            bool                   `json:"loading"`
	BackendUnavailable bool                   `json:"backendUnavailable"`
	CanToggle          bool                   `json:"canToggle"`
	Error              string                 `json:"error,omitempty"`
	Orders             []domain.Order         `json:"orders"`
}

type ViewOptions struct {
	TickInterval    time.Duration
	MinLoadingDelay time.Duration
}

// View owns the simulator lifecycle: a simulation runs exactly while the view is mounted,
// production is on and an order is selected.
type View struct {
	store      *Store
	orders     OrderSource
	sim        *Simulator
	minLoading time.Duration
	bus        *event.Bus

	mu                 sync.Mutex
	mounted            bool
	loading            bool
	backendUnavailable bool
	errorMessage       string
	orderList          []domain.Order
	handle             *Handle
	unsubscribe        func()
}

func NewView(store *Store, orders OrderSource, opts ViewOptions) *View {
	v := &View{
		store:      store,
		orders:     orders,
		minLoading: opts.MinLoadingDelay,
		bus:        event.NewBus(),
		orderList:  []domain.Order{},
	}
	v.sim = NewSimulator(store,
		WithTickInterval(opts.TickInterval),
		WithErrorReporter(v.reportError),
		WithProgressListener(func(int) { v.changed() }),
	)
	return v
}

func (v *View) Store() *Store {
	return v.store
}

func (v *View) Simulator() *Simulator {
	return v.sim
}

// Subscribe is notified whenever the view model may have changed.
func (v *View) Subscribe(handler event.EventHandler) func() {
	return v.bus.Subscribe(handler)
}

// Mount loads production state, metrics and orders concurrently and keeps the loading flag on
// for at least the minimum delay. Load failures are rendered, not returned.
func (v *View) Mount(ctx context.Context) error {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return nil
	}
	v.mounted = true
	v.loading = true
	v.mu.Unlock()

	unsubscribe := v.store.Subscribe(func(e *event.EventRecord) *event.EventHandleResult {
		v.reconcile()
		v.changed()
		return nil
	})
	v.mu.Lock()
	v.unsubscribe = unsubscribe
	v.mu.Unlock()
	v.changed()

	minDelay := time.NewTimer(v.minLoading)
	defer minDelay.Stop()

	v.load(ctx)

	select {
	case <-minDelay.C:
	case <-ctx.Done():
	}

	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()
	v.reconcile()
	v.changed()
	return ctx.Err()
}

// Refresh reloads everything Mount loads, without the loading delay.
func (v *View) Refresh(ctx context.Context) {
	v.load(ctx)
	v.reconcile()
	v.changed()
}

func (v *View) load(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		err := v.store.FetchCurrentProduction(ctx)
		v.mu.Lock()
		v.backendUnavailable = err != nil
		v.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		if err := v.store.FetchMetrics(ctx); err != nil {
			logrus.WithError(err).Warn("production metrics unavailable")
		}
	}()
	go func() {
		defer wg.Done()
		orders, err := v.orders.Orders(ctx)
		if err != nil {
			logrus.WithError(err).Error("error fetching orders")
			v.reportError(err)
			return
		}
		v.mu.Lock()
		v.orderList = orders
		v.mu.Unlock()
	}()
	wg.Wait()
}

// Unmount tears the simulation down. In-flight requests are left to finish on their own.
func (v *View) Unmount() {
	v.mu.Lock()
	v.mounted = false
	handle := v.handle
	v.handle = nil
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if handle != nil {
		handle.Cancel()
		<-handle.Done()
	}
}

func (v *View) SelectOrder(orderID domain.ID) error {
	order, err := v.findOrder(orderID)
	if err != nil {
		return v.reject(err)
	}
	if v.store.Snapshot().IsProducing {
		return v.reject(api.Invalid(domain.ErrProductionActive))
	}
	if !order.Selectable() {
		return v.reject(api.Invalid(domain.ErrOrderNotSelectable))
	}
	v.clearError()
	v.store.SetCurrentOrder(&order)
	return nil
}

// StartProduction starts the selected order. Without a selection no request is issued.
func (v *View) StartProduction(ctx context.Context) error {
	if v.isBackendUnavailable() {
		return v.reject(api.Invalid(domain.ErrBackendUnavailable))
	}
	snap := v.store.Snapshot()
	if snap.CurrentOrder == nil {
		return v.reject(api.Invalid(domain.ErrOrderSelectionRequired))
	}
	if snap.IsProducing {
		return nil
	}
	v.clearError()
	if err := v.store.StartProduction(ctx, snap.CurrentOrder.ID); err != nil {
		v.reportError(err)
		return err
	}
	return nil
}

// ContinueProduction resumes an order the server already has in progress.
func (v *View) ContinueProduction(ctx context.Context, orderID domain.ID) error {
	order, err := v.findOrder(orderID)
	if err != nil {
		return v.reject(err)
	}
	if !order.Resumable() {
		return v.reject(api.Invalid(domain.ErrOrderNotResumable))
	}
	if err := v.SelectOrder(orderID); err != nil {
		return err
	}
	return v.StartProduction(ctx)
}

func (v *View) StopProduction(ctx context.Context) error {
	if v.isBackendUnavailable() {
		return v.reject(api.Invalid(domain.ErrBackendUnavailable))
	}
	v.clearError()
	if err := v.store.StopProduction(ctx); err != nil {
		v.reportError(err)
		return err
	}
	return nil
}

func (v *View) DismissError() {
	v.clearError()
	v.changed()
}

func (v *View) ViewModel() ViewModel {
	state := v.store.Snapshot()
	progress := v.sim.Progress()

	v.mu.Lock()
	defer v.mu.Unlock()
	return ViewModel{
		State:              state,
		Progress:           progress,
		Loading:            v.loading,
		BackendUnavailable: v.backendUnavailable,
		CanToggle:          !v.backendUnavailable && !v.loading && state.CurrentOrder != nil,
		Error:              v.errorMessage,
		Orders:             append([]domain.Order{}, v.orderList...),
	}
}

// reconcile starts or cancels the simulation to match the store. It must not be called with
// v.mu held by the caller.
func (v *View) reconcile() {
	state := v.store.Snapshot()

	v.mu.Lock()
	if v.handle != nil && v.handle.finished() {
		v.handle = nil
	}
	active := v.mounted && !v.loading && state.IsProducing && state.CurrentOrder != nil
	var stale *Handle
	switch {
	case active && v.handle == nil:
		v.handle = v.sim.Start(context.Background())
	case !active && v.handle != nil:
		stale = v.handle
		v.handle = nil
	}
	v.mu.Unlock()

	if stale != nil {
		stale.Cancel()
	}
}

func (v *View) findOrder(orderID domain.ID) (domain.Order, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, o := range v.orderList {
		if o.ID == orderID {
			return o, nil
		}
	}
	return domain.Order{}, api.Invalid(domain.ErrNotFound)
}

func (v *View) isBackendUnavailable() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.backendUnavailable
}

func (v *View) reject(err error) error {
	v.reportError(err)
	return err
}

func (v *View) reportError(err error) {
	message := err.Error()
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	}
	v.mu.Lock()
	v.errorMessage = message
	v.mu.Unlock()
	v.changed()
}

func (v *View) clearError() {
	v.mu.Lock()
	v.errorMessage = ""
	v.mu.Unlock()
}

func (v *View) changed() {
	v.bus.Publish(event.NewEventRecord(EventSourceView, "", EventCategoryViewState))
}
