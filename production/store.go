package production

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"lemonworks/domain"
	"lemonworks/event"

	"github.com/sirupsen/logrus"
)

const SourceType = "PRODUCTION"

// Backend is the slice of the remote API the store mediates.
type Backend interface {
	CurrentProduction(ctx context.Context) (*domain.ProductionState, error)
	Metrics(ctx context.Context) (*domain.ProductionMetrics, error)
	StartProduction(ctx context.Context, orderID domain.ID) error
	StopProduction(ctx context.Context) error
	UpdateInventory(ctx context.Context, amount int) (int, error)
}

// Store is the single source of truth for production state. State only changes through its
// methods and every change is published on the store's bus after the lock is released.
//
// Invariants kept by every method:
//   - no current order implies producedAmount == 0
//   - producedAmount never exceeds the current order quantity
type Store struct {
	backend Backend
	bus     *event.Bus

	mu    sync.RWMutex
	state domain.ProductionState
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend, bus: event.NewBus()}
}

func (s *Store) Snapshot() domain.ProductionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers a change handler and returns its unsubscribe function.
func (s *Store) Subscribe(handler event.EventHandler) func() {
	return s.bus.Subscribe(handler)
}

func (s *Store) FetchCurrentProduction(ctx context.Context) error {
	current, err := s.backend.CurrentProduction(ctx)
	if err != nil {
		logrus.WithError(err).Error("error fetching production")
		return err
	}
	next := current.Clone()
	if next.CurrentOrder == nil && next.ProducedAmount != 0 {
		logrus.Warnf("server reported produced amount %d without a current order, resetting it", next.ProducedAmount)
		next.ProducedAmount = 0
	}
	if next.ProducedAmount < 0 {
		next.ProducedAmount = 0
	}
	s.update(event.EventCategoryStateChanged, func(st *domain.ProductionState) {
		*st = next
	})
	return nil
}

func (s *Store) FetchMetrics(ctx context.Context) error {
	metrics, err := s.backend.Metrics(ctx)
	if err != nil {
		logrus.WithError(err).Error("error fetching metrics")
		return err
	}
	s.update(event.EventCategoryStateChanged, func(st *domain.ProductionState) {
		st.Metrics = *metrics
	})
	return nil
}

// StartProduction only flips isProducing. The caller selects the order beforehand.
func (s *Store) StartProduction(ctx context.Context, orderID domain.ID) error {
	if err := s.backend.StartProduction(ctx, orderID); err != nil {
		logrus.WithError(err).WithField("orderId", orderID).Error("error starting production")
		return err
	}
	s.update(event.EventCategoryStateChanged, func(st *domain.ProductionState) {
		st.IsProducing = true
	})
	return nil
}

func (s *Store) StopProduction(ctx context.Context) error {
	if err := s.backend.StopProduction(ctx); err != nil {
		logrus.WithError(err).Error("error stopping production")
		return err
	}
	s.update(event.EventCategoryStateChanged, func(st *domain.ProductionState) {
		st.IsProducing = false
	})
	return nil
}

// IncrementInventory asks the server to persist inventory+1 and keeps whatever the server
// answers. Concurrent calls are last-response-wins.
func (s *Store) IncrementInventory(ctx context.Context) error {
	s.mu.RLock()
	requested := s.state.Inventory + 1
	s.mu.RUnlock()

	inventory, err := s.backend.UpdateInventory(ctx, requested)
	if err != nil {
		logrus.WithError(err).Error("error incrementing inventory")
		return err
	}
	s.update(event.EventCategoryUnitProduced, func(st *domain.ProductionState) {
		st.Inventory = inventory
	})
	return nil
}

// IncrementProducedAmount is local only. It never goes past the order quantity.
func (s *Store) IncrementProducedAmount() {
	s.update(event.EventCategoryStateChanged, func(st *domain.ProductionState) {
		if st.CurrentOrder == nil {
			logrus.Warn("ignoring produced amount increment without a current order")
			return
		}
		if st.ProducedAmount >= st.CurrentOrder.Quantity {
			logrus.Warnf("produced amount already reached order quantity %d", st.CurrentOrder.Quantity)
			return
		}
		st.ProducedAmount++
	})
}

// CompleteOrder stops production on the server, then clears the order, resets the produced
// amount and the producing flag in one transition.
func (s *Store) CompleteOrder(ctx context.Context) error {
	if err := s.backend.StopProduction(ctx); err != nil {
		logrus.WithError(err).Error("error stopping production on order completion")
		return err
	}
	s.update(event.EventCategoryOrderCompleted, func(st *domain.ProductionState) {
		st.CurrentOrder = nil
		st.ProducedAmount = 0
		st.IsProducing = false
	})
	return nil
}

// SetCurrentOrder selects an order. Switching to a different order (or to none) resets the
// produced amount in the same transition.
func (s *Store) SetCurrentOrder(order *domain.Order) {
	s.update(event.EventCategoryStateChanged, func(st *domain.ProductionState) {
		if order == nil || st.CurrentOrder == nil || st.CurrentOrder.ID != order.ID {
			st.ProducedAmount = 0
		}
		st.CurrentOrder = order.Clone()
		if st.CurrentOrder != nil && st.ProducedAmount > st.CurrentOrder.Quantity {
			st.ProducedAmount = st.CurrentOrder.Quantity
		}
	})
}

func (s *Store) SetIsProducing(producing bool) {
	s.update(event.EventCategoryStateChanged, func(st *domain.ProductionState) {
		st.IsProducing = producing
	})
}

func (s *Store) SetProducedAmount(amount int) error {
	var err error
	s.update(event.EventCategoryStateChanged, func(st *domain.ProductionState) {
		switch {
		case amount < 0:
			err = fmt.Errorf("produced amount cannot be negative, got %d", amount)
		case st.CurrentOrder == nil && amount != 0:
			err = fmt.Errorf("produced amount must be 0 without a current order, got %d", amount)
		case st.CurrentOrder != nil && amount > st.CurrentOrder.Quantity:
			err = fmt.Errorf("produced amount %d exceeds order quantity %d", amount, st.CurrentOrder.Quantity)
		default:
			st.ProducedAmount = amount
		}
	})
	return err
}

func (s *Store) SetInventory(inventory int) error {
	if inventory < 0 {
		return fmt.Errorf("inventory cannot be negative, got %d", inventory)
	}
	s.update(event.EventCategoryStateChanged, func(st *domain.ProductionState) {
		st.Inventory = inventory
	})
	return nil
}

func (s *Store) update(category event.EventCategory, mutate func(st *domain.ProductionState)) {
	s.mu.Lock()
	before := s.state.Clone()
	mutate(&s.state)
	after := s.state.Clone()
	s.mu.Unlock()

	props := diff(before, after)
	if len(props) == 0 {
		return
	}
	desc := ""
	if after.CurrentOrder != nil {
		desc = after.CurrentOrder.ID.String()
	} else if before.CurrentOrder != nil {
		desc = before.CurrentOrder.ID.String()
	}
	s.bus.Publish(event.NewEventRecord(SourceType, desc, category, props...))
}

func diff(before, after domain.ProductionState) []event.UpdatedProperty {
	props := []event.UpdatedProperty{}
	if before.Inventory != after.Inventory {
		props = append(props, event.UpdatedProperty{PropertyName: "inventory",
			OldValue: strconv.Itoa(before.Inventory), NewValue: strconv.Itoa(after.Inventory)})
	}
	if orderKey(before.CurrentOrder) != orderKey(after.CurrentOrder) {
		props = append(props, event.UpdatedProperty{PropertyName: "currentOrder",
			OldValue: orderKey(before.CurrentOrder), NewValue: orderKey(after.CurrentOrder)})
	}
	if before.IsProducing != after.IsProducing {
		props = append(props, event.UpdatedProperty{PropertyName: "isProducing",
			OldValue: strconv.FormatBool(before.IsProducing), NewValue: strconv.FormatBool(after.IsProducing)})
	}
	if before.ProducedAmount != after.ProducedAmount {
		props = append(props, event.UpdatedProperty{PropertyName: "producedAmount",
			OldValue: strconv.Itoa(before.ProducedAmount), NewValue: strconv.Itoa(after.ProducedAmount)})
	}
	if before.Metrics != after.Metrics {
		props = append(props, event.UpdatedProperty{PropertyName: "metrics",
			OldValue: fmt.Sprintf("%+v", before.Metrics), NewValue: fmt.Sprintf("%+v", after.Metrics)})
	}
	return props
}

func orderKey(o *domain.Order) string {
	if o == nil {
		return ""
	}
	return fmt.Sprintf("%s/%d", o.ID, o.Quantity)
}
