package production

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	ProgressStep = 5
	ProgressFull = 100

	DefaultTickInterval = 50 * time.Millisecond
)

// Handle cancels a running simulation. Cancel does not wait, Done closes once the loop exited.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (h *Handle) Cancel() {
	h.cancel()
}

func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Simulator fills a local progress bar while production runs and commits one unit each time
// the bar completes. It approximates server side progress, the server stays authoritative.
//
// Ticks are sequential. The inventory confirmation of a unit is not awaited before the next
// tick, so several confirmations may be in flight at once and the store keeps the last answer.
type Simulator struct {
	store    *Store
	interval time.Duration

	onError    func(error)
	onProgress func(int)

	mu       sync.Mutex
	progress int
	gen      uint64
	failed   bool
	halt     context.CancelFunc
	inflight sync.WaitGroup
}

type SimulatorOption func(*Simulator)

func WithTickInterval(d time.Duration) SimulatorOption {
	return func(s *Simulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithErrorReporter receives every failure that halted the simulation.
func WithErrorReporter(f func(error)) SimulatorOption {
	return func(s *Simulator) {
		s.onError = f
	}
}

// WithProgressListener is called after every progress change.
func WithProgressListener(f func(int)) SimulatorOption {
	return func(s *Simulator) {
		s.onProgress = f
	}
}

func NewSimulator(store *Store, opts ...SimulatorOption) *Simulator {
	s := &Simulator{store: store, interval: DefaultTickInterval}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Start begins ticking until the returned handle is cancelled, ctx ends, production stops
// or a failure halts the run.
func (s *Simulator) Start(ctx context.Context) *Handle {
	runCtx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.failed = false
	s.halt = cancel
	s.mu.Unlock()

	go func() {
		defer close(h.done)
		defer cancel()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if !s.tick(runCtx, gen) {
					return
				}
			}
		}
	}()
	return h
}

// Tick runs one step synchronously and reports whether the simulation should keep going.
func (s *Simulator) Tick(ctx context.Context) bool {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()
	return s.tick(ctx, gen)
}

// Wait blocks until every inventory confirmation already fired has returned.
func (s *Simulator) Wait() {
	s.inflight.Wait()
}

func (s *Simulator) tick(ctx context.Context, gen uint64) bool {
	snap := s.store.Snapshot()
	if !snap.IsProducing || snap.CurrentOrder == nil {
		return false
	}

	s.mu.Lock()
	if s.failed || gen != s.gen {
		s.mu.Unlock()
		return false
	}
	if s.progress < ProgressFull {
		s.progress += ProgressStep
		progress := s.progress
		s.mu.Unlock()
		s.notifyProgress(progress)
		return true
	}
	s.mu.Unlock()

	// The unit about to finish is the last one: complete instead of counting it.
	if snap.ProducedAmount+1 >= snap.CurrentOrder.Quantity {
		err := s.store.CompleteOrder(ctx)
		s.resetProgress()
		if err != nil {
			s.fail(gen, err)
		}
		return false
	}

	s.inflight.Add(1)
	go func(reqCtx context.Context) {
		defer s.inflight.Done()
		if err := s.store.IncrementInventory(reqCtx); err != nil {
			s.fail(gen, err)
		}
	}(context.WithoutCancel(ctx))
	s.store.IncrementProducedAmount()
	s.resetProgress()
	return true
}

func (s *Simulator) resetProgress() {
	s.mu.Lock()
	s.progress = 0
	s.mu.Unlock()
	s.notifyProgress(0)
}

func (s *Simulator) notifyProgress(progress int) {
	if s.onProgress != nil {
		s.onProgress(progress)
	}
}

// fail halts the run of generation gen: no more ticks, error reported, production stopped.
func (s *Simulator) fail(gen uint64, err error) {
	s.mu.Lock()
	if gen != s.gen || s.failed {
		s.mu.Unlock()
		logrus.WithError(err).Warn("simulation failure after the run was already halted")
		if s.onError != nil {
			s.onError(err)
		}
		return
	}
	s.failed = true
	halt := s.halt
	s.mu.Unlock()

	if halt != nil {
		halt()
	}
	logrus.WithError(err).Error("production simulation halted")
	if s.onError != nil {
		s.onError(err)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if stopErr := s.store.StopProduction(stopCtx); stopErr != nil {
		logrus.WithError(stopErr).Error("could not stop production after simulation failure, halting locally")
		s.store.SetIsProducing(false)
	}
}
