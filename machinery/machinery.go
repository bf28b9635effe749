package machinery

import (
	"context"
	"fmt"
	"time"

	"lemonworks/client/api"
	"lemonworks/domain"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// LowCapacityThreshold is the liquid capacity under which a line is flagged.
const LowCapacityThreshold = 500

const linesKey = "lines"

type Backend interface {
	ProductionLines(ctx context.Context) ([]domain.ProductionLine, error)
	WorkersByMachine(ctx context.Context, machineID int) ([]domain.LineWorker, error)
}

type Line struct {
	domain.ProductionLine
	Status domain.LineStatus `json:"status"`
}

type Counters struct {
	Operating   int `json:"operating"`
	Stopped     int `json:"stopped"`
	LowCapacity int `json:"lowCapacity"`
}

type Overview struct {
	Lines    []Line   `json:"lines"`
	Counters Counters `json:"counters"`
}

type Manager struct {
	backend Backend
	cache   *cache.Cache
}

func NewManager(backend Backend, ttl time.Duration) *Manager {
	return &Manager{backend: backend, cache: cache.New(ttl, 2*ttl)}
}

func (m *Manager) Overview(ctx context.Context) (*Overview, error) {
	if cached, found := m.cache.Get(linesKey); found {
		return cached.(*Overview), nil
	}
	lines, err := m.backend.ProductionLines(ctx)
	if err != nil {
		logrus.WithError(err).Error("error loading production lines")
		return nil, err
	}

	overview := &Overview{Lines: make([]Line, 0, len(lines)), Counters: Count(lines)}
	for i := range lines {
		l := lines[i]
		if l.Workers == nil {
			l.Workers = []domain.LineWorker{}
		}
		overview.Lines = append(overview.Lines, Line{ProductionLine: l, Status: l.Status()})
	}
	m.cache.SetDefault(linesKey, overview)
	return overview, nil
}

// Count tallies lines. Operating and stopped look at both capacities, so a line with a negative
// capacity is in neither.
func Count(lines []domain.ProductionLine) Counters {
	c := Counters{}
	for _, l := range lines {
		if l.LiquidCapacity > 0 && l.SolidCapacity > 0 {
			c.Operating++
		}
		if l.LiquidCapacity == 0 || l.SolidCapacity == 0 {
			c.Stopped++
		}
		if l.LiquidCapacity < LowCapacityThreshold {
			c.LowCapacity++
		}
	}
	return c
}

func (m *Manager) Workers(ctx context.Context, machineID int) ([]domain.LineWorker, error) {
	if machineID <= 0 {
		return nil, api.NewValidationError("invalid machine id %d", machineID)
	}
	key := fmt.Sprintf("workers/%d", machineID)
	if cached, found := m.cache.Get(key); found {
		return cached.([]domain.LineWorker), nil
	}
	workers, err := m.backend.WorkersByMachine(ctx, machineID)
	if err != nil {
		logrus.WithError(err).WithField("machine", machineID).Error("error loading machine workers")
		return nil, err
	}
	if workers == nil {
		workers = []domain.LineWorker{}
	}
	m.cache.SetDefault(key, workers)
	return workers, nil
}

func (m *Manager) Invalidate() {
	m.cache.Flush()
}
