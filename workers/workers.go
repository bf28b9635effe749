package workers

import (
	"context"
	"strings"

	"lemonworks/client/api"
	"lemonworks/domain"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type Backend interface {
	Workers(ctx context.Context) ([]domain.Worker, error)
	Worker(ctx context.Context, id domain.ID) (*domain.Worker, error)
	CreateWorker(ctx context.Context, c domain.WorkerCreation) (*domain.Worker, error)
	UpdateWorker(ctx context.Context, id domain.ID, patch domain.WorkerPatch) (*domain.Worker, error)
	DeleteWorker(ctx context.Context, id domain.ID) error
}

// Summary holds the personnel counters shown above the list.
type Summary struct {
	Active  int `json:"active"`
	OnBreak int `json:"onBreak"`
	Total   int `json:"total"`
}

type Roster struct {
	Workers []domain.Worker `json:"workers"`
	Summary Summary         `json:"summary"`
}

type Manager struct {
	backend   Backend
	validator *validator.Validate
}

func NewManager(backend Backend) *Manager {
	return &Manager{backend: backend, validator: validator.New()}
}

func (m *Manager) Roster(ctx context.Context) (*Roster, error) {
	workers, err := m.backend.Workers(ctx)
	if err != nil {
		logrus.WithError(err).Error("error loading workers")
		return nil, err
	}
	if workers == nil {
		workers = []domain.Worker{}
	}
	return &Roster{Workers: workers, Summary: Summarize(workers)}, nil
}

func Summarize(workers []domain.Worker) Summary {
	s := Summary{Total: len(workers)}
	for _, w := range workers {
		if w.IsActive {
			s.Active++
		} else {
			s.OnBreak++
		}
	}
	return s
}

func (m *Manager) Detail(ctx context.Context, id domain.ID) (*domain.Worker, error) {
	if id == "" {
		return nil, api.Invalid(domain.ErrNotFound)
	}
	return m.backend.Worker(ctx, id)
}

func (m *Manager) Create(ctx context.Context, c domain.WorkerCreation) (*domain.Worker, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Position = strings.TrimSpace(c.Position)
	if err := m.validator.Struct(c); err != nil {
		return nil, api.Invalid(err)
	}
	w, err := m.backend.CreateWorker(ctx, c)
	if err != nil {
		logrus.WithError(err).Error("error creating worker")
		return nil, err
	}
	return w, nil
}

func (m *Manager) Update(ctx context.Context, id domain.ID, patch domain.WorkerPatch) (*domain.Worker, error) {
	if id == "" {
		return nil, api.Invalid(domain.ErrNotFound)
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.Position != nil {
		position := strings.TrimSpace(*patch.Position)
		patch.Position = &position
	}
	if err := m.validator.Struct(patch); err != nil {
		return nil, api.Invalid(err)
	}
	w, err := m.backend.UpdateWorker(ctx, id, patch)
	if err != nil {
		logrus.WithError(err).WithField("worker", id).Error("error updating worker")
		return nil, err
	}
	return w, nil
}

// SetActive flips a worker between active and on break.
func (m *Manager) SetActive(ctx context.Context, id domain.ID, active bool) (*domain.Worker, error) {
	return m.Update(ctx, id, domain.WorkerPatch{IsActive: &active})
}

func (m *Manager) Delete(ctx context.Context, id domain.ID) error {
	if id == "" {
		return api.Invalid(domain.ErrNotFound)
	}
	if err := m.backend.DeleteWorker(ctx, id); err != nil {
		logrus.WithError(err).WithField("worker", id).Error("error deleting worker")
		return err
	}
	return nil
}
