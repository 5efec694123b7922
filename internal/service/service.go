// Package service is the boundary between transports (HTTP handlers,
// TUI, CLI) and the store. It validates input, translates store
// failures into stable operation-level errors, and can simulate
// network latency for UI demos. Callers never import a store backend
// directly; they hold an API.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/store"
)

// API is the task-operation contract. Implemented locally by *Service
// and remotely by the HTTP client.
type API interface {
	// ListTasks returns every task.
	ListTasks(ctx context.Context) ([]model.Task, error)

	// GetTask returns (nil, nil) when the id is unknown.
	GetTask(ctx context.Context, id string) (*model.Task, error)

	// CreateTask validates title non-empty and stores a new task.
	CreateTask(ctx context.Context, title string) (model.Task, error)

	// ToggleTask flips completion; (nil, nil) when the id is unknown.
	ToggleTask(ctx context.Context, id string) (*model.Task, error)

	// DeleteTask reports whether a task was removed; (false, nil) when
	// the id is unknown.
	DeleteTask(ctx context.Context, id string) (bool, error)
}

// Validation errors, rejected before the store is touched.
var (
	ErrEmptyTitle = errors.New("title must not be empty")
	ErrEmptyID    = errors.New("task id must not be empty")
)

// Operation failures. The storage-level cause is logged, never
// returned; callers see only these.
var (
	ErrFetchFailed  = errors.New("failed to fetch tasks")
	ErrCreateFailed = errors.New("failed to create task")
	ErrUpdateFailed = errors.New("failed to update task")
	ErrDeleteFailed = errors.New("failed to delete task")
)

type Service struct {
	store store.Store
	log   *slog.Logger

	// simulated latency bounds; both zero means no delay
	minDelay, maxDelay time.Duration
}

var _ API = (*Service)(nil)

type Option func(*Service)

// WithLatency makes every operation sleep a uniform random duration in
// [min, max] before hitting the store. Demo mode only.
func WithLatency(min, max time.Duration) Option {
	return func(s *Service) {
		s.minDelay, s.maxDelay = min, max
	}
}

// WithLogger replaces the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func New(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) ListTasks(ctx context.Context) ([]model.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	tasks, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("list tasks", "error", err)
		return nil, ErrFetchFailed
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *Service) GetTask(ctx context.Context, id string) (*model.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	t, err := s.store.Get(ctx, id)
	if err != nil {
		s.log.Error("get task", "id", id, "error", err)
		return nil, ErrFetchFailed
	}
	return t, nil
}

func (s *Service) CreateTask(ctx context.Context, title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	if err := s.delay(ctx); err != nil {
		return model.Task{}, err
	}
	t, err := s.store.Create(ctx, title)
	if err != nil {
		s.log.Error("create task", "error", err)
		return model.Task{}, ErrCreateFailed
	}
	return t, nil
}

func (s *Service) ToggleTask(ctx context.Context, id string) (*model.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	t, err := s.store.ToggleComplete(ctx, id)
	if err != nil {
		s.log.Error("toggle task", "id", id, "error", err)
		return nil, ErrUpdateFailed
	}
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, ErrEmptyID
	}
	if err := s.delay(ctx); err != nil {
		return false, err
	}
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		s.log.Error("delete task", "id", id, "error", err)
		return false, ErrDeleteFailed
	}
	return ok, nil
}

// delay sleeps the configured simulated latency, bailing early if the
// context is canceled.
func (s *Service) delay(ctx context.Context) error {
	if s.maxDelay <= 0 {
		return nil
	}
	d := s.minDelay
	if span := s.maxDelay - s.minDelay; span > 0 {
		d += time.Duration(rand.Int63n(int64(span) + 1))
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
