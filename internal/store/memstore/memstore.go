// Package memstore is the volatile store backend. Everything lives in a
// map guarded by a mutex; contents are lost when the process exits.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/store"
)

type Store struct {
	mu    sync.Mutex
	tasks map[string]model.Task
	order []string // insertion order of ids
	seq   int      // disambiguates ids created in the same millisecond
}

var _ store.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{tasks: make(map[string]model.Task)}
}

// NewSeeded returns a store pre-populated with the example tasks.
func NewSeeded() *Store {
	s := New()
	for _, t := range store.SeedTasks {
		t.CreatedAt = time.Now()
		s.tasks[t.ID] = t
		s.order = append(s.order, t.ID)
	}
	return s
}

func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *Store) Create(ctx context.Context, title string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := model.Task{
		ID:        s.nextID(),
		Title:     title,
		Completed: false,
		CreatedAt: time.Now(),
	}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	return t, nil
}

func (s *Store) ToggleComplete(ctx context.Context, id string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	t.Completed = !t.Completed
	s.tasks[id] = t
	return &t, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *Store) Close() error { return nil }

// nextID mints a task-<epoch-millis> id. Two creates inside the same
// millisecond get a counter suffix so ids stay unique. Caller holds mu.
func (s *Store) nextID() string {
	id := fmt.Sprintf("task-%d", time.Now().UnixMilli())
	if _, taken := s.tasks[id]; taken {
		s.seq++
		id = fmt.Sprintf("%s-%d", id, s.seq)
	}
	return id
}
