// Package sqlstore is the durable store backend, a single SQLite table.
// Writes are serialized by SQLite itself; no extra locking here.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id        TEXT PRIMARY KEY,
	title     TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0
)`

type Store struct {
	db  *sql.DB
	seq int // same-millisecond id disambiguation
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the SQLite file at path, bootstraps
// the schema, and seeds the example rows when the table is empty.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	s := &Store{db: db}
	if err := s.seedIfEmpty(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) seedIfEmpty() error {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&n); err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, t := range store.SeedTasks {
		completed := 0
		if t.Completed {
			completed = 1
		}
		if _, err := s.db.Exec(
			"INSERT INTO tasks (id, title, completed) VALUES (?, ?, ?)",
			t.ID, t.Title, completed,
		); err != nil {
			return fmt.Errorf("seed tasks: %w", err)
		}
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, completed FROM tasks")
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, title, completed FROM tasks WHERE id = ?", id)
	t, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) Create(ctx context.Context, title string) (model.Task, error) {
	t := model.Task{
		ID:        s.nextID(),
		Title:     title,
		Completed: false,
		CreatedAt: time.Now(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks (id, title, completed) VALUES (?, ?, 0)",
		t.ID, t.Title,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *Store) ToggleComplete(ctx context.Context, id string) (*model.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil || t == nil {
		return nil, err
	}
	t.Completed = !t.Completed
	completed := 0
	if t.Completed {
		completed = 1
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET completed = ? WHERE id = ?", completed, id,
	); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) nextID() string {
	id := fmt.Sprintf("task-%d", time.Now().UnixMilli())
	var exists int
	// Collision only possible for creates within the same millisecond.
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tasks WHERE id = ?", id).Scan(&exists); err == nil && exists > 0 {
		s.seq++
		id = fmt.Sprintf("%s-%d", id, s.seq)
	}
	return id
}

func scanTask(scan func(dest ...any) error) (model.Task, error) {
	var t model.Task
	var completed int
	if err := scan(&t.ID, &t.Title, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, err
		}
		return model.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.Completed = completed != 0
	return t, nil
}
