// Package store defines the persistence contract for tasks.
// Two backends implement it: memstore (volatile) and sqlstore (SQLite).
package store

import (
	"context"

	"github.com/idilsaglam/taskboard/internal/model"
)

// Store owns the authoritative task collection.
//
// "Not found" is not an error at this layer: Get and ToggleComplete
// return a nil Task, Delete returns false. A non-nil error always means
// the backing engine failed, never that an id was unknown.
type Store interface {
	// List returns every stored task in insertion/storage order.
	List(ctx context.Context) ([]model.Task, error)

	// Get looks up a task by id. Returns (nil, nil) when absent.
	Get(ctx context.Context, id string) (*model.Task, error)

	// Create stores a new task with Completed=false and a fresh id.
	// Title validation is the caller's job; the store accepts any string.
	Create(ctx context.Context, title string) (model.Task, error)

	// ToggleComplete flips the completed flag and returns the updated
	// record, or (nil, nil) when the id is unknown. Read-then-write;
	// last write wins under concurrent toggles of the same id.
	ToggleComplete(ctx context.Context, id string) (*model.Task, error)

	// Delete removes a task. Reports whether a removal occurred.
	Delete(ctx context.Context, id string) (bool, error)

	// Close releases the backing engine.
	Close() error
}

// SeedTasks are the example rows installed into an empty store at first
// startup so the UI has something to show.
var SeedTasks = []model.Task{
	{ID: "task-1", Title: "Complete project documentation", Completed: false},
	{ID: "task-2", Title: "Review pull requests", Completed: true},
	{ID: "task-3", Title: "Fix UI bugs in dashboard", Completed: false},
	{ID: "task-4", Title: "Prepare for team meeting", Completed: false},
	{ID: "task-5", Title: "Update dependencies", Completed: true},
}
