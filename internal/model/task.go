package model

import "time"

// Task is the domain model for a single to-do entry.
// Kept minimal on purpose; it’s easy to evolve.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"-"`
}

// Stats counts completed and pending tasks for header rendering.
func Stats(tasks []Task) (completed, pending int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		} else {
			pending++
		}
	}
	return
}
