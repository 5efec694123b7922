package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_AssignsFreshID(t *testing.T) {
	s := New()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		task, err := s.Create(ctx, "same title")
		require.NoError(t, err)
		assert.False(t, task.Completed, "new tasks start pending")
		assert.Equal(t, "same title", task.Title)
		assert.False(t, seen[task.ID], "id %q minted twice", task.ID)
		seen[task.ID] = true
	}
}

func TestToggle_RoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	task, err := s.Create(ctx, "flip me")
	require.NoError(t, err)

	once, err := s.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, once)
	assert.True(t, once.Completed)

	twice, err := s.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, twice)
	assert.False(t, twice.Completed, "toggle twice should restore the original value")
}

func TestToggle_UnknownID(t *testing.T) {
	s := New()
	task, err := s.ToggleComplete(context.Background(), "task-nope")
	require.NoError(t, err)
	assert.Nil(t, task, "unknown id is absent, not an error")
}

func TestDelete_ThenGetAbsent(t *testing.T) {
	s := New()
	ctx := context.Background()

	task, err := s.Create(ctx, "short-lived")
	require.NoError(t, err)

	removed, err := s.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := s.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Second delete of the same id reports false, not an error.
	removed, err = s.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestList_TracksCreatesMinusDeletes(t *testing.T) {
	s := New()
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"one", "two", "three", "four"} {
		task, err := s.Create(ctx, title)
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	_, err := s.Delete(ctx, ids[1])
	require.NoError(t, err)

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	// Insertion order survives the delete.
	assert.Equal(t, "one", tasks[0].Title)
	assert.Equal(t, "three", tasks[1].Title)
	assert.Equal(t, "four", tasks[2].Title)
}

func TestNewSeeded(t *testing.T) {
	s := NewSeeded()
	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}
	assert.Equal(t, 2, completed)
	assert.Equal(t, "task-1", tasks[0].ID)
	assert.Equal(t, "Complete project documentation", tasks[0].Title)
}
