package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_SeedsEmptyDatabase(t *testing.T) {
	s := openTestStore(t)

	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 5, "fresh database gets the five example rows")

	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}
	assert.Equal(t, 2, completed)
}

func TestOpen_DoesNotReseed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Create(context.Background(), "extra")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopen: the table is non-empty, so no new seed rows appear.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 6)
}

func TestCreate_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	created, err := s.Create(ctx, "survive restart")
	require.NoError(t, err)
	assert.False(t, created.Completed)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "survive restart", got.Title)
}

func TestToggle_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// task-1 is seeded pending.
	once, err := s.ToggleComplete(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, once)
	assert.True(t, once.Completed)

	twice, err := s.ToggleComplete(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, twice)
	assert.False(t, twice.Completed)
}

func TestToggle_UnknownID(t *testing.T) {
	s := openTestStore(t)
	task, err := s.ToggleComplete(context.Background(), "task-unknown")
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestDelete_Twice(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	removed, err := s.Delete(ctx, "task-3")
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := s.Get(ctx, "task-3")
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err = s.Delete(ctx, "task-3")
	require.NoError(t, err)
	assert.False(t, removed, "second delete reports not-found via false")
}

func TestCreate_UniqueIDsInSameMillisecond(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		task, err := s.Create(ctx, "burst")
		require.NoError(t, err)
		assert.False(t, seen[task.ID], "id %q minted twice", task.ID)
		seen[task.ID] = true
	}
}
