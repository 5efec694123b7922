package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/service"
)

// fakeAPI returns canned results so Update transitions can be driven
// synchronously.
type fakeAPI struct {
	tasks   []model.Task
	created model.Task
	toggled *model.Task
	deleted bool
	err     error
}

var _ service.API = (*fakeAPI)(nil)

func (f *fakeAPI) ListTasks(context.Context) ([]model.Task, error) { return f.tasks, f.err }
func (f *fakeAPI) GetTask(context.Context, string) (*model.Task, error) {
	return f.toggled, f.err
}
func (f *fakeAPI) CreateTask(context.Context, string) (model.Task, error) {
	return f.created, f.err
}
func (f *fakeAPI) ToggleTask(context.Context, string) (*model.Task, error) {
	return f.toggled, f.err
}
func (f *fakeAPI) DeleteTask(context.Context, string) (bool, error) { return f.deleted, f.err }

func seededTasks() []model.Task {
	return []model.Task{
		{ID: "task-1", Title: "Complete project documentation"},
		{ID: "task-2", Title: "Review pull requests", Completed: true},
		{ID: "task-3", Title: "Fix UI bugs in dashboard"},
		{ID: "task-4", Title: "Prepare for team meeting"},
		{ID: "task-5", Title: "Update dependencies", Completed: true},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestInitialLoad(t *testing.T) {
	api := &fakeAPI{tasks: seededTasks()}
	m := New(api)
	assert.True(t, m.busy, "model starts busy for the initial load")

	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()

	m, _ = update(t, m, msg)
	assert.False(t, m.busy)
	assert.Len(t, m.tasks, 5)
}

func TestInitialLoadFailure(t *testing.T) {
	api := &fakeAPI{err: service.ErrFetchFailed}
	m := New(api)

	m, _ = update(t, m, m.Init()())
	assert.False(t, m.busy)
	assert.Empty(t, m.tasks, "failed load leaves the list empty")
	require.NotNil(t, m.toast)
	assert.True(t, m.toast.destructive)
	assert.Contains(t, m.toast.description, "Failed to load tasks")
}

func TestHeaderMath(t *testing.T) {
	m := New(&fakeAPI{})
	m.tasks = seededTasks()

	header := m.headerView()
	assert.Contains(t, header, "2 of 5 completed")

	// 2 of 5 at width 10 fills 4 cells (40 percent).
	bar := progressBar(2, 5, 10)
	assert.Equal(t, 4, strings.Count(bar, "█"))
	assert.Equal(t, 6, strings.Count(bar, "░"))
}

func TestProgressBarZeroTotal(t *testing.T) {
	bar := progressBar(0, 0, 10)
	assert.Equal(t, 0, strings.Count(bar, "█"))
	assert.Equal(t, 10, strings.Count(bar, "░"))
}

func TestAddFlow(t *testing.T) {
	api := &fakeAPI{created: model.Task{ID: "task-99", Title: "Buy milk"}}
	m := New(api)
	m.busy = false
	m.loaded = true

	// Open the add form.
	m, _ = update(t, m, keyMsg("a"))
	assert.True(t, m.adding)

	// Submit text; the model goes busy and dispatches the create.
	m.input.SetValue("  Buy milk  ")
	m, cmd := update(t, m, keyMsg("enter"))
	assert.False(t, m.adding)
	assert.True(t, m.busy)
	require.NotNil(t, cmd)

	// Server-confirmed result is what lands in state.
	m, _ = update(t, m, cmd())
	assert.False(t, m.busy)
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "task-99", m.tasks[0].ID)
	assert.Equal(t, "Buy milk", m.tasks[0].Title)
	assert.False(t, m.tasks[0].Completed)
}

func TestAddRejectsEmptySubmit(t *testing.T) {
	m := New(&fakeAPI{})
	m.busy = false
	m.adding = true

	m.input.SetValue("   ")
	m, cmd := update(t, m, keyMsg("enter"))
	assert.Nil(t, cmd, "empty title never reaches the service")
	assert.True(t, m.adding)
	assert.Equal(t, "Title cannot be empty", m.addErr)
	assert.False(t, m.busy)
}

func TestToggleMergesServerRecord(t *testing.T) {
	toggled := model.Task{ID: "task-1", Title: "Complete project documentation", Completed: true}
	api := &fakeAPI{toggled: &toggled}
	m := New(api)
	m.busy = false
	m.tasks = seededTasks()
	m.cursor = 0

	m, cmd := update(t, m, keyMsg(" "))
	assert.True(t, m.busy)
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	assert.False(t, m.busy)
	assert.True(t, m.tasks[0].Completed)
}

func TestToggleNotFoundToastsAndLeavesState(t *testing.T) {
	m := New(&fakeAPI{})
	m.tasks = seededTasks()

	before := len(m.tasks)
	m, _ = update(t, m, taskToggledMsg{id: "task-1", task: nil})
	assert.False(t, m.busy)
	assert.Len(t, m.tasks, before, "local state unchanged on not-found")
	require.NotNil(t, m.toast)
	assert.Contains(t, m.toast.description, "Task not found")
}

func TestDeleteRemovesConfirmedID(t *testing.T) {
	m := New(&fakeAPI{})
	m.tasks = seededTasks()

	m, _ = update(t, m, taskDeletedMsg{id: "task-3", ok: true})
	assert.Len(t, m.tasks, 4)
	for _, task := range m.tasks {
		assert.NotEqual(t, "task-3", task.ID)
	}
}

func TestDeleteFailureToasts(t *testing.T) {
	m := New(&fakeAPI{})
	m.tasks = seededTasks()

	m, _ = update(t, m, taskDeletedMsg{id: "task-3", err: service.ErrDeleteFailed})
	assert.Len(t, m.tasks, 5)
	require.NotNil(t, m.toast)
	assert.Contains(t, m.toast.description, "Failed to delete task")
}

func TestBusyGatesMutations(t *testing.T) {
	m := New(&fakeAPI{})
	m.busy = true
	m.tasks = seededTasks()

	for _, k := range []string{"a", " ", "d", "r"} {
		next, cmd := update(t, m, keyMsg(k))
		assert.Nil(t, cmd, "key %q must be inert while busy", k)
		assert.False(t, next.adding)
	}

	// Navigation stays live while busy.
	next, _ := update(t, m, keyMsg("j"))
	assert.Equal(t, 1, next.cursor)
}

func TestToastExpiry(t *testing.T) {
	m := New(&fakeAPI{})

	m, _ = update(t, m, taskDeletedMsg{id: "x", err: service.ErrDeleteFailed})
	require.NotNil(t, m.toast)
	gen := m.toastGen

	// A stale expiry (older generation) must not clear a newer toast.
	m, _ = update(t, m, toastExpiredMsg{gen: gen - 1})
	assert.NotNil(t, m.toast)

	m, _ = update(t, m, toastExpiredMsg{gen: gen})
	assert.Nil(t, m.toast)
}

func TestListViewPlaceholders(t *testing.T) {
	m := New(&fakeAPI{})

	// Busy before the first load: loading placeholder.
	assert.Contains(t, m.listView(), "Loading tasks...")

	// Idle and empty: call-to-action placeholder.
	m.busy = false
	m.loaded = true
	assert.Contains(t, m.listView(), "No tasks yet")
}
