// Package tui is the interactive task UI. The Bubble Tea model owns a
// derived copy of the task list plus a single busy flag; every
// mutation round-trips through the service and only the
// server-confirmed result is merged back into view state.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/service"
)

const toastTTL = 4 * time.Second

// toast is a transient notification; destructive means failure styling.
type toast struct {
	title       string
	description string
	destructive bool
}

// Messages delivered by async service commands.
type (
	tasksLoadedMsg struct {
		tasks []model.Task
		err   error
	}
	taskAddedMsg struct {
		task model.Task
		err  error
	}
	taskToggledMsg struct {
		id   string
		task *model.Task // nil means the id was not found
		err  error
	}
	taskDeletedMsg struct {
		id  string
		ok  bool
		err error
	}
	toastExpiredMsg struct{ gen int }
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type Model struct {
	api service.API

	tasks  []model.Task
	busy   bool
	loaded bool // first List has returned

	cursor int

	// inline add form
	adding bool
	input  textinput.Model
	addErr string

	toast    *toast
	toastGen int

	width  int
	height int
}

// New builds the model. The initial load starts immediately, so the
// model is born busy.
func New(api service.API) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = 200

	return Model{
		api:   api,
		busy:  true,
		input: ti,
	}
}

// Run starts the interactive UI and blocks until the user quits.
func Run(api service.API) error {
	p := tea.NewProgram(New(api), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.loadTasks() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.busy = false
		m.loaded = true
		if msg.err != nil {
			return m.showError("Failed to load tasks. Please try again.")
		}
		m.tasks = msg.tasks
		m.clampCursor()
		return m, nil

	case taskAddedMsg:
		m.busy = false
		if msg.err != nil {
			return m.showError("Failed to add task. Please try again.")
		}
		m.tasks = append(m.tasks, msg.task)
		m.cursor = len(m.tasks) - 1
		return m, nil

	case taskToggledMsg:
		m.busy = false
		if msg.err != nil {
			return m.showError("Failed to update task. Please try again.")
		}
		if msg.task == nil {
			return m.showError("Task not found. It may have already been removed.")
		}
		for i := range m.tasks {
			if m.tasks[i].ID == msg.id {
				m.tasks[i] = *msg.task
				break
			}
		}
		return m, nil

	case taskDeletedMsg:
		m.busy = false
		if msg.err != nil {
			return m.showError("Failed to delete task. Please try again.")
		}
		if !msg.ok {
			return m.showError("Task not found. It may have already been removed.")
		}
		for i := range m.tasks {
			if m.tasks[i].ID == msg.id {
				m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
				break
			}
		}
		m.clampCursor()
		return m, nil

	case toastExpiredMsg:
		// Only clear if no newer toast replaced this one.
		if msg.gen == m.toastGen {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAddForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.addErr = "Title cannot be empty"
			return m, nil
		}
		m.adding = false
		m.addErr = ""
		m.input.SetValue("")
		m.input.Blur()
		m.busy = true
		return m, m.addTask(title)
	case "esc":
		m.adding = false
		m.addErr = ""
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil
	}

	// Mutating actions are gated on the busy flag: while an operation
	// is in flight these keys do nothing.
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Add):
		m.adding = true
		m.addErr = ""
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Toggle):
		if t, ok := m.current(); ok {
			m.busy = true
			return m, m.toggleTask(t.ID)
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if t, ok := m.current(); ok {
			m.busy = true
			return m, m.deleteTask(t.ID)
		}
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.busy = true
		return m, m.loadTasks()
	}
	return m, nil
}

func (m Model) current() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor > len(m.tasks)-1 {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// showError surfaces a destructive toast and schedules its dismissal.
func (m Model) showError(description string) (tea.Model, tea.Cmd) {
	m.toastGen++
	m.toast = &toast{title: "Error", description: description, destructive: true}
	gen := m.toastGen
	return m, tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{gen: gen}
	})
}

// ------------- async service commands -------------

func (m Model) loadTasks() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		tasks, err := api.ListTasks(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) addTask(title string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		task, err := api.CreateTask(context.Background(), title)
		return taskAddedMsg{task: task, err: err}
	}
}

func (m Model) toggleTask(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		task, err := api.ToggleTask(context.Background(), id)
		return taskToggledMsg{id: id, task: task, err: err}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ok, err := api.DeleteTask(context.Background(), id)
		return taskDeletedMsg{id: id, ok: ok, err: err}
	}
}
