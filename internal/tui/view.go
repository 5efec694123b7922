package tui

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/taskboard/internal/model"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.listView())

	if m.adding {
		line := "Add new task"
		if m.addErr != "" {
			line += "  " + errorStyle.Render(m.addErr)
		}
		b.WriteString("\n" + panelStyle.Render(line+"\n"+m.input.View()))
	}

	if m.toast != nil {
		body := errorStyle.Render(m.toast.title) + "\n" + m.toast.description
		b.WriteString("\n" + toastStyle.Render(body))
	}

	b.WriteString("\n" + m.helpView())
	return panelStyle.Render(b.String())
}

func (m Model) headerView() string {
	completed, pending := model.Stats(m.tasks)
	total := completed + pending
	return fmt.Sprintf("%s   %s   %s",
		titleStyle.Render("Tasks"),
		accentStyle.Render(fmt.Sprintf("%d of %d completed", completed, total)),
		mutedStyle.Render(progressBar(completed, total, 24)),
	)
}

func (m Model) listView() string {
	if len(m.tasks) == 0 {
		if m.busy && !m.loaded {
			return mutedStyle.Render("Loading tasks...")
		}
		return mutedStyle.Render("No tasks yet. Add a task to get started!")
	}

	var lines []string
	for i, t := range m.tasks {
		lines = append(lines, m.taskLine(i, t))
	}
	return strings.Join(lines, "\n")
}

func (m Model) taskLine(i int, t model.Task) string {
	box := mutedStyle.Render(boxUnchecked)
	title := t.Title
	if t.Completed {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}
	prefix := "  "
	if i == m.cursor {
		prefix = selectedStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s", prefix, box, title)
}

func (m Model) helpView() string {
	if m.busy {
		return helpStyle.Render("working...")
	}
	parts := []string{
		keys.Add.Help().Key + " " + keys.Add.Help().Desc,
		keys.Toggle.Help().Key + " " + keys.Toggle.Help().Desc,
		keys.Delete.Help().Key + " " + keys.Delete.Help().Desc,
		keys.Refresh.Help().Key + " " + keys.Refresh.Help().Desc,
		keys.Quit.Help().Key + " " + keys.Quit.Help().Desc,
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
