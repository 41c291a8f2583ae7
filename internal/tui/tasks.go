package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyplan/internal/query"
	"github.com/sadopc/studyplan/internal/store"
)

var priorityFilters = []string{"all", "high", "medium", "low"}
var statusFilters = []string{"all", "pending", "completed"}

// formMode is explicit state for the shared add/edit form: creating a new
// task or editing an existing one.
type formMode int

const (
	formCreate formMode = iota
	formEdit
)

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []store.Task // filtered, sorted view
	cursor int

	priorityFilter int // index into priorityFilters
	statusFilter   int // index into statusFilters
	search         textinput.Model
	searching      bool

	formActive bool
	form       *huh.Form
	mode       formMode
	editingID  string

	// Form field pointers (survive value copies)
	fName     *string
	fSubject  *string
	fDue      *string
	fPriority *string
	fEstimate *string
	fNotes    *string
}

func newTasksModel(s *store.Store) tasksModel {
	search := textinput.New()
	search.Placeholder = "search tasks..."
	search.CharLimit = 64

	name, subject, due, prio, est, notes := "", "", "", "medium", "", ""
	return tasksModel{
		store:     s,
		search:    search,
		fName:     &name,
		fSubject:  &subject,
		fDue:      &due,
		fPriority: &prio,
		fEstimate: &est,
		fNotes:    &notes,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type taskListMsg struct {
	tasks []store.Task
}

func (m tasksModel) refresh() tea.Cmd {
	opts := query.Options{
		Priority: priorityFilters[m.priorityFilter],
		Status:   statusFilters[m.statusFilter],
		Search:   m.search.Value(),
	}
	all := m.store.All()
	return func() tea.Msg {
		return taskListMsg{tasks: query.Filter(all, opts)}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case taskListMsg:
		m.tasks = msg.tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = max(0, len(m.tasks)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m tasksModel) updateSearch(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, m.refresh()
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, tea.Batch(cmd, m.refresh())
}

func (m tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, keys.Priority):
		m.priorityFilter = (m.priorityFilter + 1) % len(priorityFilters)
		return m, m.refresh()
	case key.Matches(msg, keys.Status):
		m.statusFilter = (m.statusFilter + 1) % len(statusFilters)
		return m, m.refresh()
	case key.Matches(msg, keys.New):
		return m.showForm(formCreate, store.Task{})
	case key.Matches(msg, keys.Edit):
		if len(m.tasks) > 0 {
			return m.showForm(formEdit, m.tasks[m.cursor])
		}
	case key.Matches(msg, keys.Toggle):
		if len(m.tasks) > 0 {
			return m.toggleCurrent()
		}
	case key.Matches(msg, keys.Delete):
		if len(m.tasks) > 0 {
			return m.deleteCurrent()
		}
	}
	return m, nil
}

func (m tasksModel) toggleCurrent() (tasksModel, tea.Cmd) {
	task, err := m.store.Toggle(m.tasks[m.cursor].ID)
	if err != nil {
		return m, reportError("Save Error", err)
	}
	cmds := []tea.Cmd{m.refresh()}
	if task.Completed {
		// Only notify on the transition to completed.
		cmds = append(cmds, func() tea.Msg {
			return notify("Task Completed", fmt.Sprintf("Great job! You've completed %q.", task.Name))
		})
	}
	return m, tea.Batch(cmds...)
}

func (m tasksModel) deleteCurrent() (tasksModel, tea.Cmd) {
	task, err := m.store.Delete(m.tasks[m.cursor].ID)
	if err != nil {
		return m, reportError("Delete Error", err)
	}
	return m, tea.Batch(m.refresh(), func() tea.Msg {
		return notify("Task Deleted", fmt.Sprintf("%q has been deleted.", task.Name))
	})
}

func (m tasksModel) showForm(mode formMode, task store.Task) (tasksModel, tea.Cmd) {
	m.mode = mode
	if mode == formEdit {
		m.editingID = task.ID
		*m.fName = task.Name
		*m.fSubject = task.Subject
		*m.fDue = task.DueDate
		*m.fPriority = string(task.Priority)
		*m.fEstimate = strconv.Itoa(int(task.EstimatedTime))
		*m.fNotes = task.Notes
	} else {
		m.editingID = ""
		*m.fName = ""
		*m.fSubject = ""
		*m.fDue = ""
		*m.fPriority = string(store.PriorityMedium)
		*m.fEstimate = ""
		*m.fNotes = ""
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(m.fName),
			huh.NewInput().Title("Subject").Value(m.fSubject),
			huh.NewInput().Title("Due Date (YYYY-MM-DD or YYYY-MM-DDTHH:MM)").Value(m.fDue),
			huh.NewSelect[string]().Title("Priority").
				Options(
					huh.NewOption("High", "high"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("Low", "low"),
				).Value(m.fPriority),
			huh.NewInput().Title("Estimated Time (minutes)").Value(m.fEstimate),
			huh.NewInput().Title("Notes").Value(m.fNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitForm()
	}
	return m, cmd
}

func (m tasksModel) submitForm() (tasksModel, tea.Cmd) {
	if *m.fName == "" {
		return m, nil
	}
	estimate, _ := strconv.Atoi(strings.TrimSpace(*m.fEstimate))
	fields := store.TaskFields{
		Name:          *m.fName,
		Subject:       *m.fSubject,
		DueDate:       *m.fDue,
		Priority:      store.Priority(*m.fPriority),
		EstimatedTime: store.Minutes(estimate),
		Notes:         *m.fNotes,
	}

	if m.mode == formEdit {
		task, err := m.store.Edit(m.editingID, fields)
		if err != nil {
			return m, reportError("Save Error", err)
		}
		return m, tea.Batch(m.refresh(), func() tea.Msg {
			return notify("Task Updated", fmt.Sprintf("%q has been updated.", task.Name))
		})
	}

	task, err := m.store.Add(fields)
	if err != nil {
		return m, reportError("Save Error", err)
	}
	return m, tea.Batch(m.refresh(), func() tea.Msg {
		return notify("Task Added", fmt.Sprintf("%q has been added to your study plan.", task.Name))
	})
}

func reportError(title string, err error) tea.Cmd {
	return func() tea.Msg {
		return notifyError(title, err.Error())
	}
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.mode == formEdit {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	pending, completed := m.store.PendingCompleted()
	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("Tasks"),
		mutedStyle.Render(fmt.Sprintf("%d pending · %d completed", pending, completed)),
	)

	filterLine := mutedStyle.Render(fmt.Sprintf("  priority: %s   status: %s",
		priorityFilters[m.priorityFilter], statusFilters[m.statusFilter]))
	if m.searching || m.search.Value() != "" {
		filterLine += mutedStyle.Render("   search: ") + m.search.View()
	}

	var rows []string
	rows = append(rows, header, filterLine, "")

	if len(m.tasks) == 0 {
		rows = append(rows, mutedStyle.Render("  No tasks match your filters. Try adjusting your search criteria or add new tasks."))
	}

	for i, task := range m.tasks {
		rows = append(rows, m.renderTask(i, task))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  space: toggle  /: search  p/s: filters"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) renderTask(i int, task store.Task) string {
	cursor := "  "
	nameStyle := normalItemStyle
	if i == m.cursor {
		cursor = "> "
		nameStyle = selectedItemStyle
	}
	check := "☐"
	if task.Completed {
		check = "✓"
		nameStyle = completedStyle
	}
	prio := priorityStyle(task.Priority).Render(fmt.Sprintf("%-6s", titleCase(string(task.Priority))))
	due := mutedStyle.Render(formatDueDate(task.DueDate))

	line := fmt.Sprintf("%s%s %s %s  %s  %s",
		cursor, check, prio, nameStyle.Render(task.Name), highlightStyle.Render(task.Subject), due)
	if task.EstimatedTime > 0 {
		line += mutedStyle.Render("  " + formatMinutes(task.EstimatedTime))
	}
	return line
}
