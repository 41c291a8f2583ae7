package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyplan/internal/calendar"
	"github.com/sadopc/studyplan/internal/query"
	"github.com/sadopc/studyplan/internal/store"
)

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

type calendarModel struct {
	store  *store.Store
	width  int
	height int

	year  int
	month time.Month

	// selected is nil until the user picks a day; the day view lazily
	// defaults it to today.
	selected *time.Time

	cells    []calendar.DayCell
	dayTasks []store.Task
}

func newCalendarModel(s *store.Store) calendarModel {
	now := time.Now()
	return calendarModel{
		store: s,
		year:  now.Year(),
		month: now.Month(),
	}
}

func (m *calendarModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type calendarDataMsg struct {
	cells    []calendar.DayCell
	dayTasks []store.Task
}

func (m calendarModel) refresh() tea.Cmd {
	year, month := m.year, m.month
	selected := m.selectedOrToday()
	all := m.store.All()
	return func() tea.Msg {
		return calendarDataMsg{
			cells:    calendar.MonthGrid(year, month, all, time.Now(), &selected),
			dayTasks: query.TasksOnDate(all, selected),
		}
	}
}

// selectedOrToday applies the lazy default: the first time the day view
// is needed without a user selection, today is used.
func (m calendarModel) selectedOrToday() time.Time {
	if m.selected != nil {
		return *m.selected
	}
	return time.Now()
}

func (m calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarDataMsg:
		m.cells = msg.cells
		m.dayTasks = msg.dayTasks
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PrevMonth):
			m.shiftMonth(-1)
			return m, m.refresh()
		case key.Matches(msg, keys.NextMonth):
			m.shiftMonth(1)
			return m, m.refresh()
		case key.Matches(msg, keys.Up):
			return m.shiftSelected(-7)
		case key.Matches(msg, keys.Down):
			return m.shiftSelected(7)
		case key.Matches(msg, keys.Left):
			return m.shiftSelected(-1)
		case key.Matches(msg, keys.Right):
			return m.shiftSelected(1)
		case key.Matches(msg, keys.Today):
			now := time.Now()
			m.year, m.month = now.Year(), now.Month()
			sel := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
			m.selected = &sel
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *calendarModel) shiftMonth(delta int) {
	d := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	m.year, m.month = d.Year(), d.Month()
}

func (m calendarModel) shiftSelected(days int) (calendarModel, tea.Cmd) {
	cur := m.selectedOrToday()
	sel := time.Date(cur.Year(), cur.Month(), cur.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, days)
	m.selected = &sel
	// Follow the selection across month boundaries.
	m.year, m.month = sel.Year(), sel.Month()
	return m, m.refresh()
}

func (m calendarModel) view() string {
	w := m.width - 4

	monthTitle := titleStyle.Render(fmt.Sprintf("%s %d", m.month, m.year))
	nav := mutedStyle.Render("  [ / ]: month  arrows: day  t: today")

	grid := m.renderGrid()
	dayPanel := m.renderDayTasks()

	content := lipgloss.JoinVertical(lipgloss.Left, monthTitle, "", grid, "", dayPanel, "", nav)
	return panelStyle.Width(w).Render(content)
}

func (m calendarModel) renderGrid() string {
	var b strings.Builder
	for _, wd := range weekdayHeader {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %s ", wd)))
	}
	b.WriteString("\n")

	col := 0
	for _, cell := range m.cells {
		if cell.Empty() {
			b.WriteString(calEmptyStyle.Render("  · "))
		} else {
			label := fmt.Sprintf("%3d", cell.Day)
			style := normalItemStyle
			switch {
			case cell.IsSelected:
				style = calSelectedStyle
			case cell.IsToday:
				style = calTodayStyle
			case cell.HasTasks:
				style = calHasTasksStyle
			}
			b.WriteString(style.Render(label))
			if cell.HasTasks {
				b.WriteString(calHasTasksStyle.Render("•"))
			} else {
				b.WriteString(" ")
			}
		}
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	return b.String()
}

func (m calendarModel) renderDayTasks() string {
	selected := m.selectedOrToday()
	title := titleStyle.Render("Tasks for " + selected.Format("Mon, Jan 2 2006"))

	if len(m.dayTasks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			mutedStyle.Render("  No tasks scheduled for this day."))
	}

	rows := []string{title}
	for _, task := range m.dayTasks {
		check := " "
		nameStyle := normalItemStyle
		if task.Completed {
			check = "✓"
			nameStyle = completedStyle
		}
		prio := priorityStyle(task.Priority).Render(titleCase(string(task.Priority)))
		rows = append(rows, fmt.Sprintf("  %s %s  %s  %s",
			check, prio, nameStyle.Render(task.Name), highlightStyle.Render(task.Subject)))
	}
	return strings.Join(rows, "\n")
}
