package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyplan/internal/config"
	"github.com/sadopc/studyplan/internal/export"
	"github.com/sadopc/studyplan/internal/store"
)

// settingsAction identifies which form (if any) the settings view is
// currently running.
type settingsAction int

const (
	actionNone settingsAction = iota
	actionEdit
	actionExport
	actionImport
	actionClear
)

var settingsMenu = []string{
	"Edit Settings",
	"Export Data",
	"Import Data",
	"Clear All Data",
}

type settingsModel struct {
	store  *store.Store
	cfg    config.Config
	width  int
	height int

	cursor int

	action settingsAction
	form   *huh.Form

	// Form field pointers
	fNotify     *bool
	fHours      *string
	fImportPath *string
	fConfirm    *bool
}

func newSettingsModel(s *store.Store, cfg config.Config) settingsModel {
	notifyOn := false
	hours, importPath := "", ""
	confirm := false
	return settingsModel{
		store:       s,
		cfg:         cfg,
		fNotify:     &notifyOn,
		fHours:      &hours,
		fImportPath: &importPath,
		fConfirm:    &confirm,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.action != actionNone && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(settingsMenu)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			return m.startAction(settingsAction(m.cursor + 1))
		}
	}
	return m, nil
}

func (m settingsModel) startAction(action settingsAction) (settingsModel, tea.Cmd) {
	m.action = action

	switch action {
	case actionEdit:
		settings := m.store.Settings()
		*m.fNotify = settings.EnableNotifications
		*m.fHours = strconv.Itoa(settings.NotificationTime)
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().Title("Enable Reminders").Value(m.fNotify),
				huh.NewInput().Title("Remind Before Due (hours)").Value(m.fHours),
			),
		).WithShowHelp(true)

	case actionExport:
		*m.fConfirm = true
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Export all data?").
					Description("Writes a JSON backup to " + m.cfg.ExportDir).
					Value(m.fConfirm),
			),
		)

	case actionImport:
		*m.fImportPath = ""
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Import File Path").
					Placeholder("/path/to/studyplan-export.json").
					Value(m.fImportPath),
			),
		).WithShowHelp(true)

	case actionClear:
		*m.fConfirm = false
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Clear all data?").
					Description("All tasks will be deleted and settings reset. This cannot be undone.").
					Value(m.fConfirm),
			),
		)
	}

	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.action = actionNone
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		action := m.action
		m.action = actionNone
		m.form = nil
		return m.submitAction(action)
	}
	return m, cmd
}

func (m settingsModel) submitAction(action settingsAction) (settingsModel, tea.Cmd) {
	switch action {
	case actionEdit:
		hours, err := strconv.Atoi(strings.TrimSpace(*m.fHours))
		if err != nil || hours <= 0 {
			hours = store.DefaultSettings().NotificationTime
		}
		settings := store.Settings{
			EnableNotifications: *m.fNotify,
			NotificationTime:    hours,
		}
		if err := m.store.SaveSettings(settings); err != nil {
			return m, reportError("Save Error", err)
		}
		return m, func() tea.Msg {
			return notify("Settings Saved", "Your preferences have been updated.")
		}

	case actionExport:
		if !*m.fConfirm {
			return m, nil
		}
		return m, m.exportData()

	case actionImport:
		path := strings.TrimSpace(*m.fImportPath)
		if path == "" {
			return m, nil
		}
		return m, m.importData(path)

	case actionClear:
		if !*m.fConfirm {
			return m, nil
		}
		return m, m.clearData()
	}
	return m, nil
}

func (m settingsModel) exportData() tea.Cmd {
	tasks := m.store.All()
	settings := m.store.Settings()
	dir := m.cfg.ExportDir
	return func() tea.Msg {
		name := fmt.Sprintf("studyplan-export-%s.json", time.Now().Format("2006-01-02"))
		path := filepath.Join(dir, name)
		if err := export.Write(path, tasks, settings); err != nil {
			return notifyError("Export Error", err.Error())
		}
		return exportDoneMsg{path: path}
	}
}

func (m settingsModel) importData(path string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		payload, err := export.Read(path)
		if err != nil {
			return notifyError("Import Error", err.Error())
		}
		if err := s.ReplaceAll(payload.Tasks); err != nil {
			return notifyError("Import Error", err.Error())
		}
		if err := s.SaveSettings(payload.Settings); err != nil {
			return notifyError("Import Error", err.Error())
		}
		return importDoneMsg{count: len(payload.Tasks)}
	}
}

func (m settingsModel) clearData() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if err := s.ReplaceAll(nil); err != nil {
			return notifyError("Clear Error", err.Error())
		}
		if err := s.SaveSettings(store.DefaultSettings()); err != nil {
			return notifyError("Clear Error", err.Error())
		}
		return dataClearedMsg{}
	}
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.action != actionNone && m.form != nil {
		title := titleStyle.Render(settingsMenu[int(m.action)-1])
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	settings := m.store.Settings()
	state := "off"
	stateStyle := mutedStyle
	if settings.EnableNotifications {
		state = fmt.Sprintf("on, %d hours before due", settings.NotificationTime)
		stateStyle = successStyle
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		fmt.Sprintf("  %s %s", mutedStyle.Render("Reminders:"), stateStyle.Render(state)),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Export dir:"), normalItemStyle.Render(m.cfg.ExportDir)),
		"",
	}

	for i, item := range settingsMenu {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		if item == "Clear All Data" {
			style = style.Foreground(colorError)
		}
		rows = append(rows, cursor+style.Render(item))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: select  ↑/↓: move"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
