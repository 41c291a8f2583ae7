package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/studyplan/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTasks viewState = iota
	viewCalendar
	viewProgress
	viewSettings
)

var viewNames = []string{"Tasks", "Calendar", "Progress", "Settings"}

// --- Messages ---

// notifyMsg is the in-app notification channel: a title and message pair
// shown on the status line.
type notifyMsg struct {
	title   string
	message string
	isError bool
}

type importDoneMsg struct {
	count int
}

type exportDoneMsg struct {
	path string
}

type dataClearedMsg struct{}

type tickMsg time.Time

// --- Helpers ---

func notify(title, message string) notifyMsg {
	return notifyMsg{title: title, message: message}
}

func notifyError(title, message string) notifyMsg {
	return notifyMsg{title: title, message: message, isError: true}
}

// formatDueDate renders a stored due-date string for display, falling
// back to the raw value when it cannot be parsed.
func formatDueDate(raw string) string {
	due, ok := store.ParseDue(raw)
	if !ok {
		if raw == "" {
			return "no due date"
		}
		return raw
	}
	return due.Format("Mon, Jan 2 2006")
}

func formatMinutes(m store.Minutes) string {
	return fmt.Sprintf("%d min", int(m))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
