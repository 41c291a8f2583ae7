package store

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting: high before medium before low.
// Unknown values rank after low so imported data stays deterministic.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Minutes is an estimated duration in minutes. Persisted data may carry it
// as either a JSON number or a string; anything non-numeric decodes to 0.
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			*m = 0
			return nil
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Tolerate float-typed input before giving up.
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			*m = Minutes(int(f))
			return nil
		}
		*m = 0
		return nil
	}
	*m = Minutes(n)
	return nil
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(m))
}

// Task is a unit of study work. ID and CreatedAt are fixed at creation;
// the remaining fields are editable. DueDate stays in its persisted string
// form and is parsed on demand (see Due).
type Task struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Subject       string    `json:"subject"`
	DueDate       string    `json:"dueDate"`
	Priority      Priority  `json:"priority"`
	EstimatedTime Minutes   `json:"estimatedTime"`
	Notes         string    `json:"notes"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Due parses the task's due date in local time. ok is false when the
// value is unparseable; such tasks sort after every dated task and never
// match a calendar day.
func (t Task) Due() (time.Time, bool) {
	return ParseDue(t.DueDate)
}

var dueLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
}

// ParseDue interprets a stored due-date string in local time.
func ParseDue(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SameDay reports whether a and b fall on the same calendar day in local
// time, ignoring time-of-day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// TaskFields carries the editable fields for Add and Edit.
type TaskFields struct {
	Name          string
	Subject       string
	DueDate       string
	Priority      Priority
	EstimatedTime Minutes
	Notes         string
}

// Settings is the singleton preferences record.
type Settings struct {
	EnableNotifications bool `json:"enableNotifications"`
	NotificationTime    int  `json:"notificationTime"`
}

// DefaultSettings matches the values used when nothing has been persisted.
func DefaultSettings() Settings {
	return Settings{
		EnableNotifications: true,
		NotificationTime:    24,
	}
}
