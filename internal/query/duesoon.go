package query

import (
	"time"

	"github.com/sadopc/studyplan/internal/store"
)

// DueSoon returns the pending tasks whose due date lies within the
// settings' lookahead window after now, in input order. Nil when
// notifications are disabled. Tasks already past due (or with an
// unparseable due date) are not included.
func DueSoon(tasks []store.Task, now time.Time, settings store.Settings) []store.Task {
	if !settings.EnableNotifications {
		return nil
	}
	lookahead := time.Duration(settings.NotificationTime) * time.Hour

	var out []store.Task
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, ok := t.Due()
		if !ok {
			continue
		}
		until := due.Sub(now)
		if until > 0 && until <= lookahead {
			out = append(out, t)
		}
	}
	return out
}

// HoursUntil reports the whole-hour distance to a due date, rounded to
// nearest, for reminder messages.
func HoursUntil(t store.Task, now time.Time) int {
	due, ok := t.Due()
	if !ok {
		return 0
	}
	return int(due.Sub(now).Round(time.Hour) / time.Hour)
}
