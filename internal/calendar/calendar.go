// Package calendar derives month-grid metadata from a task snapshot.
package calendar

import (
	"time"

	"github.com/sadopc/studyplan/internal/store"
)

// DayCell is one cell of the month grid. Leading placeholder cells
// (before the 1st of the month) have Day == 0.
type DayCell struct {
	Day        int
	Date       time.Time
	HasTasks   bool
	IsToday    bool
	IsSelected bool
}

// Empty reports whether the cell is a leading placeholder.
func (c DayCell) Empty() bool { return c.Day == 0 }

// MonthGrid produces the cells for a Sunday-first month view: one empty
// cell per weekday offset before the 1st, then one cell per day of the
// month. selected may be nil when the user has not picked a day yet.
func MonthGrid(year int, month time.Month, tasks []store.Task, today time.Time, selected *time.Time) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	offset := int(first.Weekday()) // 0 = Sunday

	cells := make([]DayCell, 0, offset+DaysInMonth(year, month))
	for i := 0; i < offset; i++ {
		cells = append(cells, DayCell{})
	}

	for day := 1; day <= DaysInMonth(year, month); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		cell := DayCell{
			Day:     day,
			Date:    date,
			IsToday: store.SameDay(date, today),
		}
		if selected != nil {
			cell.IsSelected = store.SameDay(date, *selected)
		}
		for _, t := range tasks {
			if due, ok := t.Due(); ok && store.SameDay(due, date) {
				cell.HasTasks = true
				break
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

// DaysInMonth follows the proleptic Gregorian calendar; time.Date
// normalizes day 0 of the next month to the last day of this one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
