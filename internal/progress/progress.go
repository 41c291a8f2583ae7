// Package progress computes completion-rate statistics over a task
// snapshot.
package progress

import (
	"math"
	"time"

	"github.com/sadopc/studyplan/internal/store"
)

// WeeklyRate is the percentage of tasks created in the last 7 days that
// are completed, rounded to the nearest integer; 0 when no task matches.
func WeeklyRate(tasks []store.Task, now time.Time) int {
	return completionRate(tasks, now.AddDate(0, 0, -7))
}

// MonthlyRate is the same over the last calendar month (month-component
// arithmetic, not a fixed 30-day window).
func MonthlyRate(tasks []store.Task, now time.Time) int {
	return completionRate(tasks, now.AddDate(0, -1, 0))
}

func completionRate(tasks []store.Task, since time.Time) int {
	total, completed := 0, 0
	for _, t := range tasks {
		if t.CreatedAt.Before(since) {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	return percent(completed, total)
}

// SubjectStat is one row of the per-subject breakdown.
type SubjectStat struct {
	Subject        string
	CompletedCount int
	TotalCount     int
	Percent        int
}

// SubjectBreakdown returns one entry per distinct subject in
// first-occurrence order. Subjects are taken verbatim (case-sensitive, no
// normalization).
func SubjectBreakdown(tasks []store.Task) []SubjectStat {
	index := make(map[string]int)
	var stats []SubjectStat
	for _, t := range tasks {
		i, ok := index[t.Subject]
		if !ok {
			i = len(stats)
			index[t.Subject] = i
			stats = append(stats, SubjectStat{Subject: t.Subject})
		}
		stats[i].TotalCount++
		if t.Completed {
			stats[i].CompletedCount++
		}
	}
	for i := range stats {
		stats[i].Percent = percent(stats[i].CompletedCount, stats[i].TotalCount)
	}
	return stats
}

// DayTotal is one bar of the 7-day completed-time chart.
type DayTotal struct {
	Label   string // weekday abbreviation
	Date    time.Time
	Minutes int
}

// DailyCompletedTime sums estimated minutes of completed tasks due on
// each of the 7 days ending at referenceDay inclusive, oldest first.
func DailyCompletedTime(tasks []store.Task, referenceDay time.Time) []DayTotal {
	out := make([]DayTotal, 0, 7)
	for i := 6; i >= 0; i-- {
		day := referenceDay.AddDate(0, 0, -i)
		total := 0
		for _, t := range tasks {
			if !t.Completed {
				continue
			}
			if due, ok := t.Due(); ok && store.SameDay(due, day) {
				total += int(t.EstimatedTime)
			}
		}
		out = append(out, DayTotal{
			Label:   day.Format("Mon"),
			Date:    day,
			Minutes: total,
		})
	}
	return out
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
