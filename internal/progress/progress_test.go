package progress

import (
	"testing"
	"time"

	"github.com/sadopc/studyplan/internal/store"
)

var now = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)

func created(daysAgo int) time.Time {
	return now.AddDate(0, 0, -daysAgo)
}

// ============================================================
// Completion rates
// ============================================================

func TestWeeklyRateEmpty(t *testing.T) {
	if got := WeeklyRate(nil, now); got != 0 {
		t.Fatalf("expected 0 with no tasks, got %d", got)
	}
}

func TestWeeklyRateSingleCompleted(t *testing.T) {
	tasks := []store.Task{{ID: "1", Completed: true, CreatedAt: created(2)}}
	if got := WeeklyRate(tasks, now); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestWeeklyRateIgnoresOlderTasks(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Completed: true, CreatedAt: created(2)},
		{ID: "2", Completed: false, CreatedAt: created(3)},
		{ID: "3", Completed: false, CreatedAt: created(10)}, // outside window
	}
	if got := WeeklyRate(tasks, now); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestWeeklyRateRoundsToNearest(t *testing.T) {
	// 1 of 3 completed = 33.33 → 33
	tasks := []store.Task{
		{ID: "1", Completed: true, CreatedAt: created(1)},
		{ID: "2", CreatedAt: created(1)},
		{ID: "3", CreatedAt: created(1)},
	}
	if got := WeeklyRate(tasks, now); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
	// 2 of 3 completed = 66.67 → 67
	tasks[1].Completed = true
	if got := WeeklyRate(tasks, now); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}

func TestMonthlyRateUsesCalendarMonth(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Completed: true, CreatedAt: created(20)}, // inside the month window, outside the week
		{ID: "2", Completed: false, CreatedAt: created(40)},
	}
	if got := MonthlyRate(tasks, now); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := WeeklyRate(tasks, now); got != 0 {
		t.Fatalf("weekly window must exclude the 20-day-old task, got %d", got)
	}
}

// ============================================================
// Subject breakdown
// ============================================================

func TestSubjectBreakdownOrderAndCounts(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Subject: "Math", Completed: true, CreatedAt: created(1)},
		{ID: "2", Subject: "History", CreatedAt: created(1)},
		{ID: "3", Subject: "Math", CreatedAt: created(1)},
	}
	stats := SubjectBreakdown(tasks)
	if len(stats) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(stats))
	}
	if stats[0].Subject != "Math" || stats[1].Subject != "History" {
		t.Fatalf("first-occurrence order violated: %+v", stats)
	}
	if stats[0].CompletedCount != 1 || stats[0].TotalCount != 2 || stats[0].Percent != 50 {
		t.Fatalf("unexpected Math stats: %+v", stats[0])
	}
	if stats[1].Percent != 0 {
		t.Fatalf("unexpected History stats: %+v", stats[1])
	}
}

func TestSubjectBreakdownCaseSensitive(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Subject: "math", CreatedAt: created(1)},
		{ID: "2", Subject: "Math", CreatedAt: created(1)},
	}
	if got := SubjectBreakdown(tasks); len(got) != 2 {
		t.Fatalf("subjects are taken verbatim, got %+v", got)
	}
}

// ============================================================
// Daily completed time
// ============================================================

func TestDailyCompletedTime(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Completed: true, EstimatedTime: 30, DueDate: now.Format("2006-01-02")},
		{ID: "2", Completed: true, EstimatedTime: 45, DueDate: now.Format("2006-01-02")},
		{ID: "3", Completed: false, EstimatedTime: 60, DueDate: now.Format("2006-01-02")}, // pending: excluded
		{ID: "4", Completed: true, EstimatedTime: 20, DueDate: now.AddDate(0, 0, -3).Format("2006-01-02")},
		{ID: "5", Completed: true, EstimatedTime: 10, DueDate: now.AddDate(0, 0, -10).Format("2006-01-02")}, // outside window
	}

	totals := DailyCompletedTime(tasks, now)
	if len(totals) != 7 {
		t.Fatalf("expected 7 days, got %d", len(totals))
	}
	// Oldest first, ending at the reference day.
	if !store.SameDay(totals[6].Date, now) {
		t.Fatalf("last entry should be the reference day, got %v", totals[6].Date)
	}
	if !totals[0].Date.Before(totals[6].Date) {
		t.Fatal("entries must run oldest to newest")
	}
	if totals[6].Minutes != 75 {
		t.Fatalf("reference day should total 75 minutes, got %d", totals[6].Minutes)
	}
	if totals[3].Minutes != 20 {
		t.Fatalf("three days ago should total 20 minutes, got %d", totals[3].Minutes)
	}
	for i, d := range totals {
		if d.Label != d.Date.Format("Mon") {
			t.Fatalf("entry %d label mismatch: %q vs %v", i, d.Label, d.Date)
		}
	}
}

func TestDailyCompletedTimeEmptyDays(t *testing.T) {
	totals := DailyCompletedTime(nil, now)
	for _, d := range totals {
		if d.Minutes != 0 {
			t.Fatalf("empty input should yield zero totals, got %+v", d)
		}
	}
}
