package query

import (
	"testing"
	"time"

	"github.com/sadopc/studyplan/internal/store"
)

func task(id, name string, opts ...func(*store.Task)) store.Task {
	t := store.Task{ID: id, Name: name, Priority: store.PriorityMedium, CreatedAt: time.Now()}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func due(s string) func(*store.Task)          { return func(t *store.Task) { t.DueDate = s } }
func prio(p store.Priority) func(*store.Task) { return func(t *store.Task) { t.Priority = p } }
func completed() func(*store.Task)            { return func(t *store.Task) { t.Completed = true } }
func subject(s string) func(*store.Task)      { return func(t *store.Task) { t.Subject = s } }
func notes(s string) func(*store.Task)        { return func(t *store.Task) { t.Notes = s } }

func ids(tasks []store.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertOrder(t *testing.T, got []store.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %v", len(want), ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %v", i, id, ids(got))
		}
	}
}

// ============================================================
// Filtering
// ============================================================

func TestFilterByPriority(t *testing.T) {
	tasks := []store.Task{
		task("1", "a", prio(store.PriorityHigh)),
		task("2", "b", prio(store.PriorityLow)),
	}
	got := Filter(tasks, Options{Priority: "high"})
	assertOrder(t, got, "1")

	got = Filter(tasks, Options{Priority: FilterAll})
	if len(got) != 2 {
		t.Fatalf("all filter should pass everything, got %v", ids(got))
	}
}

func TestFilterByStatus(t *testing.T) {
	tasks := []store.Task{
		task("1", "a"),
		task("2", "b", completed()),
	}
	assertOrder(t, Filter(tasks, Options{Status: StatusPending}), "1")
	assertOrder(t, Filter(tasks, Options{Status: StatusCompleted}), "2")
	if len(Filter(tasks, Options{})) != 2 {
		t.Fatal("zero options should pass everything")
	}
}

func TestFilterBySearch(t *testing.T) {
	tasks := []store.Task{
		task("1", "Read Chapter", subject("History")),
		task("2", "Essay", subject("English"), notes("draft the INTRO")),
		task("3", "Lab report", subject("Chemistry")),
	}

	assertOrder(t, Filter(tasks, Options{Search: "chapter"}), "1")
	// Subject matches
	assertOrder(t, Filter(tasks, Options{Search: "ENGLISH"}), "2")
	// Notes match case-insensitively
	assertOrder(t, Filter(tasks, Options{Search: "intro"}), "2")
	if got := Filter(tasks, Options{Search: "nothing"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestFilterCombinesPredicates(t *testing.T) {
	tasks := []store.Task{
		task("1", "Math drill", prio(store.PriorityHigh)),
		task("2", "Math quiz", prio(store.PriorityHigh), completed()),
		task("3", "Math notes", prio(store.PriorityLow)),
	}
	got := Filter(tasks, Options{Priority: "high", Status: StatusPending, Search: "math"})
	assertOrder(t, got, "1")
}

// ============================================================
// Sorting
// ============================================================

func TestSortIncompleteFirst(t *testing.T) {
	tasks := []store.Task{
		task("1", "done", completed(), due("2026-09-01")),
		task("2", "todo", due("2026-09-20")),
	}
	// A completed task sorts after a pending one even with an earlier due date.
	assertOrder(t, Filter(tasks, Options{}), "2", "1")
}

func TestSortByDueDateThenPriority(t *testing.T) {
	tasks := []store.Task{
		task("1", "later", due("2026-09-10"), prio(store.PriorityHigh)),
		task("2", "sooner", due("2026-09-05"), prio(store.PriorityLow)),
		task("3", "same day low", due("2026-09-10"), prio(store.PriorityLow)),
	}
	assertOrder(t, Filter(tasks, Options{}), "2", "1", "3")
}

func TestSortInvalidDueDatesLast(t *testing.T) {
	tasks := []store.Task{
		task("1", "undated"),
		task("2", "dated", due("2026-09-05")),
		task("3", "garbage date", due("soonish")),
	}
	got := Filter(tasks, Options{})
	if got[0].ID != "2" {
		t.Fatalf("dated task should sort first, got %v", ids(got))
	}
}

func TestSortStableOnTies(t *testing.T) {
	tasks := []store.Task{
		task("1", "a", due("2026-09-05"), prio(store.PriorityMedium)),
		task("2", "b", due("2026-09-05"), prio(store.PriorityMedium)),
	}
	assertOrder(t, Filter(tasks, Options{}), "1", "2")
}

// ============================================================
// Calendar day lookup
// ============================================================

func TestTasksOnDate(t *testing.T) {
	day := time.Date(2026, 9, 5, 12, 0, 0, 0, time.Local)
	tasks := []store.Task{
		task("1", "low first in input", due("2026-09-05T18:00"), prio(store.PriorityLow)),
		task("2", "high", due("2026-09-05"), prio(store.PriorityHigh)),
		task("3", "other day", due("2026-09-06")),
		task("4", "undated"),
	}
	got := TasksOnDate(tasks, day)
	assertOrder(t, got, "2", "1")
}

func TestTasksOnDateIgnoresTimeOfDay(t *testing.T) {
	day := time.Date(2026, 9, 5, 0, 0, 0, 0, time.Local)
	tasks := []store.Task{task("1", "late", due("2026-09-05T23:59"))}
	if len(TasksOnDate(tasks, day)) != 1 {
		t.Fatal("time of day must not affect day matching")
	}
}

// ============================================================
// Due-soon scan
// ============================================================

func TestDueSoonWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	settings := store.Settings{EnableNotifications: true, NotificationTime: 24}
	tasks := []store.Task{
		task("1", "inside window", due("2026-09-01T12:00")),
		task("2", "outside window", due("2026-09-02T06:00")),
		task("3", "past due", due("2026-08-31T12:00")),
		task("4", "completed", due("2026-09-01T12:00"), completed()),
		task("5", "undated"),
	}
	got := DueSoon(tasks, now, settings)
	assertOrder(t, got, "1")
}

func TestDueSoonBoundaryInclusive(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	settings := store.Settings{EnableNotifications: true, NotificationTime: 24}
	tasks := []store.Task{task("1", "exactly 24h", due("2026-09-02T00:00"))}
	if len(DueSoon(tasks, now, settings)) != 1 {
		t.Fatal("a task due exactly at the window edge is included")
	}
}

func TestDueSoonDisabled(t *testing.T) {
	now := time.Now()
	settings := store.Settings{EnableNotifications: false, NotificationTime: 24}
	tasks := []store.Task{task("1", "due", due(now.Add(time.Hour).Format("2006-01-02T15:04")))}
	if got := DueSoon(tasks, now, settings); got != nil {
		t.Fatalf("disabled notifications must yield nothing, got %v", ids(got))
	}
}

func TestHoursUntil(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	tsk := task("1", "due", due("2026-09-01T12:20"))
	if h := HoursUntil(tsk, now); h != 12 {
		t.Fatalf("expected 12 hours, got %d", h)
	}
	if h := HoursUntil(task("2", "undated"), now); h != 0 {
		t.Fatalf("undated tasks report 0, got %d", h)
	}
}
