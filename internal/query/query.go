// Package query derives ordered task views from a store snapshot. All
// functions are pure: they never mutate their input and return fresh
// slices.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/sadopc/studyplan/internal/store"
)

// PriorityFilter values accepted by Filter. FilterAll passes every task.
const (
	FilterAll       = "all"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Options are the list-view filters. Zero values behave like "all" with
// an empty search.
type Options struct {
	Priority string // all | high | medium | low
	Status   string // all | pending | completed
	Search   string // case-insensitive substring on name, subject, notes
}

// Filter returns the tasks matching all three predicates, sorted for the
// list view: incomplete before completed, then ascending due date, then
// priority rank. Ties keep input order. Tasks with an unparseable due
// date sort after every dated task in their completion group.
func Filter(tasks []store.Task, opts Options) []store.Task {
	search := strings.ToLower(opts.Search)

	var out []store.Task
	for _, t := range tasks {
		if !matchesPriority(t, opts.Priority) {
			continue
		}
		if !matchesStatus(t, opts.Status) {
			continue
		}
		if !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		ad, aok := a.Due()
		bd, bok := b.Due()
		switch {
		case aok && bok:
			if !ad.Equal(bd) {
				return ad.Before(bd)
			}
		case aok != bok:
			// Invalid dates sort last.
			return aok
		}
		return a.Priority.Rank() < b.Priority.Rank()
	})
	return out
}

func matchesPriority(t store.Task, filter string) bool {
	return filter == "" || filter == FilterAll || string(t.Priority) == filter
}

func matchesStatus(t store.Task, filter string) bool {
	switch filter {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

func matchesSearch(t store.Task, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Subject), search) {
		return true
	}
	return t.Notes != "" && strings.Contains(strings.ToLower(t.Notes), search)
}

// TasksOnDate returns the tasks due on the given calendar day (local
// year/month/day equality), sorted by priority rank only; ties keep input
// order.
func TasksOnDate(tasks []store.Task, date time.Time) []store.Task {
	var out []store.Task
	for _, t := range tasks {
		due, ok := t.Due()
		if !ok {
			continue
		}
		if store.SameDay(due, date) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}
