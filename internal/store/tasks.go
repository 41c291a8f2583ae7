package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound signals an edit/toggle/delete against an unknown task id.
// The store is left untouched and nothing is persisted.
var ErrNotFound = errors.New("store: task not found")

// Store is the authoritative in-memory task collection for the session,
// kept in creation order. Every mutation persists the full collection to
// the underlying key-value database before returning. A failed write
// keeps the in-memory change and surfaces the error; memory stays the
// source of truth for the rest of the session.
//
// Store is not safe for concurrent use.
type Store struct {
	db       *DB
	tasks    []Task
	settings Settings
}

// NewStore loads tasks and settings from db, starting empty and with
// default settings when nothing has been persisted yet.
func NewStore(db *DB) (*Store, error) {
	s := &Store{db: db, settings: DefaultSettings()}

	data, ok, err := db.Get(keyTasks)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(data, &s.tasks); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
	}

	data, ok, err = db.Get(keySettings)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(data, &s.settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	return s, nil
}

// Add creates a task from fields with a fresh id, Completed=false and
// CreatedAt=now, appends it and persists.
func (s *Store) Add(fields TaskFields) (Task, error) {
	task := Task{
		ID:            uuid.NewString(),
		Name:          fields.Name,
		Subject:       fields.Subject,
		DueDate:       fields.DueDate,
		Priority:      fields.Priority,
		EstimatedTime: fields.EstimatedTime,
		Notes:         fields.Notes,
		Completed:     false,
		CreatedAt:     time.Now(),
	}
	s.tasks = append(s.tasks, task)
	return task, s.persistTasks()
}

// Edit overwrites the editable fields of the task with the given id,
// leaving ID, CreatedAt and Completed untouched.
func (s *Store) Edit(id string, fields TaskFields) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	t := &s.tasks[i]
	t.Name = fields.Name
	t.Subject = fields.Subject
	t.DueDate = fields.DueDate
	t.Priority = fields.Priority
	t.EstimatedTime = fields.EstimatedTime
	t.Notes = fields.Notes
	return *t, s.persistTasks()
}

// Toggle flips the completion flag and returns the updated task so the
// caller can notify on the transition to completed.
func (s *Store) Toggle(id string) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], s.persistTasks()
}

// Delete removes the task and returns it for confirmation messaging.
func (s *Store) Delete(id string) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return removed, s.persistTasks()
}

// ReplaceAll overwrites the whole collection; used by import and clear.
func (s *Store) ReplaceAll(tasks []Task) error {
	s.tasks = make([]Task, len(tasks))
	copy(s.tasks, tasks)
	return s.persistTasks()
}

// All returns a snapshot of the collection in creation order. Mutating
// the returned slice does not affect the store.
func (s *Store) All() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// PendingCompleted returns the counts shown in the task list header.
func (s *Store) PendingCompleted() (pending, completed int) {
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistTasks() error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.db.Set(keyTasks, data); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
