// Package export reads and writes the backup document: a single JSON
// object holding the full task collection and the settings record.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sadopc/studyplan/internal/store"
)

// ErrInvalidFormat rejects import payloads missing either top-level key.
var ErrInvalidFormat = errors.New("export: invalid data format")

// Payload is the backup document shape.
type Payload struct {
	Tasks    []store.Task   `json:"tasks"`
	Settings store.Settings `json:"settings"`
}

// Write serializes tasks and settings to path as pretty-printed JSON.
func Write(path string, tasks []store.Task, settings store.Settings) error {
	if tasks == nil {
		tasks = []store.Task{}
	}
	data, err := json.MarshalIndent(Payload{Tasks: tasks, Settings: settings}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// Read parses a backup document. The file must carry both a "tasks" and a
// "settings" key; anything else is rejected with ErrInvalidFormat and the
// caller's state stays untouched.
func Read(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("read import file: %w", err)
	}
	return Decode(data)
}

// Decode validates and decodes a backup document from raw bytes.
func Decode(data []byte) (Payload, error) {
	var probe struct {
		Tasks    json.RawMessage `json:"tasks"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Payload{}, fmt.Errorf("parse import: %w", err)
	}
	if probe.Tasks == nil || probe.Settings == nil {
		return Payload{}, ErrInvalidFormat
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("parse import: %w", err)
	}
	return p, nil
}
