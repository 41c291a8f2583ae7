package store

import (
	"encoding/json"
	"fmt"
)

// Settings returns the current preferences record.
func (s *Store) Settings() Settings {
	return s.settings
}

// SaveSettings replaces the preferences record and persists it
// immediately.
func (s *Store) SaveSettings(settings Settings) error {
	s.settings = settings
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.db.Set(keySettings, data); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}
