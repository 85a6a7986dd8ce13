package config

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const tuningItem = "tuning"

// Store persists the last used tuning between runs.
type Store struct {
	manager *gdata.Manager
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{manager: m}, nil
}

// LoadTuning returns the saved tuning, or nil when nothing was saved. A nil
// Store behaves as empty.
func (s *Store) LoadTuning() (*Tuning, error) {
	if s == nil || s.manager == nil {
		return nil, nil
	}

	data, err := s.manager.LoadItem(tuningItem)
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	t, err := ParseTuning(data)
	if err != nil {
		log.Printf("[config] discarding saved tuning: %v", err)
		return nil, err
	}
	return t, nil
}

// SaveTuning writes t to the store. A nil Store discards it.
func (s *Store) SaveTuning(t *Tuning) error {
	if s == nil || s.manager == nil {
		return nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("serialize tuning: %w", err)
	}
	if err := s.manager.SaveItem(tuningItem, data); err != nil {
		return fmt.Errorf("save tuning: %w", err)
	}
	return nil
}
