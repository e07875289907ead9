package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

// SlotState is the persisted session: the token and the cached user
// profile, mirroring the two browser-storage keys of the web client.
type SlotState struct {
	Token string       `json:"authToken,omitempty"`
	User  *domain.User `json:"authUser,omitempty"`
}

// Empty reports whether the slot holds no session.
func (s SlotState) Empty() bool {
	return s.Token == "" && s.User == nil
}

// Slot is the persistent token/user storage shared across processes. It is
// read reactively and never locked; the last writer wins.
type Slot struct {
	path string
}

// NewSlot creates a Slot backed by the given file path.
func NewSlot(path string) *Slot {
	return &Slot{path: path}
}

// Path returns the backing file path.
func (s *Slot) Path() string {
	return s.path
}

// Load reads the persisted state. A missing file is an empty session, not
// an error.
func (s *Slot) Load() (SlotState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SlotState{}, nil
		}
		return SlotState{}, fmt.Errorf("read session slot: %w", err)
	}
	var state SlotState
	if err := json.Unmarshal(data, &state); err != nil {
		return SlotState{}, fmt.Errorf("decode session slot: %w", err)
	}
	return state, nil
}

// Save writes the state, creating parent directories as needed.
func (s *Slot) Save(state SlotState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session slot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session slot: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent slot is a no-op.
func (s *Slot) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session slot: %w", err)
	}
	return nil
}
