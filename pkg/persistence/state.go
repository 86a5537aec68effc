package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/upnp-panel/upnp-go/pkg/upnp"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// PanelState contains the persistent identity of a panel: the UUIDs
// assigned to the root and its devices, keyed by target. Restoring it
// onto a rebuilt tree keeps device identities stable across restarts.
type PanelState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// RootUUID is the root device UUID.
	RootUUID string `json:"root_uuid"`

	// DeviceUUIDs maps device targets to their assigned UUIDs.
	DeviceUUIDs map[string]string `json:"device_uuids,omitempty"`
}

// StateStore manages persistence of panel state to a JSON file.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a new panel state store.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Save persists the panel state to disk.
func (s *StateStore) Save(state *PanelState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the panel state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *StateStore) Load() (*PanelState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &PanelState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the state file.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Snapshot captures the tree's current identities.
func Snapshot(root *upnp.RootDevice) *PanelState {
	state := &PanelState{
		RootUUID:    root.UUID(),
		DeviceUUIDs: make(map[string]string),
	}
	for i := 0; i < root.NumDevices(); i++ {
		d := root.DeviceAt(i)
		if d.UUID() != "" {
			state.DeviceUUIDs[d.Target()] = d.UUID()
		}
	}
	return state
}

// Restore applies saved identities onto a rebuilt tree, matching
// devices by target. Targets absent from the state keep their current
// UUIDs; malformed saved UUIDs are rejected by the tree and likewise
// leave the current value in place.
func Restore(root *upnp.RootDevice, state *PanelState) {
	if state == nil {
		return
	}
	if state.RootUUID != "" {
		root.SetUUID(state.RootUUID)
	}
	for i := 0; i < root.NumDevices(); i++ {
		d := root.DeviceAt(i)
		if u, ok := state.DeviceUUIDs[d.Target()]; ok {
			d.SetUUID(u)
		}
	}
}
