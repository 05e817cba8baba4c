package world

import (
	"fmt"

	"github.com/Faultbox/midgard-nav/pkg/formats"
)

// ChangeListener is notified after the current map is replaced.
type ChangeListener func(previous, current *TileMap)

// Manager owns the current map and swaps it wholesale on map change.
type Manager struct {
	current   *TileMap
	listeners []ChangeListener
}

// NewManager creates a manager with no map loaded.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current map, or nil.
func (m *Manager) Current() *TileMap {
	return m.current
}

// OnChange registers a listener for map changes.
func (m *Manager) OnChange(l ChangeListener) {
	m.listeners = append(m.listeners, l)
}

// Set replaces the current map and notifies listeners.
func (m *Manager) Set(tm *TileMap) {
	prev := m.current
	m.current = tm
	for _, l := range m.listeners {
		l(prev, tm)
	}
}

// LoadGAT loads a map from a GAT file and makes it current.
func (m *Manager) LoadGAT(name, path string) error {
	gat, err := formats.LoadGAT(path)
	if err != nil {
		return fmt.Errorf("loading map %s: %w", name, err)
	}
	tm, err := FromGAT(name, gat)
	if err != nil {
		return fmt.Errorf("building map %s: %w", name, err)
	}
	m.Set(tm)
	return nil
}

// Archive is a read-only store of client data files, such as a GRF.
type Archive interface {
	Read(path string) ([]byte, error)
}

// GATPath returns the archive path of a map's GAT file.
func GATPath(name string) string {
	return "data/" + name + ".gat"
}

// LoadFromArchive loads data/<name>.gat from an archive and makes it current.
func (m *Manager) LoadFromArchive(a Archive, name string) error {
	data, err := a.Read(GATPath(name))
	if err != nil {
		return fmt.Errorf("loading map %s: %w", name, err)
	}
	gat, err := formats.ParseGAT(data)
	if err != nil {
		return fmt.Errorf("parsing map %s: %w", name, err)
	}
	tm, err := FromGAT(name, gat)
	if err != nil {
		return fmt.Errorf("building map %s: %w", name, err)
	}
	m.Set(tm)
	return nil
}
