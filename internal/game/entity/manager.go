package entity

import (
	"sort"

	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// Manager indexes the beings currently known on the map.
type Manager struct {
	beings map[uint32]*Being
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		beings: make(map[uint32]*Being),
	}
}

// Add adds or replaces a being.
func (m *Manager) Add(b *Being) {
	m.beings[b.ID] = b
}

// Remove forgets a being.
func (m *Manager) Remove(id uint32) {
	delete(m.beings, id)
}

// Get returns a being by ID, or nil.
func (m *Manager) Get(id uint32) *Being {
	return m.beings[id]
}

// FindAt returns a being of the given type standing on tile.
func (m *Manager) FindAt(tile world.TilePosition, t Type) *Being {
	for _, id := range m.sortedIDs() {
		b := m.beings[id]
		if b.Type == t && b.Tile == tile {
			return b
		}
	}
	return nil
}

// InArea returns beings of the given type inside the inclusive rectangle,
// ordered by ID.
func (m *Manager) InArea(min, max world.TilePosition, t Type) []*Being {
	var out []*Being
	for _, id := range m.sortedIDs() {
		b := m.beings[id]
		if b.Type != t {
			continue
		}
		if b.Tile.X >= min.X && b.Tile.X <= max.X && b.Tile.Y >= min.Y && b.Tile.Y <= max.Y {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the number of beings.
func (m *Manager) Count() int {
	return len(m.beings)
}

// Clear removes every being, as on map change.
func (m *Manager) Clear() {
	m.beings = make(map[uint32]*Being)
}

// sortedIDs gives lookups a stable order.
func (m *Manager) sortedIDs() []uint32 {
	ids := make([]uint32, 0, len(m.beings))
	for id := range m.beings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
