package world

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-nav/pkg/formats"
)

// ErrEmptyMap is returned when a map would have no tiles.
var ErrEmptyMap = errors.New("map has no tiles")

// TileMap answers walkability queries and computes paths. It is shared
// read-only by every being on the map; the only mutable part is the
// client-authored special layer.
type TileMap struct {
	name   string
	width  int
	height int
	blocks []BlockMask
	custom bool // client-authored: walked tiles are learned

	special *SpecialLayer
}

// NewTileMap creates an all-ground map.
func NewTileMap(name string, width, height int) (*TileMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyMap, width, height)
	}
	m := &TileMap{
		name:   name,
		width:  width,
		height: height,
		blocks: make([]BlockMask, width*height),
	}
	for i := range m.blocks {
		m.blocks[i] = BlockGround
	}
	m.special = newSpecialLayer(width, height)
	return m, nil
}

// FromGAT builds a map from a parsed altitude table.
func FromGAT(name string, gat *formats.GAT) (*TileMap, error) {
	if gat == nil {
		return nil, fmt.Errorf("%w: nil GAT", ErrEmptyMap)
	}
	m, err := NewTileMap(name, gat.Width, gat.Height)
	if err != nil {
		return nil, err
	}
	gat.Each(func(x, y int, c formats.GATCell) {
		m.blocks[m.index(x, y)] = maskForCell(c.Type)
	})
	return m, nil
}

// Name returns the map name.
func (m *TileMap) Name() string { return m.name }

// Width returns the width in tiles.
func (m *TileMap) Width() int { return m.width }

// Height returns the height in tiles.
func (m *TileMap) Height() int { return m.height }

// InBounds reports whether (x, y) lies on the map.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Block sets the block bits of a tile. Used while building maps.
func (m *TileMap) Block(x, y int, mask BlockMask) {
	if !m.InBounds(x, y) {
		return
	}
	m.blocks[m.index(x, y)] = mask
}

// BlockMaskAt returns the block bits of a tile; out of bounds is a wall.
func (m *TileMap) BlockMaskAt(x, y int) BlockMask {
	if !m.InBounds(x, y) {
		return BlockWall
	}
	return m.blocks[m.index(x, y)]
}

// IsWalkable reports whether a walker with the given mask may enter (x, y).
func (m *TileMap) IsWalkable(x, y int, mask BlockMask) bool {
	if m == nil || !m.InBounds(x, y) {
		return false
	}
	return !m.blocks[m.index(x, y)].Has(mask)
}

// SetCustom marks the map as client-authored.
func (m *TileMap) SetCustom(custom bool) { m.custom = custom }

// IsCustom reports whether the map is client-authored.
func (m *TileMap) IsCustom() bool { return m.custom }

// MarkWalked records that the server accepted a position at (x, y). On a
// custom map the tile becomes walkable ground; otherwise nothing changes.
func (m *TileMap) MarkWalked(x, y int) {
	if m == nil || !m.custom || !m.InBounds(x, y) {
		return
	}
	m.blocks[m.index(x, y)] = BlockGround
}

// Clone returns an independent copy with an empty special layer, for
// clients that must not share overlay state.
func (m *TileMap) Clone() *TileMap {
	c := &TileMap{
		name:    m.name,
		width:   m.width,
		height:  m.height,
		blocks:  make([]BlockMask, len(m.blocks)),
		custom:  m.custom,
		special: newSpecialLayer(m.width, m.height),
	}
	copy(c.blocks, m.blocks)
	return c
}

// Special returns the client-authored overlay layer.
func (m *TileMap) Special() *SpecialLayer {
	return m.special
}

func (m *TileMap) index(x, y int) int {
	return y*m.width + x
}
