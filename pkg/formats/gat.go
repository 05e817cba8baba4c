// Package formats provides parsers for Ragnarok Online map data files.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// GAT format errors.
var (
	ErrInvalidGATMagic       = errors.New("invalid GAT magic: expected 'GRAT'")
	ErrUnsupportedGATVersion = errors.New("unsupported GAT version")
	ErrTruncatedGATData      = errors.New("truncated GAT data")
	ErrInvalidGATDimensions  = errors.New("invalid GAT dimensions")
)

const (
	gatMagic      = "GRAT"
	gatMaxSide    = 4096
	gatCellRecord = 20 // 4 corner heights + type, all 4 bytes
)

// GATVersion represents the GAT file version.
type GATVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GATVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// GATCellType represents the walkability type of a cell.
type GATCellType uint32

// Cell type constants.
const (
	GATWalkable      GATCellType = 0 // Normal walkable ground
	GATBlocked       GATCellType = 1 // Cannot walk through
	GATWater         GATCellType = 2 // Deep water
	GATWalkableWater GATCellType = 3 // Shore/shallow water
	GATSnipeable     GATCellType = 4 // Cliff: shoot over, no walking
	GATBlockedSnipe  GATCellType = 5 // Blocked but can shoot over
)

// String returns a human-readable cell type name.
func (t GATCellType) String() string {
	switch t {
	case GATWalkable:
		return "Walkable"
	case GATBlocked:
		return "Blocked"
	case GATWater:
		return "Water"
	case GATWalkableWater:
		return "Walkable+Water"
	case GATSnipeable:
		return "Snipeable"
	case GATBlockedSnipe:
		return "Blocked+Snipe"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(t))
	}
}

// IsWall reports whether the cell is solid for every walker.
func (t GATCellType) IsWall() bool {
	return t == GATBlocked || t == GATBlockedSnipe || t == GATSnipeable
}

// IsWater reports whether the cell contains water.
func (t GATCellType) IsWater() bool {
	return t == GATWater || t == GATWalkableWater
}

// IsDeepWater reports whether only swimmers and fliers can cross the cell.
func (t GATCellType) IsDeepWater() bool {
	return t == GATWater
}

// GATCell is one cell of the altitude table. Only the mean altitude of
// the four corners is kept.
type GATCell struct {
	Altitude float32
	Type     GATCellType
}

// GAT represents a parsed Ground Altitude Table file.
type GAT struct {
	Version GATVersion
	Width   int
	Height  int
	Cells   []GATCell
}

// Cell returns the cell at (x, y), or false when out of bounds.
func (g *GAT) Cell(x, y int) (GATCell, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return GATCell{}, false
	}
	return g.Cells[y*g.Width+x], true
}

// Each calls fn for every cell in row-major order.
func (g *GAT) Each(fn func(x, y int, c GATCell)) {
	for i, c := range g.Cells {
		fn(i%g.Width, i/g.Width, c)
	}
}

// ReadGAT decodes a GAT stream.
func ReadGAT(r io.Reader) (*GAT, error) {
	br := bufio.NewReader(r)

	var header [14]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header", ErrTruncatedGATData)
	}
	if string(header[0:4]) != gatMagic {
		return nil, ErrInvalidGATMagic
	}

	// Stored as [minor, major].
	version := GATVersion{Major: header[5], Minor: header[4]}
	if version.Major < 1 || version.Major > 3 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGATVersion, version)
	}

	width := binary.LittleEndian.Uint32(header[6:10])
	height := binary.LittleEndian.Uint32(header[10:14])
	if width == 0 || height == 0 || width > gatMaxSide || height > gatMaxSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGATDimensions, width, height)
	}

	gat := &GAT{
		Version: version,
		Width:   int(width),
		Height:  int(height),
		Cells:   make([]GATCell, int(width*height)),
	}

	var rec [gatCellRecord]byte
	for i := range gat.Cells {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return nil, fmt.Errorf("%w: cell %d", ErrTruncatedGATData, i)
		}
		var sum float32
		for c := 0; c < 4; c++ {
			sum += math.Float32frombits(binary.LittleEndian.Uint32(rec[c*4:]))
		}
		gat.Cells[i] = GATCell{
			Altitude: sum / 4,
			Type:     GATCellType(binary.LittleEndian.Uint32(rec[16:20])),
		}
	}

	return gat, nil
}

// ParseGAT parses a GAT file from raw bytes.
func ParseGAT(data []byte) (*GAT, error) {
	return ReadGAT(bytes.NewReader(data))
}

// LoadGAT parses a GAT file from disk.
func LoadGAT(path string) (*GAT, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GAT file: %w", err)
	}
	defer f.Close()
	return ReadGAT(f)
}

// CountByType returns the count of cells for each type.
func (g *GAT) CountByType() map[GATCellType]int {
	counts := make(map[GATCellType]int)
	for _, cell := range g.Cells {
		counts[cell.Type]++
	}
	return counts
}
