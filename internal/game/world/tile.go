// Package world provides the tile grid, walkability and pathfinding.
package world

import "fmt"

// TileSize is the edge length of one tile in pixels.
const TileSize = 32

// tileCenter is the pixel offset of a being standing on a tile.
const tileCenter = TileSize / 2

// TilePosition is an integer grid coordinate.
type TilePosition struct {
	X, Y int
}

// Tile is shorthand for TilePosition{X: x, Y: y}.
func Tile(x, y int) TilePosition {
	return TilePosition{X: x, Y: y}
}

// Add returns the tile offset by (dx, dy).
func (t TilePosition) Add(dx, dy int) TilePosition {
	return TilePosition{X: t.X + dx, Y: t.Y + dy}
}

// IsZero reports whether t is (0,0). Servers never place beings there,
// so it doubles as "unknown".
func (t TilePosition) IsZero() bool {
	return t.X == 0 && t.Y == 0
}

// Pixel returns the pixel position of a being standing on t.
func (t TilePosition) Pixel() PixelPosition {
	return PixelPosition{X: t.X*TileSize + tileCenter, Y: t.Y*TileSize + tileCenter}
}

func (t TilePosition) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// PixelPosition is a sub-tile coordinate used for smooth movement.
type PixelPosition struct {
	X, Y int
}

// Tile maps a pixel position back to its tile.
func (p PixelPosition) Tile() TilePosition {
	return TilePosition{X: floorDiv(p.X, TileSize), Y: floorDiv(p.Y, TileSize)}
}

// Chebyshev returns max(|dx|, |dy|) between two tiles.
func Chebyshev(a, b TilePosition) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// DistanceSquared returns dx*dx + dy*dy between two tiles.
func DistanceSquared(a, b TilePosition) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
