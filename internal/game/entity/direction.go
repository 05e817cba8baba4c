// Package entity implements beings (players, monsters, NPCs, floor items).
package entity

// Direction is a bitmask of the four cardinal directions. Diagonals
// combine two bits.
type Direction uint8

const (
	DirNone  Direction = 0
	DirDown  Direction = 1
	DirLeft  Direction = 2
	DirUp    Direction = 4
	DirRight Direction = 8
)

// RO direction indices (sprite/packet order).
const (
	DirS  = 0 // South (facing camera)
	DirSW = 1
	DirW  = 2
	DirNW = 3
	DirN  = 4
	DirNE = 5
	DirE  = 6
	DirSE = 7
)

// Has reports whether every bit of other is set.
func (d Direction) Has(other Direction) bool {
	return other != 0 && d&other == other
}

// Delta converts the bitmask into a unit step. Opposite bits cancel.
func (d Direction) Delta() (dx, dy int) {
	if d&DirUp != 0 {
		dy--
	}
	if d&DirDown != 0 {
		dy++
	}
	if d&DirLeft != 0 {
		dx--
	}
	if d&DirRight != 0 {
		dx++
	}
	return dx, dy
}

// DirectionFromDelta converts a step into a bitmask. Only signs matter.
func DirectionFromDelta(dx, dy int) Direction {
	var d Direction
	switch {
	case dy < 0:
		d |= DirUp
	case dy > 0:
		d |= DirDown
	}
	switch {
	case dx < 0:
		d |= DirLeft
	case dx > 0:
		d |= DirRight
	}
	return d
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	dx, dy := d.Delta()
	return DirectionFromDelta(-dx, -dy)
}

// RotateLeft turns a cardinal direction 90 degrees counter-clockwise.
func (d Direction) RotateLeft() Direction {
	switch d {
	case DirUp:
		return DirLeft
	case DirLeft:
		return DirDown
	case DirDown:
		return DirRight
	case DirRight:
		return DirUp
	}
	return d
}

// RotateRight turns a cardinal direction 90 degrees clockwise.
func (d Direction) RotateRight() Direction {
	switch d {
	case DirUp:
		return DirRight
	case DirRight:
		return DirDown
	case DirDown:
		return DirLeft
	case DirLeft:
		return DirUp
	}
	return d
}

// RotateHalfLeft turns a cardinal direction 45 degrees counter-clockwise,
// yielding a diagonal.
func (d Direction) RotateHalfLeft() Direction {
	switch d {
	case DirUp:
		return DirUp | DirLeft
	case DirRight:
		return DirUp | DirRight
	case DirDown:
		return DirDown | DirRight
	case DirLeft:
		return DirDown | DirLeft
	}
	return d
}

// Index converts the bitmask to an RO direction index (0-7).
// Unknown masks map to south.
func (d Direction) Index() int {
	switch d {
	case DirDown:
		return DirS
	case DirDown | DirLeft:
		return DirSW
	case DirLeft:
		return DirW
	case DirUp | DirLeft:
		return DirNW
	case DirUp:
		return DirN
	case DirUp | DirRight:
		return DirNE
	case DirRight:
		return DirE
	case DirDown | DirRight:
		return DirSE
	}
	return DirS
}

// DirectionFromIndex converts an RO direction index to a bitmask.
func DirectionFromIndex(idx int) Direction {
	masks := [8]Direction{
		DirDown, DirDown | DirLeft, DirLeft, DirUp | DirLeft,
		DirUp, DirUp | DirRight, DirRight, DirDown | DirRight,
	}
	return masks[((idx%8)+8)%8]
}

func (d Direction) String() string {
	names := map[Direction]string{
		DirNone: "none", DirDown: "down", DirLeft: "left", DirUp: "up", DirRight: "right",
		DirDown | DirLeft: "down-left", DirUp | DirLeft: "up-left",
		DirUp | DirRight: "up-right", DirDown | DirRight: "down-right",
	}
	if n, ok := names[d]; ok {
		return n
	}
	return "mixed"
}
