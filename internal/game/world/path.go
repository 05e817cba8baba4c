package world

// Path is an ordered list of tiles in traversal order.
type Path []TilePosition

// Len returns the number of tiles left.
func (p Path) Len() int { return len(p) }

// Empty reports whether no tiles are left.
func (p Path) Empty() bool { return len(p) == 0 }

// Front returns the next tile to reach.
func (p Path) Front() (TilePosition, bool) {
	if len(p) == 0 {
		return TilePosition{}, false
	}
	return p[0], true
}

// Last returns the destination tile.
func (p Path) Last() (TilePosition, bool) {
	if len(p) == 0 {
		return TilePosition{}, false
	}
	return p[len(p)-1], true
}

// PopFront drops the head of the path.
func (p *Path) PopFront() {
	if len(*p) == 0 {
		return
	}
	*p = (*p)[1:]
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}
