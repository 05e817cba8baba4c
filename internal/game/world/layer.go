package world

// Marker is a client-authored annotation on a tile.
type Marker uint8

const (
	MarkerEmpty Marker = iota
	MarkerRoad         // part of the drawn navigation path
	MarkerCross        // last server-confirmed position
	MarkerHome
)

// SpecialLayer holds client-side tile markers. It never affects walkability.
type SpecialLayer struct {
	width   int
	height  int
	markers []Marker
}

func newSpecialLayer(width, height int) *SpecialLayer {
	return &SpecialLayer{
		width:   width,
		height:  height,
		markers: make([]Marker, width*height),
	}
}

// Marker returns the marker at (x, y).
func (l *SpecialLayer) Marker(x, y int) Marker {
	if !l.inBounds(x, y) {
		return MarkerEmpty
	}
	return l.markers[y*l.width+x]
}

// SetMarker sets the marker at (x, y).
func (l *SpecialLayer) SetMarker(x, y int, m Marker) {
	if !l.inBounds(x, y) {
		return
	}
	l.markers[y*l.width+x] = m
}

// AddRoad marks every empty tile along path as road.
func (l *SpecialLayer) AddRoad(path Path) {
	for _, t := range path {
		if l.Marker(t.X, t.Y) == MarkerEmpty {
			l.SetMarker(t.X, t.Y, MarkerRoad)
		}
	}
}

// CleanRoads removes all road markers.
func (l *SpecialLayer) CleanRoads() {
	for i, m := range l.markers {
		if m == MarkerRoad {
			l.markers[i] = MarkerEmpty
		}
	}
}

// Count returns how many tiles carry marker m.
func (l *SpecialLayer) Count(m Marker) int {
	n := 0
	for _, v := range l.markers {
		if v == m {
			n++
		}
	}
	return n
}

func (l *SpecialLayer) inBounds(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}
