package player

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// reconciliation tracks the server's view of our position.
type reconciliation struct {
	server world.TilePosition // last server-confirmed tile, (0,0) = never
	anchor world.TilePosition // last known good tile
}

// SetServerPosition records the server-confirmed tile. The correction
// itself happens on the next Logic tick.
func (c *Character) SetServerPosition(t world.TilePosition) {
	if c.tm != nil {
		c.moveCross(t)
		c.tm.MarkWalked(t.X, t.Y)
	}
	c.sync.server = t
}

// ServerTile returns the last server-confirmed tile.
func (c *Character) ServerTile() world.TilePosition { return c.sync.server }

// Anchor returns the last known good tile.
func (c *Character) Anchor() world.TilePosition { return c.sync.anchor }

// DriftThreshold returns the effective snap distance in tiles.
func (c *Character) DriftThreshold() int {
	return c.profile.DriftThreshold(c.settings.DriftThreshold, c.settings.SyncMovement)
}

// reconcile snaps the predicted tile to the server tile when they drift
// further apart than the threshold. A report still equal to the anchor
// during a navigation step is stale and waits for the step to finish.
// A snap mid-navigation re-plans from the corrected tile.
func (c *Character) reconcile() {
	if c.sync.server.IsZero() {
		return
	}
	if c.nav.active && c.IsMoving() && c.sync.server == c.sync.anchor {
		return
	}
	drift := world.Chebyshev(c.tile, c.sync.server)
	threshold := c.DriftThreshold()
	if drift <= threshold {
		return
	}
	c.log.Debug("position drift, snapping to server",
		zap.Stringer("predicted", c.tile),
		zap.Stringer("server", c.sync.server),
		zap.Int("drift", drift),
		zap.Int("threshold", threshold))
	c.snapTo(c.sync.server)
	if c.nav.active {
		c.startNavigation(c.nav.dest, c.nav.trackedID)
	}
}

func (c *Character) snapTo(t world.TilePosition) {
	c.tile = t
	c.pixel = t.Pixel()
	c.sync.anchor = t
}

// moveCross moves the server-position marker on the special layer.
func (c *Character) moveCross(t world.TilePosition) {
	if !c.settings.DrawPath {
		return
	}
	c.clearCross()
	layer := c.tm.Special()
	if t != c.tile && layer.Marker(t.X, t.Y) == world.MarkerEmpty {
		layer.SetMarker(t.X, t.Y, world.MarkerCross)
	}
}

func (c *Character) clearCross() {
	cross := c.sync.server
	if cross.IsZero() || c.tm == nil {
		return
	}
	layer := c.tm.Special()
	if layer.Marker(cross.X, cross.Y) == world.MarkerCross {
		layer.SetMarker(cross.X, cross.Y, world.MarkerEmpty)
	}
}

// crossInRange reports whether the server position is close enough for
// navigation to issue the next step.
func (c *Character) crossInRange() bool {
	cross := c.sync.server
	if cross.IsZero() {
		return true
	}
	dist := c.profile.NavigationRange(c.settings.SyncMovement)
	return world.Chebyshev(c.tile, cross) <= dist
}
