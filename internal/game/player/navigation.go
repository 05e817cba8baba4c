package player

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// navigation is the active path-following request.
type navigation struct {
	active      bool
	dest        world.TilePosition
	path        world.Path
	originPixel world.PixelPosition
	originTile  world.TilePosition
	trackedID   uint32
}

// NavigateTo computes a path to t and starts following it. It reports
// whether a non-empty path was found.
func (c *Character) NavigateTo(t world.TilePosition) bool {
	if c.tm == nil {
		return false
	}
	c.startNavigation(t, 0)
	c.log.Debug("navigate",
		zap.Stringer("from", c.tile),
		zap.Stringer("to", t),
		zap.Int("steps", c.nav.path.Len()))
	return !c.nav.path.Empty()
}

// NavigateToBeing follows b, re-pathing whenever it changes tile.
func (c *Character) NavigateToBeing(b *entity.Being) bool {
	if c.tm == nil || b == nil {
		return false
	}
	c.startNavigation(b.Tile, b.ID)
	return !c.nav.path.Empty()
}

func (c *Character) startNavigation(t world.TilePosition, tracked uint32) {
	c.nav = navigation{
		active:      true,
		dest:        t,
		originPixel: c.pixel,
		originTile:  c.tile,
		trackedID:   tracked,
	}
	c.sync.anchor = c.nav.originTile
	c.nav.path = c.tm.FindPathFromPixel(c.nav.originPixel, t, c.walkMask, 0)
	c.drawPath()
}

// NavigateClean drops the active navigation and its drawn path.
func (c *Character) NavigateClean() {
	if c.tm == nil {
		return
	}
	c.nav = navigation{}
	c.tm.Special().CleanRoads()
}

// Navigating reports whether a navigation request is active.
func (c *Character) Navigating() bool { return c.nav.active }

// NavigationTarget returns the destination of the active navigation.
func (c *Character) NavigationTarget() (world.TilePosition, bool) {
	return c.nav.dest, c.nav.active
}

// NavigationPath returns a copy of the remaining path.
func (c *Character) NavigationPath() world.Path { return c.nav.path.Clone() }

// NavigationOrigin returns where the active navigation started.
func (c *Character) NavigationOrigin() (world.PixelPosition, world.TilePosition) {
	return c.nav.originPixel, c.nav.originTile
}

// TrackedBeing returns the ID of the being being followed, or 0.
func (c *Character) TrackedBeing() uint32 { return c.nav.trackedID }

// navigationTick consumes at most one path node per tick.
func (c *Character) navigationTick() {
	if !c.nav.active || c.tm == nil {
		return
	}

	if c.nav.trackedID != 0 && !c.refreshTracked() {
		return
	}

	if c.tile == c.nav.dest {
		c.log.Debug("navigation arrived", zap.Stringer("tile", c.tile))
		c.NavigateClean()
		return
	}

	if c.IsMoving() || c.nav.path.Empty() || !c.crossInRange() {
		return
	}

	head, _ := c.nav.path.Front()
	if head == c.tile {
		c.nav.path.PopFront()
		c.drawPath()
		return
	}
	c.MoveTo(head)
}

// refreshTracked re-paths when the followed being changed tile. It
// reports false when navigation was cancelled.
func (c *Character) refreshTracked() bool {
	var b *entity.Being
	if c.beings != nil {
		b = c.beings.Get(c.nav.trackedID)
	}
	if b == nil {
		c.NavigateClean()
		return false
	}
	if b.Tile == c.nav.dest {
		return true
	}
	c.nav.dest = b.Tile
	c.nav.path = c.tm.FindPathFromPixel(c.pixel, b.Tile, c.walkMask, 0)
	c.drawPath()
	return true
}

func (c *Character) drawPath() {
	if !c.settings.DrawPath {
		return
	}
	layer := c.tm.Special()
	layer.CleanRoads()
	layer.AddRoad(c.nav.path)
}
