package player

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// Pick-up types.
const (
	PickUpOwnTile   = 0
	PickUpFront     = 1
	PickUpFrontArea = 2
	PickUpAround    = 3
	PickUpNear4     = 4
	PickUpNear8     = 5
	PickUpNear90    = 6
)

// PickUpItems picks up the item under the character, then items selected
// by pickUpType (0 = the configured type). It reports whether anything
// was picked up or approached.
func (c *Character) PickUpItems(pickUpType int) bool {
	if c.beings == nil {
		return false
	}

	status := false
	if item := c.beings.FindAt(c.tile, entity.TypeItem); item != nil {
		status = c.pickUp(item)
	}

	if pickUpType == 0 {
		pickUpType = c.settings.PickUpType
	}

	x, y := c.tile.X, c.tile.Y
	switch pickUpType {
	case PickUpFront:
		switch c.facing {
		case entity.DirUp, entity.DirDown, entity.DirLeft, entity.DirRight:
		default:
			return status
		}
		front := c.tile.Add(c.facing.Delta())
		if item := c.beings.FindAt(front, entity.TypeItem); item != nil && c.pickUp(item) {
			status = true
		}
	case PickUpFrontArea:
		lo, hi := c.tile, c.tile
		switch c.facing {
		case entity.DirUp:
			lo, hi = world.Tile(x-1, y-1), world.Tile(x+1, y)
		case entity.DirDown:
			lo, hi = world.Tile(x-1, y), world.Tile(x+1, y+1)
		case entity.DirLeft:
			lo, hi = world.Tile(x-1, y-1), world.Tile(x, y+1)
		case entity.DirRight:
			lo, hi = world.Tile(x, y-1), world.Tile(x+1, y+1)
		}
		if c.pickUpAll(lo, hi) {
			status = true
		}
	case PickUpAround:
		if c.pickUpAll(world.Tile(x-1, y-1), world.Tile(x+1, y+1)) {
			status = true
		}
	case PickUpNear4, PickUpNear8, PickUpNear90:
		if c.pickUpAll(world.Tile(x-1, y-1), world.Tile(x+1, y+1)) || c.pickUpNearest(nearRadius(pickUpType)) {
			status = true
		}
	}
	return status
}

// PickUpTarget returns the item being walked to, or 0.
func (c *Character) PickUpTarget() uint32 { return c.pickUpTarget }

// pickUp takes item when it is close, otherwise walks to it for the
// "nearest" pick-up types.
func (c *Character) pickUp(item *entity.Being) bool {
	if item == nil {
		return false
	}
	if c.closeEnoughToPickUp(item) {
		c.handler.PickUp(item.ID)
		c.pickUpTarget = 0
		return true
	}
	if !c.walksToItems() {
		return false
	}
	if c.tm != nil {
		path := c.tm.FindPathFromPixel(c.pixel, item.Tile, c.walkMask, 0)
		if !path.Empty() {
			c.NavigateTo(item.Tile)
		} else {
			c.setDestination(item.Tile)
		}
		c.pickUpTarget = item.ID
		c.log.Debug("walking to item", zap.Uint32("item", item.ID), zap.Stringer("tile", item.Tile))
	}
	return true
}

func nearRadius(pickUpType int) int {
	switch pickUpType {
	case PickUpNear4:
		return 4
	case PickUpNear8:
		return 8
	}
	return 90
}

func (c *Character) walksToItems() bool {
	t := c.settings.PickUpType
	return t >= PickUpNear4 && t <= PickUpNear90
}

// closeEnoughToPickUp uses the squared distance: under 6 normally, under
// 4 for the walking types.
func (c *Character) closeEnoughToPickUp(item *entity.Being) bool {
	limit := 6
	if c.walksToItems() {
		limit = 4
	}
	return world.DistanceSquared(c.tile, item.Tile) < limit
}

// pickUpAll picks up every item in the rectangle except the one under the
// character, which PickUpItems has already tried.
func (c *Character) pickUpAll(lo, hi world.TilePosition) bool {
	found := false
	for _, item := range c.beings.InArea(lo, hi, entity.TypeItem) {
		if item.Tile == c.tile {
			continue
		}
		if c.pickUp(item) {
			found = true
		}
	}
	return found
}

// pickUpNearest picks up the closest item within radius tiles. With
// target_only_reachable, items without a path are ignored, the same rule
// targeting uses.
func (c *Character) pickUpNearest(radius int) bool {
	lo := c.tile.Add(-radius, -radius)
	hi := c.tile.Add(radius, radius)

	var closest *entity.Being
	best := 0
	for _, item := range c.beings.InArea(lo, hi, entity.TypeItem) {
		d := world.DistanceSquared(c.tile, item.Tile)
		if d == 0 || d > radius*radius {
			continue
		}
		if closest != nil && d >= best {
			continue
		}
		if c.settings.TargetOnlyReachable && !c.IsReachable(item, 0) {
			continue
		}
		closest, best = item, d
	}
	if closest == nil {
		return false
	}
	return c.pickUp(closest)
}

// pickUpTick finishes walking pick-ups once the item is close enough.
func (c *Character) pickUpTick() {
	if c.pickUpTarget == 0 {
		return
	}
	item := c.lookup(c.pickUpTarget)
	if item == nil {
		c.pickUpTarget = 0
		return
	}
	if c.closeEnoughToPickUp(item) {
		c.pickUp(item)
	}
}
