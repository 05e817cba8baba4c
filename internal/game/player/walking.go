package player

import (
	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// SetWalkingDir holds a walking direction. An idle character starts
// walking immediately.
func (c *Character) SetWalkingDir(dir entity.Direction) {
	c.walkingDir = dir
	if !c.IsMoving() && dir != entity.DirNone {
		c.StartWalking(dir)
	}
}

// StartWalking requests a one-tile step in dir. Blocked axes are dropped;
// a blocked diagonal is dropped entirely, never replaced by an orthogonal
// step. When nothing remains the character only turns.
func (c *Character) StartWalking(dir entity.Direction) {
	if c.tm == nil || dir == entity.DirNone {
		return
	}
	c.pickUpTarget = 0

	if c.IsMoving() && !c.nav.path.Empty() {
		// Finish the current step locally; the server keeps the path.
		c.dest, c.hasDest = c.tile, true
		return
	}

	x, y := c.tile.X, c.tile.Y
	dx, dy := dir.Delta()
	diagonal := dx != 0 && dy != 0

	if dx != 0 && !c.tm.IsWalkable(x+dx, y, c.walkMask) {
		dx = 0
	}
	if dy != 0 && !c.tm.IsWalkable(x, y+dy, c.walkMask) {
		dy = 0
	}
	if diagonal && (dx == 0 || dy == 0 || !c.tm.IsWalkable(x+dx, y+dy, c.walkMask)) {
		dx, dy = 0, 0
	}

	if (dx != 0 || dy != 0) && c.tm.IsWalkable(x+dx, y+dy, c.walkMask) {
		c.setDestination(world.Tile(x+dx, y+dy))
		return
	}
	if dir != c.facing {
		c.handler.SetDirection(dir)
		c.facing = dir
	}
}

// Move requests a relative step without walkability checks; the server
// decides.
func (c *Character) Move(dx, dy int) {
	c.pickUpTarget = 0
	c.MoveTo(c.tile.Add(dx, dy))
}

// MoveTo requests walking to t.
func (c *Character) MoveTo(t world.TilePosition) {
	c.setDestination(t)
}

// MoveByDirection moves one tile along dir.
func (c *Character) MoveByDirection(dir entity.Direction) {
	dx, dy := dir.Delta()
	c.Move(dx, dy)
}

// StopWalking cancels the held direction and all navigation. While
// walking, the current tile becomes the destination so client and server
// agree. sendToServer forces the request even when that tile was the last
// one sent.
func (c *Character) StopWalking(sendToServer bool) {
	if c.IsMoving() && c.walkingDir != entity.DirNone {
		c.walkingDir = entity.DirNone
		c.pickUpTarget = 0

		if sendToServer {
			c.hasDest = false
		}
		c.setDestination(c.pixel.Tile())
		c.action = entity.ActionStand
	}
	c.pathSetByMouse = false
	c.NavigateClean()
}

// SetPathSetByMouse marks the current walk as mouse-driven.
func (c *Character) SetPathSetByMouse(v bool) { c.pathSetByMouse = v }

// PathSetByMouse reports whether the current walk came from a click.
func (c *Character) PathSetByMouse() bool { return c.pathSetByMouse }

// setDestination sends a destination request unless it repeats the last one.
func (c *Character) setDestination(t world.TilePosition) {
	if c.settings.AttackType == AttackDefault || !c.settings.AttackMoving {
		c.keepAttacking = false
	}
	if c.hasDest && c.dest == t {
		return
	}
	c.dest, c.hasDest = t, true
	c.handler.SetDestination(t.X, t.Y, c.facing)
}

// ToggleSit asks the server to sit down or stand up. It reports whether
// a request was sent.
func (c *Character) ToggleSit() bool {
	switch c.action {
	case entity.ActionStand:
		c.handler.ChangeAction(entity.ActionSit)
	case entity.ActionSit:
		c.handler.ChangeAction(entity.ActionStand)
	default:
		return false
	}
	return true
}

// Emote sends an emote.
func (c *Character) Emote(id int) bool {
	if id <= 0 {
		return false
	}
	c.handler.Emote(id)
	return true
}
