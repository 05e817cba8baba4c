package player

import (
	"github.com/Faultbox/midgard-nav/internal/game/automation"
	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

var _ automation.Actor = (*Character)(nil)

// IsWalkable reports whether the character may stand on t.
func (c *Character) IsWalkable(t world.TilePosition) bool {
	if c.tm == nil {
		return false
	}
	return c.tm.IsWalkable(t.X, t.Y, c.walkMask)
}

// Face turns locally to local and tells the server server.
func (c *Character) Face(local, server entity.Direction) {
	c.SetDirection(local)
	c.handler.SetDirection(server)
}

// AllowAction reports whether the character may start a new action.
func (c *Character) AllowAction() bool { return c.action != entity.ActionDead }

// ChangeAction asks the server for a new action.
func (c *Character) ChangeAction(a entity.Action) { c.handler.ChangeAction(a) }

// PetEmote sends an emote through the pet, if there is one.
func (c *Character) PetEmote(id int) {
	if c.pet == nil || id <= 0 {
		return
	}
	c.pet.Emote(id)
}

// WearOutfit switches to the next or previous stored outfit.
func (c *Character) WearOutfit(next bool) {
	if c.outfits == nil {
		return
	}
	if next {
		c.outfits.WearNext()
	} else {
		c.outfits.WearPrevious()
	}
}

// DropShortcut drops the first shortcut item, or every one when all is set.
func (c *Character) DropShortcut(all bool) {
	if c.dropper == nil {
		return
	}
	if all {
		c.dropper.DropAll()
	} else {
		c.dropper.DropFirst()
	}
}
