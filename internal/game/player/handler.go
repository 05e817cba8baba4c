package player

import (
	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// Handler sends fire-and-forget requests to the server. Confirmation
// arrives later through the Character's inbound setters.
type Handler interface {
	SetDestination(x, y int, dir entity.Direction)
	SetDirection(dir entity.Direction)
	Attack(id uint32, serverSide bool)
	StopAttack()
	ChangeAction(a entity.Action)
	Emote(id int)
	PickUp(itemID uint32)
}

// Beings looks up other beings on the map.
type Beings interface {
	Get(id uint32) *entity.Being
	FindAt(tile world.TilePosition, t entity.Type) *entity.Being
	InArea(min, max world.TilePosition, t entity.Type) []*entity.Being
}

// Equipment reports and switches the equipped weapon.
type Equipment interface {
	// AttackRange returns the weapon range in tiles, ok=false when unarmed.
	AttackRange() (tiles int, ok bool)
	EquipMelee(withShield bool)
	EquipRanged()
}

// Relations answers player relation queries for the PvP policy.
type Relations interface {
	IsFriend(name string) bool
	IsEnemy(name string) bool
}

// Outfits cycles stored outfits.
type Outfits interface {
	WearNext()
	WearPrevious()
}

// Dropper drops items from the drop shortcut bar.
type Dropper interface {
	DropFirst()
	DropAll()
}

// Pet forwards emotes to the player's pet.
type Pet interface {
	Emote(id int)
}

// Highlighter is told when a being gains or loses the target highlight.
type Highlighter interface {
	Target(b *entity.Being)
	Untarget(b *entity.Being)
}

type nopHandler struct{}

func (nopHandler) SetDestination(int, int, entity.Direction) {}
func (nopHandler) SetDirection(entity.Direction)             {}
func (nopHandler) Attack(uint32, bool)                       {}
func (nopHandler) StopAttack()                               {}
func (nopHandler) ChangeAction(entity.Action)                {}
func (nopHandler) Emote(int)                                 {}
func (nopHandler) PickUp(uint32)                             {}
