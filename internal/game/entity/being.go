package entity

import (
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// Type represents the type of being.
type Type uint8

const (
	TypePlayer Type = iota
	TypeMonster
	TypeNPC
	TypeItem
	TypePortal
)

func (t Type) String() string {
	switch t {
	case TypePlayer:
		return "player"
	case TypeMonster:
		return "monster"
	case TypeNPC:
		return "npc"
	case TypeItem:
		return "item"
	case TypePortal:
		return "portal"
	}
	return "unknown"
}

// Action is the server-confirmed activity of a being.
type Action uint8

const (
	ActionStand Action = iota
	ActionMove
	ActionSit
	ActionAttack
	ActionCast
	ActionDead
	ActionHurt
)

func (a Action) String() string {
	switch a {
	case ActionStand:
		return "standing"
	case ActionMove:
		return "moving"
	case ActionSit:
		return "sitting"
	case ActionAttack:
		return "attacking"
	case ActionCast:
		return "casting"
	case ActionDead:
		return "dead"
	case ActionHurt:
		return "hurt"
	}
	return "unknown"
}

// TargetCursor is the highlight drawn under a targeted being.
type TargetCursor uint8

const (
	CursorNone TargetCursor = iota
	CursorNormal
	CursorInRange
)

// Reach caches whether the local player can walk to a being.
type Reach uint8

const (
	ReachUnknown Reach = iota
	ReachYes
	ReachNo
)

// Being is any actor on the map other than the local player's own state.
type Being struct {
	ID        uint32
	Type      Type
	Name      string
	Tile      world.TilePosition
	Direction Direction
	Action    Action

	// Highlight state owned by targeting.
	Cursor   TargetCursor
	ShowName bool

	// Reachability cache filled by path queries.
	Reachable Reach
	Distance  int
}

// NewBeing creates a standing being at tile.
func NewBeing(id uint32, t Type, name string, tile world.TilePosition) *Being {
	return &Being{
		ID:        id,
		Type:      t,
		Name:      name,
		Tile:      tile,
		Direction: DirDown,
		ShowName:  t != TypeMonster,
	}
}

// IsAlive reports whether the being is not dead.
func (b *Being) IsAlive() bool {
	return b.Action != ActionDead
}

// Untarget clears the target highlight.
func (b *Being) Untarget() {
	b.Cursor = CursorNone
}
