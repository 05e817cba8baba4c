// Package player implements the locally controlled character: position
// reconciliation, navigation, walking, combat targeting, item pickup and
// automation, advanced once per frame by Logic.
package player

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/game/automation"
	"github.com/Faultbox/midgard-nav/internal/game/dialect"
	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/internal/logger"
)

// Deps are the collaborators a Character is built with. Only Handler is
// needed for anything to reach the server; every other field may be nil.
type Deps struct {
	Handler     Handler
	Beings      Beings
	Equipment   Equipment
	Relations   Relations
	Outfits     Outfits
	Dropper     Dropper
	Pet         Pet
	Highlighter Highlighter

	Map      *world.TileMap
	Profile  dialect.Profile
	Settings Settings
	Rand     *rand.Rand
	Logger   *zap.Logger
}

// Character is the local player aggregate. It is not safe for concurrent
// use; all calls happen on the game loop.
type Character struct {
	id   uint32
	name string

	handler     Handler
	beings      Beings
	equipment   Equipment
	relations   Relations
	outfits     Outfits
	dropper     Dropper
	pet         Pet
	highlighter Highlighter

	profile  dialect.Profile
	settings Settings
	log      *zap.Logger

	tm       *world.TileMap
	walkMask world.BlockMask

	tile       world.TilePosition
	pixel      world.PixelPosition
	facing     entity.Direction
	action     entity.Action
	walkingDir entity.Direction

	dest           world.TilePosition
	hasDest        bool
	pathSetByMouse bool

	sync reconciliation
	nav  navigation

	targetID       uint32
	lastTargetTile world.TilePosition
	keepAttacking  bool
	pickUpTarget   uint32

	automation *automation.Engine
}

// New creates a character standing at (0,0) facing down. The server
// position is unknown until SetServerPosition is called.
func New(id uint32, name string, d Deps) *Character {
	if d.Handler == nil {
		d.Handler = nopHandler{}
	}
	if d.Profile.Name == "" {
		d.Profile = dialect.ModernProfile()
	}
	if d.Settings == (Settings{}) {
		d.Settings = DefaultSettings()
	}
	if d.Logger == nil {
		d.Logger = logger.Named("player")
	}

	c := &Character{
		id:          id,
		name:        name,
		handler:     d.Handler,
		beings:      d.Beings,
		equipment:   d.Equipment,
		relations:   d.Relations,
		outfits:     d.Outfits,
		dropper:     d.Dropper,
		pet:         d.Pet,
		highlighter: d.Highlighter,
		profile:     d.Profile,
		log:         d.Logger.With(zap.Uint32("char", id)),
		tm:          d.Map,
		walkMask:    world.WalkMaskPlayer,
		facing:      entity.DirDown,
		action:      entity.ActionStand,
	}

	var opts []automation.Option
	if d.Rand != nil {
		opts = append(opts, automation.WithRand(d.Rand))
	}
	c.automation = automation.NewEngine(c, opts...)
	c.ApplySettings(d.Settings)
	return c
}

// Logic advances the character by one tick. The order is fixed:
// reconciliation, navigation, combat, automation.
func (c *Character) Logic() {
	c.reconcile()
	c.navigationTick()
	c.combatTick()
	c.pickUpTick()
	c.automationTick()
}

// ApplySettings replaces the settings. Automation picks up the new
// pattern and program immediately.
func (c *Character) ApplySettings(s Settings) {
	c.settings = s
	if s.Automation {
		c.automation.SetPattern(s.CrazyMove)
	} else {
		c.automation.SetPattern(automation.PatternNone)
	}
	c.automation.SetProgram(s.Program)
	if !s.DrawPath && c.tm != nil {
		c.tm.Special().CleanRoads()
	}
}

// Settings returns the current settings.
func (c *Character) Settings() Settings { return c.settings }

// Profile returns the server behaviour profile.
func (c *Character) Profile() dialect.Profile { return c.profile }

// SetTilePosition sets the predicted tile, e.g. when the walk animation
// reaches a new tile.
func (c *Character) SetTilePosition(t world.TilePosition) {
	c.tile = t
	c.pixel = t.Pixel()
}

// SetPixelPosition sets the predicted pixel position; the tile follows.
func (c *Character) SetPixelPosition(p world.PixelPosition) {
	c.pixel = p
	c.tile = p.Tile()
}

// SetAction applies a server-confirmed action.
func (c *Character) SetAction(a entity.Action) {
	prev := c.action
	c.action = a
	switch a {
	case entity.ActionStand:
		c.hasDest = false
	case entity.ActionDead:
		c.log.Debug("character died, dropping target")
		c.SetTarget(nil)
	}
	if prev != a {
		c.log.Debug("action changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", a))
	}
}

// OnTargetDied is called when the server reports that a being died.
func (c *Character) OnTargetDied(id uint32) {
	if c.beings != nil {
		if b := c.beings.Get(id); b != nil {
			b.Action = entity.ActionDead
		}
	}
	if id != c.targetID {
		return
	}
	t := c.Target()
	if t == nil || t.Type != entity.TypePlayer || !c.settings.TargetDeadPlayers {
		c.StopAttack(true)
	}
}

// SetMap swaps the current map. Navigation, markers and the server
// anchor belong to the old map and are dropped.
func (c *Character) SetMap(tm *world.TileMap) {
	if c.tm != nil {
		c.NavigateClean()
		c.clearCross()
	}
	prev := c.tm
	c.tm = tm
	c.nav = navigation{}
	c.sync = reconciliation{}
	c.hasDest = false
	c.pickUpTarget = 0

	fields := []zap.Field{}
	if prev != nil {
		fields = append(fields, zap.String("from", prev.Name()))
	}
	if tm != nil {
		fields = append(fields, zap.String("to", tm.Name()))
	}
	c.log.Info("map changed", fields...)
}

// Map returns the current map, or nil.
func (c *Character) Map() *world.TileMap { return c.tm }

// ID returns the character's being ID.
func (c *Character) ID() uint32 { return c.id }

// Name returns the character name.
func (c *Character) Name() string { return c.name }

// Tile returns the predicted tile.
func (c *Character) Tile() world.TilePosition { return c.tile }

// Pixel returns the predicted pixel position.
func (c *Character) Pixel() world.PixelPosition { return c.pixel }

// Direction returns the facing.
func (c *Character) Direction() entity.Direction { return c.facing }

// SetDirection sets the local facing without telling the server.
func (c *Character) SetDirection(dir entity.Direction) {
	if dir != entity.DirNone {
		c.facing = dir
	}
}

// Action returns the current action.
func (c *Character) Action() entity.Action { return c.action }

// IsMoving reports whether the server has the character walking.
func (c *Character) IsMoving() bool { return c.action == entity.ActionMove }

// Destination returns the last destination sent to the server.
func (c *Character) Destination() (world.TilePosition, bool) { return c.dest, c.hasDest }

// WalkingDir returns the held walking direction.
func (c *Character) WalkingDir() entity.Direction { return c.walkingDir }

// Automation returns the automation engine.
func (c *Character) Automation() *automation.Engine { return c.automation }

// AutomationEnabled reports whether automation runs in Logic.
func (c *Character) AutomationEnabled() bool { return c.settings.Automation }

// SetAutomation toggles automation without touching other settings.
func (c *Character) SetAutomation(enabled bool) {
	s := c.settings
	s.Automation = enabled
	c.ApplySettings(s)
}

func (c *Character) automationTick() {
	if !c.settings.Automation {
		return
	}
	c.automation.Step()
}
