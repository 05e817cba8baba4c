package player

import (
	"github.com/Faultbox/midgard-nav/internal/config"
	"github.com/Faultbox/midgard-nav/internal/game/automation"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// Attack types.
const (
	AttackDefault     = 0
	AttackGo          = 1
	AttackGoPickUp    = 2
	AttackWithoutAuto = 3
)

// PvP policies.
const (
	PvPAll          = 0
	PvPNotFriends   = 1
	PvPEnemiesOnly  = 2
	PvPNeverPlayers = 3
)

// Settings are the options the movement core reads. They are plain values;
// the config layer owns parsing.
type Settings struct {
	DriftThreshold int
	SyncMovement   bool
	DrawPath       bool

	AttackType          int
	AttackWeaponType    int
	PvPPolicy           int
	TargetOnlyReachable bool
	TargetDeadPlayers   bool
	ServerAttack        bool
	MoveToTargetType    int
	AttackRange         int // tiles, -1 = from equipment
	PickUpType          int
	UnarmedRange        int // pixels
	AttackMoving        bool
	AttackNext          bool

	Automation bool
	CrazyMove  automation.Pattern
	Program    string
}

// SettingsFromConfig converts the combat, movement and automation sections.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	pattern, err := automation.ParsePattern(cfg.Automation.CrazyMove)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		DriftThreshold:      cfg.Movement.DriftThreshold,
		SyncMovement:        cfg.Movement.SyncMovement,
		DrawPath:            cfg.Movement.DrawPath,
		AttackType:          cfg.Combat.AttackType,
		AttackWeaponType:    cfg.Combat.AttackWeaponType,
		PvPPolicy:           cfg.Combat.PvPPolicy,
		TargetOnlyReachable: cfg.Combat.TargetOnlyReachable,
		TargetDeadPlayers:   cfg.Combat.TargetDeadPlayers,
		ServerAttack:        cfg.Combat.ServerAttack,
		MoveToTargetType:    cfg.Combat.MoveToTargetType,
		AttackRange:         cfg.Combat.AttackRange,
		PickUpType:          cfg.Combat.PickUpType,
		UnarmedRange:        cfg.Combat.UnarmedRange,
		AttackMoving:        cfg.Combat.AttackMoving,
		AttackNext:          cfg.Combat.AttackNext,
		Automation:          cfg.Automation.Enabled,
		CrazyMove:           pattern,
		Program:             cfg.Automation.Program,
	}, nil
}

// DefaultSettings mirrors config.Default.
func DefaultSettings() Settings {
	s, _ := SettingsFromConfig(config.Default())
	return s
}

// unarmedTiles converts the unarmed pixel range to tiles, at least one.
func (s Settings) unarmedTiles() int {
	tiles := s.UnarmedRange / world.TileSize
	if tiles < 1 {
		tiles = 1
	}
	return tiles
}
