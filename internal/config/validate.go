package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks value ranges. It reports the first problem found.
func (c *Config) Validate() error {
	switch c.Server.Dialect {
	case "", "modern", "legacy":
	default:
		return fmt.Errorf("%w: server.dialect %q", ErrInvalidConfig, c.Server.Dialect)
	}
	if c.Movement.DriftThreshold < 0 {
		return fmt.Errorf("%w: movement.drift_threshold must be >= 0", ErrInvalidConfig)
	}

	ranges := []struct {
		name     string
		val      int
		min, max int
	}{
		{"combat.attack_type", c.Combat.AttackType, 0, 3},
		{"combat.attack_weapon_type", c.Combat.AttackWeaponType, 1, 3},
		{"combat.pvp_policy", c.Combat.PvPPolicy, 0, 3},
		{"combat.move_to_target_type", c.Combat.MoveToTargetType, 0, 6},
		{"combat.pick_up_type", c.Combat.PickUpType, 0, 6},
	}
	for _, r := range ranges {
		if r.val < r.min || r.val > r.max {
			return fmt.Errorf("%w: %s=%d not in [%d,%d]", ErrInvalidConfig, r.name, r.val, r.min, r.max)
		}
	}
	if c.Combat.UnarmedRange <= 0 {
		return fmt.Errorf("%w: combat.unarmed_range must be positive", ErrInvalidConfig)
	}

	if !validCrazyMove(c.Automation.CrazyMove) {
		return fmt.Errorf("%w: automation.crazy_move %q", ErrInvalidConfig, c.Automation.CrazyMove)
	}

	if c.Map.GRFPath != "" && c.Map.Name == "" {
		return fmt.Errorf("%w: map.name is required with map.grf_path", ErrInvalidConfig)
	}
	if c.Map.GATPath == "" && c.Map.GRFPath == "" && (c.Map.Width <= 0 || c.Map.Height <= 0) {
		return fmt.Errorf("%w: map size %dx%d", ErrInvalidConfig, c.Map.Width, c.Map.Height)
	}
	if c.Sim.Bots < 0 || c.Sim.Ticks < 0 || c.Sim.TickRate < 0 {
		return fmt.Errorf("%w: sim values must not be negative", ErrInvalidConfig)
	}
	return nil
}

func validCrazyMove(s string) bool {
	if len(s) != 1 {
		return false
	}
	return (s[0] >= '1' && s[0] <= '9') || s[0] == 'a'
}
