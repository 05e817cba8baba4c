// Package dialect captures the few behaviours that differ between server
// families. A Profile is selected once at connection time.
package dialect

import (
	"fmt"
	"strings"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// Name identifies a server dialect.
type Name string

const (
	Modern Name = "modern"
	Legacy Name = "legacy"
)

// Profile describes server-specific movement and combat rules.
type Profile struct {
	Name Name

	// DefaultDriftThreshold is the snap distance in tiles when none is configured.
	DefaultDriftThreshold int
	// SyncDriftThreshold caps the threshold while movement sync is on.
	SyncDriftThreshold int

	// Navigation only advances while the server cross is within these ranges.
	NavSyncRange   int
	NavUnsyncRange int

	// DiagonalAttack allows facing diagonally when attacking.
	DiagonalAttack bool
}

var (
	modernProfile = Profile{
		Name:                  Modern,
		DefaultDriftThreshold: 10,
		SyncDriftThreshold:    5,
		NavSyncRange:          5,
		NavUnsyncRange:        20,
		DiagonalAttack:        true,
	}
	legacyProfile = Profile{
		Name:                  Legacy,
		DefaultDriftThreshold: 20,
		SyncDriftThreshold:    5,
		NavSyncRange:          5,
		NavUnsyncRange:        20,
		DiagonalAttack:        false,
	}
)

// ModernProfile returns the profile for current server emulators.
func ModernProfile() Profile { return modernProfile }

// LegacyProfile returns the profile for legacy servers.
func LegacyProfile() Profile { return legacyProfile }

// ForName resolves a dialect by name. The empty name selects Modern.
func ForName(name string) (Profile, error) {
	switch Name(strings.ToLower(strings.TrimSpace(name))) {
	case "", Modern:
		return modernProfile, nil
	case Legacy:
		return legacyProfile, nil
	}
	return Profile{}, fmt.Errorf("unknown server dialect %q", name)
}

// DriftThreshold resolves the effective snap threshold. A configured value
// of zero or less means the profile default.
func (p Profile) DriftThreshold(configured int, syncMovement bool) int {
	threshold := configured
	if threshold <= 0 {
		threshold = p.DefaultDriftThreshold
	}
	if syncMovement && threshold > p.SyncDriftThreshold {
		threshold = p.SyncDriftThreshold
	}
	return threshold
}

// NavigationRange returns how far the server cross may lag before
// navigation stops issuing steps.
func (p Profile) NavigationRange(syncMovement bool) int {
	if syncMovement {
		return p.NavSyncRange
	}
	return p.NavUnsyncRange
}

// AttackDirection returns the facing used to attack target from self.
// It returns DirNone when both tiles coincide.
func (p Profile) AttackDirection(self, target world.TilePosition) entity.Direction {
	dx := target.X - self.X
	dy := target.Y - self.Y
	if p.DiagonalAttack {
		return entity.DirectionFromDelta(dx, dy)
	}
	if dx == 0 && dy == 0 {
		return entity.DirNone
	}
	if abs(dx) > abs(dy) {
		return entity.DirectionFromDelta(dx, 0)
	}
	return entity.DirectionFromDelta(0, dy)
}

func (p Profile) String() string {
	return string(p.Name)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
