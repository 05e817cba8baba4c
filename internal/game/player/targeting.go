package player

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// Unreachable is the path length reported for beings no path reaches.
const Unreachable = math.MaxInt32

// SetTarget makes b the only target. The previous target loses its
// highlight first. Targeting ourselves or the current target is a no-op.
// Clearing the target outside an attack also ends repeated attacks.
func (c *Character) SetTarget(b *entity.Being) {
	if b != nil && b.ID == c.id {
		return
	}
	if (b == nil && c.targetID == 0) || (b != nil && b.ID == c.targetID) {
		return
	}
	if b == nil && c.action != entity.ActionAttack {
		c.keepAttacking = false
	}

	if c.targetID != 0 {
		if old := c.lookup(c.targetID); old != nil {
			old.Untarget()
			if old.Type == entity.TypeMonster {
				old.ShowName = false
			}
			if c.highlighter != nil {
				c.highlighter.Untarget(old)
			}
		}
	}

	c.targetID = 0
	if b == nil {
		return
	}

	c.targetID = b.ID
	c.lastTargetTile = b.Tile
	b.Cursor = entity.CursorNormal
	if b.Type == entity.TypeMonster {
		b.ShowName = true
	}
	if c.highlighter != nil {
		c.highlighter.Target(b)
	}
	c.log.Debug("target set", zap.Uint32("target", b.ID), zap.Stringer("type", b.Type))
}

// Target returns the current target, or nil when none is set or it left
// the map.
func (c *Character) Target() *entity.Being {
	if c.targetID == 0 {
		return nil
	}
	return c.lookup(c.targetID)
}

// TargetID returns the target's ID, or 0.
func (c *Character) TargetID() uint32 { return c.targetID }

// LastTargetTile returns the last tile the target was seen on.
func (c *Character) LastTargetTile() world.TilePosition { return c.lastTargetTile }

// KeepAttacking reports whether attacks repeat while the target is in range.
func (c *Character) KeepAttacking() bool { return c.keepAttacking }

func (c *Character) lookup(id uint32) *entity.Being {
	if c.beings == nil {
		return nil
	}
	return c.beings.Get(id)
}

// AttackRange returns the attack range in tiles: the configured override,
// else the weapon range, else the unarmed range.
func (c *Character) AttackRange() int {
	if c.settings.AttackRange > -1 {
		return c.settings.AttackRange
	}
	if c.equipment != nil {
		if r, ok := c.equipment.AttackRange(); ok {
			return r
		}
	}
	return c.settings.unarmedTiles()
}

// attackRange2 is the range used for path-length checks; melee range 1
// counts as 2 so diagonal neighbours qualify.
func (c *Character) attackRange2() int {
	r := c.AttackRange()
	if r == 1 {
		r = 2
	}
	return r
}

// WithinAttackRange reports whether both axis distances to target are
// within the attack range plus addRange. With fixDistance a range of 1
// is widened to 2.
func (c *Character) WithinAttackRange(target *entity.Being, fixDistance bool, addRange int) bool {
	if target == nil {
		return false
	}
	r := c.AttackRange() + addRange
	if fixDistance && r == 1 {
		r = 2
	}
	dx := abs(target.Tile.X - c.tile.X)
	dy := abs(target.Tile.Y - c.tile.Y)
	return dx <= r && dy <= r
}

// Attack attacks target once, or repeatedly with keep. Attacks are only
// issued while standing, sitting or casting.
func (c *Character) Attack(target *entity.Being, keep, skipEquipChange bool) {
	c.keepAttacking = keep
	if target == nil || target.Type == entity.TypeNPC {
		return
	}
	if target.ID != c.targetID {
		c.SetTarget(target)
	}

	switch c.action {
	case entity.ActionStand, entity.ActionSit, entity.ActionCast:
	default:
		return
	}

	if dir := c.profile.AttackDirection(c.tile, target.Tile); dir != entity.DirNone {
		c.facing = dir
	}

	if target.Type != entity.TypePlayer || c.checkAttackPermissions(target) {
		c.action = entity.ActionAttack
		if !skipEquipChange {
			c.changeEquipmentBeforeAttack(target)
		}
		c.handler.Attack(target.ID, c.settings.ServerAttack)
		c.log.Debug("attack",
			zap.Uint32("target", target.ID),
			zap.Bool("keep", keep))
	}

	if !keep {
		c.StopAttack(false)
	}
}

// Attack2 is the approach-or-attack decision used by automated play. A
// target in range and reachable within range is attacked; otherwise the
// character walks toward it and attacks on a later tick.
func (c *Character) Attack2(target *entity.Being, keep, skipEquipChange bool) {
	if !skipEquipChange && target != nil {
		c.changeEquipmentBeforeAttack(target)
	}

	at := c.settings.AttackType
	if target == nil || at == AttackDefault || at == AttackWithoutAuto ||
		(c.WithinAttackRange(target, true, 1) && c.PathLength(target) <= c.attackRange2()) {
		c.Attack(target, keep, true)
		if at == AttackGoPickUp {
			if target == nil {
				c.PickUpItems(0)
			} else {
				c.PickUpItems(3)
			}
		}
		return
	}

	if c.pickUpTarget != 0 {
		return
	}
	if at == AttackGoPickUp && c.PickUpItems(0) {
		return
	}
	c.SetTarget(target)
	if target.Type != entity.TypeNPC {
		c.keepAttacking = true
		c.MoveToTarget(-1)
	}
}

// StopAttack stops attacking and drops the target. keepAttack preserves
// the repeat flag when attack_next is on.
func (c *Character) StopAttack(keepAttack bool) {
	if c.settings.ServerAttack && c.action == entity.ActionAttack {
		c.handler.StopAttack()
	}
	keep := c.keepAttacking
	c.untarget()
	c.keepAttacking = keep && keepAttack && c.settings.AttackNext
}

func (c *Character) untarget() {
	if c.action == entity.ActionAttack {
		c.action = entity.ActionStand
	}
	c.SetTarget(nil)
}

// moveToTargetDistance maps move_to_target_type to a stop distance.
func (c *Character) moveToTargetDistance() int {
	switch c.settings.MoveToTargetType {
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 3
	case 4:
		return 5
	case 5:
		return 7
	case 6:
		return c.attackRange2()
	}
	return 0
}

// MoveToTarget navigates toward the target, stopping dist tiles short.
// dist -1 uses move_to_target_type. Without a target the active
// navigation is shortened instead, and without either the last target
// tile is used.
func (c *Character) MoveToTarget(dist int) {
	if dist == -1 {
		dist = c.moveToTargetDistance()
	}

	target := c.Target()
	var path world.Path
	limit := 0
	gotPos := false

	switch {
	case target != nil:
		if c.tm != nil {
			path = c.tm.FindPathFromPixel(c.pixel, target.Tile, c.walkMask, 0)
		}
		if path.Len() < dist {
			return
		}
		limit = path.Len() - dist
		gotPos = true
	case c.nav.active:
		path = c.nav.path.Clone()
		limit = dist
		if limit > path.Len() {
			limit = path.Len()
		}
		gotPos = true
	}

	if gotPos {
		if dist == 0 {
			if target != nil {
				c.NavigateToBeing(target)
			}
			return
		}
		if limit == 0 {
			return
		}
		c.NavigateTo(path[limit-1])
		return
	}

	if !c.lastTargetTile.IsZero() {
		c.NavigateTo(c.lastTargetTile)
	}
}

// PathLength returns the walking distance to b: 0 on the same tile, 1
// when adjacent, otherwise the path length when only reachable targets
// count (Unreachable when there is no path) or the Chebyshev distance.
func (c *Character) PathLength(b *entity.Being) int {
	if c.tm == nil || b == nil {
		return 0
	}
	d := world.Chebyshev(c.tile, b.Tile)
	if d <= 1 {
		return d
	}
	if !c.settings.TargetOnlyReachable {
		return d
	}
	path := c.tm.FindPathFromPixel(c.pixel, b.Tile, c.walkMask, 0)
	if path.Empty() {
		return Unreachable
	}
	return path.Len()
}

// IsReachable reports whether a path to b exists within maxCost (0 = no
// limit) and caches the answer on b. Cached negatives stick.
func (c *Character) IsReachable(b *entity.Being, maxCost int) bool {
	if b == nil || c.tm == nil {
		return false
	}
	if b.Reachable == entity.ReachNo {
		return false
	}
	if d := world.Chebyshev(c.tile, b.Tile); d <= 1 {
		b.Distance = d
		b.Reachable = entity.ReachYes
		return true
	}
	path := c.tm.FindPathFromPixel(c.pixel, b.Tile, c.walkMask, maxCost)
	b.Distance = path.Len()
	if path.Empty() {
		b.Reachable = entity.ReachNo
		return false
	}
	b.Reachable = entity.ReachYes
	return true
}

func (c *Character) checkAttackPermissions(target *entity.Being) bool {
	switch c.settings.PvPPolicy {
	case PvPAll:
		return true
	case PvPNotFriends:
		return c.relations == nil || !c.relations.IsFriend(target.Name)
	case PvPEnemiesOnly:
		return c.relations != nil && c.relations.IsEnemy(target.Name)
	}
	return false
}

// changeEquipmentBeforeAttack picks melee gear up close and ranged gear
// further out. Far targets leave equipment alone.
func (c *Character) changeEquipmentBeforeAttack(target *entity.Being) {
	if c.settings.AttackWeaponType <= 1 || target == nil || c.equipment == nil {
		return
	}
	d2 := world.DistanceSquared(c.tile, target.Tile)
	switch {
	case d2 > 80:
		return
	case d2 < 8:
		c.equipment.EquipMelee(c.settings.AttackWeaponType == 3)
	default:
		c.equipment.EquipRanged()
	}
}

// combatTick refreshes the target cursor, stops attacking dead targets
// and repeats attacks while in range.
func (c *Character) combatTick() {
	if c.targetID == 0 {
		return
	}
	t := c.Target()
	if t == nil {
		c.log.Debug("target left view", zap.Uint32("target", c.targetID))
		c.targetID = 0
		c.keepAttacking = false
		return
	}
	c.lastTargetTile = t.Tile

	if t.Type == entity.TypeNPC {
		t.Cursor = entity.CursorInRange
		return
	}

	if c.WithinAttackRange(t, false, 0) {
		t.Cursor = entity.CursorInRange
	} else {
		t.Cursor = entity.CursorNormal
	}

	if !t.IsAlive() && (!c.settings.TargetDeadPlayers || t.Type != entity.TypePlayer) {
		c.StopAttack(true)
		return
	}

	// Melee range 1 counts as 2 here, matching where MoveToTarget stops.
	if c.keepAttacking && c.WithinAttackRange(t, true, 0) {
		c.Attack(t, true, false)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
