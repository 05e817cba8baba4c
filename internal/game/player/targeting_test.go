package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-nav/internal/game/dialect"
	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// wallColumn blocks column x over the whole map.
func (f *fixture) wallColumn(x int) {
	for y := 0; y < f.tm.Height(); y++ {
		f.wall(x, y)
	}
}

func TestSetTargetIsExclusive(t *testing.T) {
	f := newFixture(t)
	a := f.add(100, entity.TypeMonster, 12, 10)
	b := f.add(101, entity.TypeMonster, 13, 10)
	require.False(t, a.ShowName)

	f.c.SetTarget(a)
	assert.Equal(t, uint32(100), f.c.TargetID())
	assert.Equal(t, entity.CursorNormal, a.Cursor)
	assert.True(t, a.ShowName)

	f.c.SetTarget(a)
	assert.Equal(t, 1, f.hl.targeted[100], "retargeting is a no-op")

	f.c.SetTarget(b)
	assert.Equal(t, 1, f.hl.untargeted[100])
	assert.Equal(t, entity.CursorNone, a.Cursor)
	assert.False(t, a.ShowName)
	assert.Equal(t, entity.CursorNormal, b.Cursor)

	f.c.SetTarget(nil)
	f.c.SetTarget(nil)
	assert.Equal(t, 1, f.hl.untargeted[101])
	assert.Zero(t, f.c.TargetID())
	assert.Equal(t, world.Tile(13, 10), f.c.LastTargetTile())
}

func TestSetTargetIgnoresSelf(t *testing.T) {
	f := newFixture(t)
	self := f.add(1, entity.TypePlayer, 10, 10)

	f.c.SetTarget(self)
	assert.Zero(t, f.c.TargetID())
}

func TestAttackRange(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		f := newFixture(t, withSettings(func(s *Settings) { s.AttackRange = 3 }))
		f.equip.armed, f.equip.rangeTiles = true, 9
		assert.Equal(t, 3, f.c.AttackRange())
	})
	t.Run("weapon", func(t *testing.T) {
		f := newFixture(t)
		f.equip.armed, f.equip.rangeTiles = true, 5
		assert.Equal(t, 5, f.c.AttackRange())
	})
	t.Run("unarmed", func(t *testing.T) {
		f := newFixture(t)
		assert.Equal(t, 1, f.c.AttackRange())
	})
	t.Run("unarmed below one tile", func(t *testing.T) {
		f := newFixture(t, withSettings(func(s *Settings) { s.UnarmedRange = 10 }))
		assert.Equal(t, 1, f.c.AttackRange())
	})
}

func TestWithinAttackRangeIsSymmetric(t *testing.T) {
	for _, r := range []int{1, 2, 5} {
		f := newFixture(t, withSettings(func(s *Settings) { s.AttackRange = r }))
		a := world.Tile(20, 20)
		for dx := -7; dx <= 7; dx++ {
			for dy := -7; dy <= 7; dy++ {
				b := a.Add(dx, dy)
				for _, fix := range []bool{false, true} {
					f.c.SetTilePosition(a)
					forward := f.c.WithinAttackRange(entity.NewBeing(100, entity.TypeMonster, "m", b), fix, 0)
					f.c.SetTilePosition(b)
					backward := f.c.WithinAttackRange(entity.NewBeing(100, entity.TypeMonster, "m", a), fix, 0)
					assert.Equal(t, forward, backward, "range %d offset (%d,%d) fix %t", r, dx, dy, fix)
				}
			}
		}
	}
}

func TestWithinAttackRangeFixDistance(t *testing.T) {
	f := newFixture(t)
	m := entity.NewBeing(100, entity.TypeMonster, "m", world.Tile(12, 12))

	assert.False(t, f.c.WithinAttackRange(m, false, 0))
	assert.True(t, f.c.WithinAttackRange(m, true, 0))
	assert.True(t, f.c.WithinAttackRange(m, false, 1))
	assert.False(t, f.c.WithinAttackRange(nil, true, 0))
}

func TestAttack2ApproachesDistantTarget(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.AttackType = AttackGo }))
	m := f.add(100, entity.TypeMonster, 13, 10)

	f.c.Attack2(m, true, false)

	assert.Empty(t, f.h.attacks, "out of range: walk first")
	assert.Equal(t, uint32(100), f.c.TargetID())
	assert.True(t, f.c.KeepAttacking())
	dest, ok := f.c.NavigationTarget()
	require.True(t, ok)
	assert.Equal(t, world.Tile(11, 10), dest)

	for i := 0; i < 10 && len(f.h.attacks) == 0; i++ {
		f.serverStep()
	}
	assert.Equal(t, []uint32{100}, f.h.attacks)
	assert.Equal(t, world.Tile(11, 10), f.c.Tile())
	assert.Equal(t, entity.ActionAttack, f.c.Action())
	assert.Equal(t, entity.DirRight, f.c.Direction())
}

func TestAttack2AttacksInRange(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.AttackType = AttackGo }))
	m := f.add(100, entity.TypeMonster, 11, 10)

	f.c.Attack2(m, true, false)

	assert.Equal(t, []uint32{100}, f.h.attacks)
	assert.Equal(t, []bool{true}, f.h.serverSide)
	assert.False(t, f.c.Navigating())
}

func TestAttack2DoesNotAttackThroughWalls(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.AttackType = AttackGo }))
	f.wallColumn(11)
	m := f.add(100, entity.TypeMonster, 12, 10)

	require.True(t, f.c.WithinAttackRange(m, true, 1))
	assert.Equal(t, Unreachable, f.c.PathLength(m))

	f.c.Attack2(m, true, false)
	assert.Empty(t, f.h.attacks)
	assert.False(t, f.c.Navigating())
}

func TestAttack2DefaultTypeAttacksDirectly(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 20, 10)

	f.c.Attack2(m, true, false)
	assert.Equal(t, []uint32{100}, f.h.attacks)
}

func TestAttack2PicksUpAfterAttack(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.AttackType = AttackGoPickUp }))
	f.add(500, entity.TypeItem, 10, 10)

	f.c.Attack2(nil, false, false)
	assert.Equal(t, []uint32{500}, f.h.pickups)
}

func TestAttackRequiresIdleAction(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 11, 10)

	f.c.SetAction(entity.ActionMove)
	f.c.Attack(m, true, false)

	assert.Empty(t, f.h.attacks)
	assert.Equal(t, uint32(100), f.c.TargetID())
}

func TestAttackOnceStops(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 11, 10)

	f.c.Attack(m, false, false)

	assert.Equal(t, []uint32{100}, f.h.attacks)
	assert.Equal(t, 1, f.h.stops)
	assert.Zero(t, f.c.TargetID())
	assert.Equal(t, entity.ActionStand, f.c.Action())
	assert.False(t, f.c.KeepAttacking())
}

func TestAttackIgnoresNPCs(t *testing.T) {
	f := newFixture(t)
	npc := f.add(100, entity.TypeNPC, 11, 10)

	f.c.Attack(npc, true, false)
	assert.Empty(t, f.h.attacks)
	assert.Zero(t, f.c.TargetID())
}

func TestAttackFacing(t *testing.T) {
	tests := []struct {
		name    string
		profile dialect.Profile
		target  world.TilePosition
		want    entity.Direction
	}{
		{name: "modern diagonal", profile: dialect.ModernProfile(), target: world.Tile(11, 11), want: entity.DirDown | entity.DirRight},
		{name: "legacy tie is vertical", profile: dialect.LegacyProfile(), target: world.Tile(11, 11), want: entity.DirDown},
		{name: "legacy dominant axis", profile: dialect.LegacyProfile(), target: world.Tile(13, 11), want: entity.DirRight},
		{name: "same tile keeps facing", profile: dialect.ModernProfile(), target: world.Tile(10, 10), want: entity.DirDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(d *Deps) { d.Profile = tt.profile })
			m := f.add(100, entity.TypeMonster, tt.target.X, tt.target.Y)

			f.c.Attack(m, true, false)
			assert.Equal(t, tt.want, f.c.Direction())
		})
	}
}

func TestPvPPolicy(t *testing.T) {
	const victim = "being-100"
	tests := []struct {
		name    string
		policy  int
		friends map[string]bool
		enemies map[string]bool
		want    bool
	}{
		{name: "all", policy: PvPAll, friends: map[string]bool{victim: true}, want: true},
		{name: "not friends, friend", policy: PvPNotFriends, friends: map[string]bool{victim: true}, want: false},
		{name: "not friends, stranger", policy: PvPNotFriends, want: true},
		{name: "enemies only, enemy", policy: PvPEnemiesOnly, enemies: map[string]bool{victim: true}, want: true},
		{name: "enemies only, stranger", policy: PvPEnemiesOnly, want: false},
		{name: "never", policy: PvPNeverPlayers, enemies: map[string]bool{victim: true}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(d *Deps) {
				d.Settings.PvPPolicy = tt.policy
				d.Relations = fakeRelations{friends: tt.friends, enemies: tt.enemies}
			})
			p := f.add(100, entity.TypePlayer, 11, 10)

			f.c.Attack(p, true, false)
			assert.Equal(t, tt.want, len(f.h.attacks) == 1)
			if !tt.want {
				assert.Equal(t, entity.ActionStand, f.c.Action())
			}
		})
	}
}

func TestPvPPolicyIgnoresMonsters(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.PvPPolicy = PvPNeverPlayers }))
	m := f.add(100, entity.TypeMonster, 11, 10)

	f.c.Attack(m, true, false)
	assert.Len(t, f.h.attacks, 1)
}

func TestEquipmentSwitch(t *testing.T) {
	tests := []struct {
		name       string
		weaponType int
		target     world.TilePosition
		want       []string
	}{
		{name: "disabled", weaponType: 1, target: world.Tile(11, 10)},
		{name: "melee close", weaponType: 2, target: world.Tile(12, 11), want: []string{"melee shield=false"}},
		{name: "melee with shield", weaponType: 3, target: world.Tile(11, 11), want: []string{"melee shield=true"}},
		{name: "ranged", weaponType: 2, target: world.Tile(14, 14), want: []string{"ranged"}},
		{name: "too far", weaponType: 2, target: world.Tile(20, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, withSettings(func(s *Settings) { s.AttackWeaponType = tt.weaponType }))
			m := f.add(100, entity.TypeMonster, tt.target.X, tt.target.Y)

			f.c.Attack(m, true, false)
			assert.Equal(t, tt.want, f.equip.calls)
		})
	}
}

func TestEquipmentSwitchSkipped(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.AttackWeaponType = 2 }))
	m := f.add(100, entity.TypeMonster, 11, 10)

	f.c.Attack(m, true, true)
	assert.Empty(t, f.equip.calls)
}

func TestDeathClearsTarget(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 11, 10)
	f.c.SetTarget(m)

	f.c.SetAction(entity.ActionDead)

	assert.Zero(t, f.c.TargetID())
	assert.Equal(t, 1, f.hl.untargeted[100])
	assert.False(t, f.c.AllowAction())
}

func TestOnTargetDied(t *testing.T) {
	t.Run("monster", func(t *testing.T) {
		f := newFixture(t)
		m := f.add(100, entity.TypeMonster, 11, 10)
		f.c.Attack(m, true, false)

		f.c.OnTargetDied(100)
		assert.Zero(t, f.c.TargetID())
		assert.Equal(t, entity.ActionDead, m.Action)
	})
	t.Run("player kept when targeting dead players", func(t *testing.T) {
		f := newFixture(t, withSettings(func(s *Settings) { s.TargetDeadPlayers = true }))
		p := f.add(100, entity.TypePlayer, 11, 10)
		f.c.SetTarget(p)

		f.c.OnTargetDied(100)
		assert.Equal(t, uint32(100), f.c.TargetID())
	})
}

func TestCombatTickTargetLeftView(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 15, 10)
	f.c.SetTarget(m)
	f.c.keepAttacking = true

	f.beings.Remove(100)
	f.c.Logic()

	assert.Zero(t, f.c.TargetID())
	assert.False(t, f.c.KeepAttacking())
	assert.Equal(t, world.Tile(15, 10), f.c.LastTargetTile())
}

func TestCombatTickCursor(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 11, 10)
	f.c.SetTarget(m)

	f.c.Logic()
	assert.Equal(t, entity.CursorInRange, m.Cursor)

	m.Tile = world.Tile(15, 10)
	f.c.Logic()
	assert.Equal(t, entity.CursorNormal, m.Cursor)
	assert.Equal(t, world.Tile(15, 10), f.c.LastTargetTile())
}

func TestCombatTickDeadTarget(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 11, 10)
	f.c.SetTarget(m)

	m.Action = entity.ActionDead
	f.c.Logic()
	assert.Zero(t, f.c.TargetID())
}

func TestKeepAttackingOnlyInRange(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 15, 10)
	f.c.SetTarget(m)
	f.c.keepAttacking = true

	f.c.Logic()
	assert.Empty(t, f.h.attacks)

	m.Tile = world.Tile(12, 10)
	f.c.Logic()
	assert.Equal(t, []uint32{100}, f.h.attacks)
}

func TestStopAttack(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.AttackNext = true }))
	m := f.add(100, entity.TypeMonster, 11, 10)
	f.c.Attack(m, true, false)
	require.Equal(t, entity.ActionAttack, f.c.Action())

	f.c.StopAttack(true)
	assert.Equal(t, 1, f.h.stops)
	assert.Equal(t, entity.ActionStand, f.c.Action())
	assert.True(t, f.c.KeepAttacking(), "attack_next keeps the repeat flag")

	f.c.StopAttack(false)
	assert.Equal(t, 1, f.h.stops, "not attacking any more")
	assert.False(t, f.c.KeepAttacking())
}

func TestPathLength(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 0, f.c.PathLength(f.add(100, entity.TypeMonster, 10, 10)))
	assert.Equal(t, 1, f.c.PathLength(f.add(101, entity.TypeMonster, 11, 11)))
	assert.Equal(t, 5, f.c.PathLength(f.add(102, entity.TypeMonster, 15, 10)))

	f.wallColumn(12)
	walled := f.add(103, entity.TypeMonster, 14, 10)
	assert.Equal(t, Unreachable, f.c.PathLength(walled))

	s := f.c.Settings()
	s.TargetOnlyReachable = false
	f.c.ApplySettings(s)
	assert.Equal(t, 4, f.c.PathLength(walled))
}

func TestIsReachable(t *testing.T) {
	f := newFixture(t)
	f.wallColumn(12)
	near := f.add(100, entity.TypeMonster, 11, 14)
	far := f.add(101, entity.TypeMonster, 14, 10)

	assert.True(t, f.c.IsReachable(near, 0))
	assert.Equal(t, entity.ReachYes, near.Reachable)
	assert.Equal(t, 4, near.Distance)

	assert.False(t, f.c.IsReachable(far, 0))
	assert.Equal(t, entity.ReachNo, far.Reachable)

	for y := 0; y < f.tm.Height(); y++ {
		f.tm.Block(12, y, world.BlockGround)
	}
	assert.False(t, f.c.IsReachable(far, 0), "negative answers are cached")
}

func TestMoveToTargetDistance(t *testing.T) {
	tests := []struct {
		moveType int
		want     world.TilePosition
	}{
		{1, world.Tile(19, 10)},
		{2, world.Tile(18, 10)},
		{3, world.Tile(17, 10)},
		{4, world.Tile(15, 10)},
		{5, world.Tile(13, 10)},
		{6, world.Tile(18, 10)},
		{0, world.Tile(20, 10)},
	}
	for _, tt := range tests {
		f := newFixture(t, withSettings(func(s *Settings) { s.MoveToTargetType = tt.moveType }))
		m := f.add(100, entity.TypeMonster, 20, 10)
		f.c.SetTarget(m)

		f.c.MoveToTarget(-1)

		dest, ok := f.c.NavigationTarget()
		require.True(t, ok, "type %d", tt.moveType)
		assert.Equal(t, tt.want, dest, "type %d", tt.moveType)
		if tt.moveType == 0 {
			assert.Equal(t, uint32(100), f.c.TrackedBeing())
		}
	}
}

func TestMoveToTargetCloserThanDistance(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 11, 10)
	f.c.SetTarget(m)

	f.c.MoveToTarget(2)
	assert.False(t, f.c.Navigating())
}

func TestMoveToTargetShortensNavigation(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.c.NavigateTo(world.Tile(20, 10)))

	f.c.MoveToTarget(3)
	dest, _ := f.c.NavigationTarget()
	assert.Equal(t, world.Tile(13, 10), dest)
}

func TestMoveToTargetUsesLastTargetTile(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 16, 12)
	f.c.SetTarget(m)
	f.c.SetTarget(nil)

	f.c.MoveToTarget(-1)
	dest, ok := f.c.NavigationTarget()
	require.True(t, ok)
	assert.Equal(t, world.Tile(16, 12), dest)
}

func TestClearingTargetEndsRepeatAttacks(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.AttackType = AttackGo }))
	m := f.add(100, entity.TypeMonster, 13, 10)
	f.c.Attack2(m, true, false)
	require.True(t, f.c.KeepAttacking())

	f.c.SetTarget(nil)
	assert.False(t, f.c.KeepAttacking())

	p := f.add(200, entity.TypePlayer, 11, 10)
	f.c.SetTarget(p)
	f.c.Logic()
	assert.Empty(t, f.h.attacks, "a plain selection must not be attacked")
}

func TestDeathEndsRepeatAttacks(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 11, 10)
	f.c.Attack(m, true, false)
	require.Equal(t, []uint32{100}, f.h.attacks)

	f.c.SetAction(entity.ActionDead)
	f.c.SetAction(entity.ActionStand)
	assert.False(t, f.c.KeepAttacking())

	other := f.add(101, entity.TypeMonster, 10, 11)
	f.c.SetTarget(other)
	f.c.Logic()
	assert.Equal(t, []uint32{100}, f.h.attacks)
}
