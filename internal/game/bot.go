package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/player"
	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/internal/network"
	"github.com/Faultbox/midgard-nav/internal/network/packets"
)

// Summary is what one bot did during a run.
type Summary struct {
	Bot        int
	Ticks      int
	Start      world.TilePosition
	Final      world.TilePosition
	Walked     int
	Moves      int
	Attacks    int
	Kills      int
	Pickups    int
	Navigation int
}

// bot is one simulated character with its own map copy and server. It is
// driven from a single goroutine.
type bot struct {
	index  int
	char   *player.Character
	server *loopback
	beings *entity.Manager
	maps   *world.Manager
	rng    *rand.Rand
	log    *zap.Logger

	monsterID uint32
	navs      int
	start     world.TilePosition
}

func (g *Game) newBot(index int) (*bot, error) {
	tm := g.maps.Current().Clone()
	rng := rand.New(rand.NewPCG(g.cfg.Sim.Seed, uint64(index)))
	log := g.log.With(zap.Int("bot", index))

	start, ok := randomWalkable(tm, rng)
	if !ok {
		return nil, fmt.Errorf("bot %d: %w", index, ErrNoWalkableTile)
	}

	beings := entity.NewManager()
	client := network.New()
	b := &bot{
		index:     index,
		beings:    beings,
		maps:      world.NewManager(),
		rng:       rng,
		log:       log,
		monsterID: 1_000_000,
		start:     start,
	}
	b.server = newLoopback(tm, beings, client, start)

	b.char = player.New(uint32(150000+index), fmt.Sprintf("bot-%d", index), player.Deps{
		Handler:  network.NewPlayerSender(b.server, log),
		Beings:   beings,
		Profile:  g.profile,
		Settings: g.settings,
		Rand:     rng,
		Logger:   log,
	})
	b.maps.OnChange(func(_, cur *world.TileMap) { b.char.SetMap(cur) })
	b.maps.Set(tm)
	b.char.SetTilePosition(start)
	network.BindPlayer(client, b.char)
	spawn := &packets.StopMove{BeingID: b.char.ID(), X: uint16(start.X), Y: uint16(start.Y)}
	if err := client.Feed(spawn.Encode()); err != nil {
		return nil, fmt.Errorf("bot %d: %w", index, err)
	}

	b.spawnMonster()
	return b, nil
}

// run ticks the bot until ticks are done or ctx is cancelled. A zero rate
// runs as fast as possible.
func (b *bot) run(ctx context.Context, ticks int, rate time.Duration) (Summary, error) {
	var tick <-chan time.Time
	if rate > 0 {
		t := time.NewTicker(rate)
		defer t.Stop()
		tick = t.C
	}

	done := 0
	for ; done < ticks; done++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return b.summary(done), ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return b.summary(done), err
		}

		if err := b.tick(); err != nil {
			return b.summary(done), fmt.Errorf("bot %d tick %d: %w", b.index, done, err)
		}
	}
	return b.summary(done), nil
}

func (b *bot) tick() error {
	moved, err := b.server.tick()
	if err != nil {
		return err
	}

	for _, ev := range b.server.drain() {
		switch ev.kind {
		case eventAction:
			b.char.SetAction(ev.action)
		case eventDied:
			b.log.Debug("monster died", zap.Uint32("monster", ev.being))
			b.char.OnTargetDied(ev.being)
			b.beings.Remove(ev.being)
			b.spawnMonster()
		}
	}

	// The walk animation finishes within one tick.
	switch {
	case moved:
		b.char.SetTilePosition(b.server.pos)
		if b.server.moving() {
			b.char.SetAction(entity.ActionMove)
		} else {
			b.char.SetAction(entity.ActionStand)
		}
	case b.char.IsMoving():
		b.char.SetAction(entity.ActionStand)
	}

	b.char.Logic()
	b.decide()
	return nil
}

// decide gives an idle bot something to do: loot, fight, or wander.
func (b *bot) decide() {
	c := b.char
	if c.AutomationEnabled() || c.IsMoving() || c.Navigating() || c.PickUpTarget() != 0 {
		return
	}
	switch c.Action() {
	case entity.ActionStand, entity.ActionSit:
	default:
		return
	}

	if c.PickUpItems(0) {
		return
	}
	if m := b.beings.Get(b.monsterID); m != nil && m.IsAlive() && c.IsReachable(m, 0) {
		if c.Settings().AttackType == player.AttackDefault && !c.WithinAttackRange(m, true, 0) {
			c.SetTarget(m)
			c.MoveToTarget(-1)
			return
		}
		c.Attack2(m, true, false)
		return
	}
	if goal, ok := randomWalkable(b.maps.Current(), b.rng); ok && c.NavigateTo(goal) {
		b.navs++
	}
}

func (b *bot) spawnMonster() {
	tile, ok := randomWalkable(b.maps.Current(), b.rng)
	if !ok {
		return
	}
	b.monsterID++
	b.beings.Add(entity.NewBeing(b.monsterID, entity.TypeMonster, "poring", tile))
}

func (b *bot) summary(ticks int) Summary {
	return Summary{
		Bot:        b.index,
		Ticks:      ticks,
		Start:      b.start,
		Final:      b.char.Tile(),
		Walked:     b.server.walked,
		Moves:      b.server.requests[packets.CZ_REQUEST_MOVE],
		Attacks:    b.server.attacks,
		Kills:      b.server.kills,
		Pickups:    b.server.pickups,
		Navigation: b.navs,
	}
}

// randomWalkable picks a walkable tile other than (0,0).
func randomWalkable(tm *world.TileMap, rng *rand.Rand) (world.TilePosition, bool) {
	for i := 0; i < 1000; i++ {
		t := world.Tile(rng.IntN(tm.Width()), rng.IntN(tm.Height()))
		if !t.IsZero() && tm.IsWalkable(t.X, t.Y, world.WalkMaskPlayer) {
			return t, true
		}
	}
	return world.TilePosition{}, false
}
