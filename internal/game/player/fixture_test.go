package player

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

type recordingHandler struct {
	dests      []world.TilePosition
	dirs       []entity.Direction
	attacks    []uint32
	serverSide []bool
	stops      int
	actions    []entity.Action
	emotes     []int
	pickups    []uint32
}

func (h *recordingHandler) SetDestination(x, y int, _ entity.Direction) {
	h.dests = append(h.dests, world.Tile(x, y))
}

func (h *recordingHandler) SetDirection(dir entity.Direction) { h.dirs = append(h.dirs, dir) }

func (h *recordingHandler) Attack(id uint32, serverSide bool) {
	h.attacks = append(h.attacks, id)
	h.serverSide = append(h.serverSide, serverSide)
}

func (h *recordingHandler) StopAttack()                  { h.stops++ }
func (h *recordingHandler) ChangeAction(a entity.Action) { h.actions = append(h.actions, a) }
func (h *recordingHandler) Emote(id int)                 { h.emotes = append(h.emotes, id) }
func (h *recordingHandler) PickUp(itemID uint32)         { h.pickups = append(h.pickups, itemID) }

type countingHighlighter struct {
	targeted   map[uint32]int
	untargeted map[uint32]int
}

func newCountingHighlighter() *countingHighlighter {
	return &countingHighlighter{targeted: map[uint32]int{}, untargeted: map[uint32]int{}}
}

func (h *countingHighlighter) Target(b *entity.Being)   { h.targeted[b.ID]++ }
func (h *countingHighlighter) Untarget(b *entity.Being) { h.untargeted[b.ID]++ }

type fakeEquipment struct {
	rangeTiles int
	armed      bool
	calls      []string
}

func (e *fakeEquipment) AttackRange() (int, bool) { return e.rangeTiles, e.armed }

func (e *fakeEquipment) EquipMelee(withShield bool) {
	e.calls = append(e.calls, fmt.Sprintf("melee shield=%t", withShield))
}

func (e *fakeEquipment) EquipRanged() { e.calls = append(e.calls, "ranged") }

type fakeRelations struct {
	friends map[string]bool
	enemies map[string]bool
}

func (r fakeRelations) IsFriend(name string) bool { return r.friends[name] }
func (r fakeRelations) IsEnemy(name string) bool  { return r.enemies[name] }

type recorder struct{ calls []string }

func (r *recorder) WearNext()     { r.calls = append(r.calls, "outfit next") }
func (r *recorder) WearPrevious() { r.calls = append(r.calls, "outfit previous") }
func (r *recorder) DropFirst()    { r.calls = append(r.calls, "drop first") }
func (r *recorder) DropAll()      { r.calls = append(r.calls, "drop all") }
func (r *recorder) Emote(id int)  { r.calls = append(r.calls, fmt.Sprintf("pet emote %d", id)) }

// fixture is a character on an open 64x64 map standing at (10,10).
type fixture struct {
	c      *Character
	h      *recordingHandler
	beings *entity.Manager
	tm     *world.TileMap
	hl     *countingHighlighter
	equip  *fakeEquipment
	extras *recorder
}

func newFixture(t *testing.T, mutate ...func(*Deps)) *fixture {
	t.Helper()
	tm, err := world.NewTileMap("test", 64, 64)
	require.NoError(t, err)

	f := &fixture{
		h:      &recordingHandler{},
		beings: entity.NewManager(),
		tm:     tm,
		hl:     newCountingHighlighter(),
		equip:  &fakeEquipment{},
		extras: &recorder{},
	}
	d := Deps{
		Handler:     f.h,
		Beings:      f.beings,
		Equipment:   f.equip,
		Highlighter: f.hl,
		Outfits:     f.extras,
		Dropper:     f.extras,
		Pet:         f.extras,
		Map:         tm,
		Settings:    DefaultSettings(),
		Logger:      zap.NewNop(),
	}
	for _, m := range mutate {
		m(&d)
	}
	f.c = New(1, "tester", d)
	f.c.SetTilePosition(world.Tile(10, 10))
	return f
}

func withSettings(fn func(*Settings)) func(*Deps) {
	return func(d *Deps) { fn(&d.Settings) }
}

func (f *fixture) add(id uint32, t entity.Type, x, y int) *entity.Being {
	b := entity.NewBeing(id, t, fmt.Sprintf("being-%d", id), world.Tile(x, y))
	f.beings.Add(b)
	return b
}

func (f *fixture) wall(x, y int) { f.tm.Block(x, y, world.BlockWall) }

// serverStep plays the server for one tick: the last requested tile is
// confirmed immediately.
func (f *fixture) serverStep() {
	f.c.Logic()
	if len(f.h.dests) == 0 {
		return
	}
	last := f.h.dests[len(f.h.dests)-1]
	if last == f.c.Tile() {
		return
	}
	f.c.SetTilePosition(last)
	f.c.SetServerPosition(last)
	f.c.SetAction(entity.ActionStand)
}
