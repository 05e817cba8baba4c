package automation

import (
	"fmt"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

// fakeActor records every primitive automation issues.
type fakeActor struct {
	tile    world.TilePosition
	facing  entity.Direction
	moving  bool
	walls   map[world.TilePosition]bool
	allow   bool
	calls   []string
	onMove  func()
	sitting bool
}

func newFakeActor() *fakeActor {
	return &fakeActor{
		tile:   world.Tile(10, 10),
		facing: entity.DirDown,
		walls:  map[world.TilePosition]bool{},
		allow:  true,
	}
}

func (f *fakeActor) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeActor) Tile() world.TilePosition    { return f.tile }
func (f *fakeActor) Direction() entity.Direction { return f.facing }
func (f *fakeActor) IsMoving() bool              { return f.moving }
func (f *fakeActor) IsWalkable(t world.TilePosition) bool {
	return !f.walls[t]
}

func (f *fakeActor) Move(dx, dy int) {
	f.record("move %d,%d", dx, dy)
	if f.onMove != nil {
		f.onMove()
	}
}

func (f *fakeActor) SetWalkingDir(dir entity.Direction) { f.record("walk %s", dir) }

func (f *fakeActor) Face(local, server entity.Direction) {
	f.facing = local
	f.record("face %s/%s", local, server)
}

func (f *fakeActor) ToggleSit() bool {
	f.sitting = !f.sitting
	f.record("sit %t", f.sitting)
	return true
}

func (f *fakeActor) AllowAction() bool { return f.allow }

func (f *fakeActor) ChangeAction(a entity.Action) { f.record("action %s", a) }
func (f *fakeActor) PetEmote(id int)              { f.record("pet emote %d", id) }

func (f *fakeActor) Emote(id int) bool {
	f.record("emote %d", id)
	return true
}

func (f *fakeActor) PickUpItems(pickUpType int) bool {
	f.record("pickup %d", pickUpType)
	return false
}

func (f *fakeActor) WearOutfit(next bool)  { f.record("outfit %t", next) }
func (f *fakeActor) DropShortcut(all bool) { f.record("drop %t", all) }

func (f *fakeActor) take() []string {
	c := f.calls
	f.calls = nil
	return c
}
