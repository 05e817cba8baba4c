package automation

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

func newTestEngine(a *fakeActor, p Pattern) *Engine {
	e := NewEngine(a, WithRand(rand.New(rand.NewPCG(1, 2))))
	e.SetPattern(p)
	return e
}

func TestProgramMoveMoveWait(t *testing.T) {
	a := newFakeActor()
	e := newTestEngine(a, PatternProgram)
	e.SetProgram("mmw")

	require.True(t, e.Step())
	require.True(t, e.Step())
	require.True(t, e.Step())
	assert.Equal(t, []string{"move 0,1", "move 0,1"}, a.take(), "move, move, then a silent wait")
	assert.Equal(t, 0, e.Program().Cursor())

	require.True(t, e.Step())
	assert.Equal(t, []string{"move 0,1"}, a.take(), "fourth step wraps to the first move")
}

func TestProgramLoopClosure(t *testing.T) {
	programs := []string{"mumrsonmdmlon", "mmw", "x", "d?e?Eaw", "oqmfmbp"}
	for _, src := range programs {
		a := newFakeActor()
		e := newTestEngine(a, PatternProgram)
		e.SetProgram(src)

		n := e.Program().Len()
		for round := 0; round < 3; round++ {
			for i := 0; i < n; i++ {
				require.True(t, e.Step())
			}
			assert.Equal(t, 0, e.Program().Cursor(), "program %q round %d", src, round)
		}
	}
}

func TestProgramDefault(t *testing.T) {
	a := newFakeActor()
	e := newTestEngine(a, PatternProgram)
	e.SetProgram("mumrsonmdmlon")

	for i := 0; i < e.Program().Len(); i++ {
		e.Step()
	}
	assert.Equal(t, []string{
		"move 0,-1",
		"move 1,0",
		"sit true",
		"outfit true",
		"move 0,1",
		"move -1,0",
		"outfit true",
	}, a.take())
}

func TestProgramFacingCommands(t *testing.T) {
	a := newFakeActor()
	a.facing = entity.DirUp
	e := newTestEngine(a, PatternProgram)
	e.SetProgram("dLdRdbdrmfmb")

	for i := 0; i < 6; i++ {
		e.Step()
	}
	assert.Equal(t, []string{
		"face left/left",
		"face up/up",
		"face down/down",
		"face right/right",
		"move 1,0",
		"move -1,0",
	}, a.take())
}

func TestProgramItemsAndEmotes(t *testing.T) {
	a := newFakeActor()
	e := newTestEngine(a, PatternProgram)
	e.SetProgram("d0dapopeAEb")

	for i := 0; i < 6; i++ {
		e.Step()
	}
	assert.Equal(t, []string{
		"drop false",
		"drop true",
		"pickup 0",
		"outfit false",
		"emote 37",
		"pet emote 12",
	}, a.take())
}

func TestProgramRandomIsSeeded(t *testing.T) {
	run := func() []string {
		a := newFakeActor()
		e := newTestEngine(a, PatternProgram)
		e.SetProgram("m?d?e?")
		for i := 0; i < 30; i++ {
			e.Step()
		}
		return a.take()
	}

	first := run()
	assert.Equal(t, first, run(), "same seed, same choices")

	for i := 0; i < len(first); i += 3 {
		assert.Regexp(t, `^move -?[01],-?[01]$`, first[i])
		assert.NotEqual(t, "move 0,0", first[i])
		assert.Regexp(t, `^face (up|down|left|right)/`, first[i+1])
		assert.Regexp(t, `^emote ([1-9]|1[0-3])$`, first[i+2])
	}
}

func TestStepGuards(t *testing.T) {
	a := newFakeActor()
	e := newTestEngine(a, PatternNone)
	assert.False(t, e.Step(), "no pattern selected")

	e.SetPattern(PatternProgram)
	assert.False(t, e.Step(), "empty program never executes")

	e.SetProgram("mu")
	a.moving = true
	assert.False(t, e.Step(), "no steps while moving")
	assert.Empty(t, a.take())

	a.moving = false
	assert.True(t, e.Step())
}

func TestStepReentrancy(t *testing.T) {
	a := newFakeActor()
	e := newTestEngine(a, 4)

	nested := true
	a.onMove = func() {
		nested = e.Step()
		assert.True(t, e.Running())
	}
	require.True(t, e.Step())
	assert.False(t, nested, "nested step must be suppressed")
	assert.False(t, e.Running())
	assert.Equal(t, []string{"move 7,0"}, a.take())
}

func TestSetProgramKeepsCursorForSameText(t *testing.T) {
	a := newFakeActor()
	e := newTestEngine(a, PatternProgram)
	e.SetProgram("mumd")
	e.Step()
	e.SetProgram("mumd")
	assert.Equal(t, 1, e.Program().Cursor())

	e.SetProgram("mu")
	assert.Equal(t, 0, e.Program().Cursor())
}

func TestPatternRotate(t *testing.T) {
	a := newFakeActor()
	a.facing = entity.DirUp
	e := newTestEngine(a, 1)

	for i := 0; i < 4; i++ {
		e.Step()
	}
	assert.Equal(t, []string{
		"walk up", "face left/left",
		"walk left", "face down/down",
		"walk down", "face right/right",
		"walk right", "face up/up",
	}, a.take())
}

func TestPatternDiagonalWalk(t *testing.T) {
	a := newFakeActor()
	a.facing = entity.DirUp
	e := newTestEngine(a, 2)

	e.Step()
	e.Step()
	assert.Equal(t, []string{
		"walk up-left", "face right/down-right",
		"walk up-right", "face down/down-left",
	}, a.take())
}

func TestPatternCycles(t *testing.T) {
	tests := []struct {
		pattern Pattern
		moves   []string
	}{
		{4, []string{"move 7,0", "move -7,0", "move 7,0"}},
		{5, []string{"move 0,7", "move 0,-7", "move 0,7"}},
		{7, []string{"move 1,1", "move -1,1", "move -1,-1", "move 1,-1", "move 1,1"}},
		{6, []string{"move 3,0", "move 2,-2", "move 0,-3", "move -2,-2", "move -3,0", "move -2,2", "move 0,3", "move 2,2", "move 3,0"}},
	}
	for _, tt := range tests {
		a := newFakeActor()
		e := newTestEngine(a, tt.pattern)
		for range tt.moves {
			e.Step()
		}
		assert.Equal(t, tt.moves, a.take(), "pattern %s", tt.pattern)
	}
}

func TestPatternDiamondFacesDown(t *testing.T) {
	a := newFakeActor()
	e := newTestEngine(a, 3)
	for i := 0; i < 4; i++ {
		e.Step()
	}
	assert.Equal(t, []string{
		"move 1,1", "face down/down",
		"move 1,-1", "face down/down",
		"move -1,-1", "face down/down",
		"move -1,1", "face down/down",
	}, a.take())
	assert.Equal(t, 0, e.State())
}

func TestPatternWallFollow(t *testing.T) {
	a := newFakeActor()
	a.facing = entity.DirUp
	e := newTestEngine(a, 8)

	e.Step()
	assert.Equal(t, []string{"move -1,0"}, a.take(), "left is tried first when facing up")

	a.walls[world.Tile(9, 10)] = true
	e.Step()
	assert.Equal(t, []string{"move 0,-1"}, a.take())

	a.walls[world.Tile(10, 9)] = true
	a.walls[world.Tile(11, 10)] = true
	a.walls[world.Tile(10, 11)] = true
	e.Step()
	assert.Empty(t, a.take(), "boxed in: no move")
}

func TestPatternMoveAndSit(t *testing.T) {
	a := newFakeActor()
	a.facing = entity.DirLeft
	e := newTestEngine(a, 9)

	for i := 0; i < 5; i++ {
		e.Step()
	}
	assert.Equal(t, []string{"move -1,0", "action sitting", "move -1,0"}, a.take())

	a.allow = false
	e.Step()
	assert.Empty(t, a.take(), "sit suppressed when actions are not allowed")
	assert.Equal(t, 2, e.State())
}

func TestSetPatternResetsState(t *testing.T) {
	a := newFakeActor()
	e := newTestEngine(a, 7)
	e.Step()
	require.Equal(t, 1, e.State())

	e.SetPattern(7)
	assert.Equal(t, 1, e.State(), "same pattern keeps state")

	e.SetPattern(6)
	assert.Equal(t, 0, e.State())
}
