package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

func TestNavigateToOpenMap(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.c.NavigateTo(world.Tile(20, 20)))
	path := f.c.NavigationPath()
	require.Equal(t, 10, path.Len())

	prev := f.c.Tile()
	for _, step := range path {
		assert.Equal(t, 1, world.Chebyshev(prev, step), "step %v follows %v", step, prev)
		prev = step
	}
	last, _ := path.Last()
	assert.Equal(t, world.Tile(20, 20), last)

	f.c.Logic()
	require.NotEmpty(t, f.h.dests)
	assert.Equal(t, world.Tile(11, 11), f.h.dests[0])
}

func TestNavigationFollowsPathToArrival(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.c.NavigateTo(world.Tile(20, 20)))
	want := f.c.NavigationPath()

	remaining := want.Len()
	for i := 0; i < 100 && f.c.Navigating(); i++ {
		f.serverStep()
		n := f.c.NavigationPath().Len()
		assert.LessOrEqual(t, n, remaining, "remaining path never grows")
		remaining = n
	}

	assert.False(t, f.c.Navigating())
	assert.Equal(t, world.Tile(20, 20), f.c.Tile())
	assert.Equal(t, []world.TilePosition(want), f.h.dests, "every node is requested once, in order")
}

func TestNavigateToUnreachable(t *testing.T) {
	f := newFixture(t)
	for x := 29; x <= 31; x++ {
		for y := 29; y <= 31; y++ {
			if x != 30 || y != 30 {
				f.wall(x, y)
			}
		}
	}

	assert.False(t, f.c.NavigateTo(world.Tile(30, 30)))
	f.c.Logic()
	assert.Empty(t, f.h.dests)
}

func TestNavigationWaitsWhileMoving(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.c.NavigateTo(world.Tile(15, 10)))

	f.c.SetAction(entity.ActionMove)
	f.c.Logic()
	assert.Empty(t, f.h.dests)
}

func TestNavigationWaitsForDistantServerPosition(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.DriftThreshold = 30 }))
	f.c.SetServerPosition(world.Tile(35, 10))
	require.True(t, f.c.NavigateTo(world.Tile(15, 10)))

	f.c.Logic()
	assert.Equal(t, world.Tile(10, 10), f.c.Tile(), "drift below the configured threshold")
	assert.Empty(t, f.h.dests, "server position is out of navigation range")
}

func TestNavigationDrawsRoad(t *testing.T) {
	f := newFixture(t, withSettings(func(s *Settings) { s.DrawPath = true }))
	layer := f.tm.Special()

	require.True(t, f.c.NavigateTo(world.Tile(15, 10)))
	assert.Equal(t, 5, layer.Count(world.MarkerRoad))

	f.c.NavigateClean()
	assert.Equal(t, 0, layer.Count(world.MarkerRoad))
	assert.False(t, f.c.Navigating())
}

func TestNavigateToBeingRepaths(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 15, 10)

	require.True(t, f.c.NavigateToBeing(m))
	assert.Equal(t, uint32(100), f.c.TrackedBeing())

	m.Tile = world.Tile(15, 14)
	f.c.Logic()

	dest, ok := f.c.NavigationTarget()
	require.True(t, ok)
	assert.Equal(t, world.Tile(15, 14), dest)
	last, _ := f.c.NavigationPath().Last()
	assert.Equal(t, world.Tile(15, 14), last)
}

func TestNavigateToBeingGone(t *testing.T) {
	f := newFixture(t)
	m := f.add(100, entity.TypeMonster, 15, 10)
	require.True(t, f.c.NavigateToBeing(m))

	f.beings.Remove(100)
	f.c.Logic()

	assert.False(t, f.c.Navigating())
	assert.Empty(t, f.h.dests)
}

func TestNavigationOriginAndAnchor(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.c.NavigateTo(world.Tile(12, 12)))

	px, tile := f.c.NavigationOrigin()
	assert.Equal(t, world.Tile(10, 10).Pixel(), px)
	assert.Equal(t, world.Tile(10, 10), tile)
	assert.Equal(t, world.Tile(10, 10), f.c.Anchor())
}
