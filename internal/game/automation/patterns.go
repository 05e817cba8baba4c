package automation

import (
	"fmt"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
)

// Pattern selects a built-in movement pattern or the custom program.
type Pattern uint8

const (
	PatternNone    Pattern = 0
	PatternProgram Pattern = 10
)

// ParsePattern accepts "1".."9" for built-in patterns and "a" for the
// custom program.
func ParsePattern(s string) (Pattern, error) {
	if len(s) == 1 {
		switch c := s[0]; {
		case c >= '1' && c <= '9':
			return Pattern(c - '0'), nil
		case c == 'a' || c == 'A':
			return PatternProgram, nil
		}
	}
	return PatternNone, fmt.Errorf("unknown crazy move pattern %q", s)
}

func (p Pattern) String() string {
	switch {
	case p == PatternProgram:
		return "a"
	case p >= 1 && p <= 9:
		return string(rune('0' + p))
	}
	return "none"
}

type step struct{ dx, dy int }

// Relative moves for the cyclic patterns, one per state.
var cycles = map[Pattern][]step{
	3: {{1, 1}, {1, -1}, {-1, -1}, {-1, 1}},
	4: {{7, 0}, {-7, 0}},
	5: {{0, 7}, {0, -7}},
	6: {{3, 0}, {2, -2}, {0, -3}, {-2, -2}, {-3, 0}, {-2, 2}, {0, 3}, {2, 2}},
	7: {{1, 1}, {-1, 1}, {-1, -1}, {1, -1}},
}

// rotateWalk: facing -> walking dir, new local facing, facing sent to server.
var rotateWalk = map[entity.Direction][3]entity.Direction{
	entity.DirUp:    {entity.DirUp, entity.DirLeft, entity.DirLeft},
	entity.DirLeft:  {entity.DirLeft, entity.DirDown, entity.DirDown},
	entity.DirDown:  {entity.DirDown, entity.DirRight, entity.DirRight},
	entity.DirRight: {entity.DirRight, entity.DirUp, entity.DirUp},
}

var diagonalWalk = map[entity.Direction][3]entity.Direction{
	entity.DirUp:    {entity.DirUp | entity.DirLeft, entity.DirRight, entity.DirDown | entity.DirRight},
	entity.DirRight: {entity.DirUp | entity.DirRight, entity.DirDown, entity.DirDown | entity.DirLeft},
	entity.DirDown:  {entity.DirDown | entity.DirRight, entity.DirLeft, entity.DirUp | entity.DirLeft},
	entity.DirLeft:  {entity.DirDown | entity.DirLeft, entity.DirUp, entity.DirUp | entity.DirRight},
}

// Wall-following candidates in priority order, by facing.
var wallFollow = map[entity.Direction][4]step{
	entity.DirUp:    {{-1, 0}, {0, -1}, {1, 0}, {0, 1}},
	entity.DirRight: {{0, -1}, {1, 0}, {0, 1}, {-1, 0}},
	entity.DirDown:  {{1, 0}, {0, 1}, {-1, 0}, {0, -1}},
	entity.DirLeft:  {{0, 1}, {-1, 0}, {0, -1}, {1, 0}},
}

// runPattern performs one step of a built-in pattern.
func (e *Engine) runPattern(p Pattern) {
	a := e.actor
	switch p {
	case 1:
		if m, ok := rotateWalk[a.Direction()]; ok {
			a.SetWalkingDir(m[0])
			a.Face(m[1], m[2])
		}
	case 2:
		if m, ok := diagonalWalk[a.Direction()]; ok {
			a.SetWalkingDir(m[0])
			a.Face(m[1], m[2])
		}
	case 3:
		e.cycle(p)
		a.Face(entity.DirDown, entity.DirDown)
	case 4, 5, 6, 7:
		e.cycle(p)
	case 8:
		e.followWall()
	case 9:
		e.moveAndSit()
	}
}

func (e *Engine) cycle(p Pattern) {
	steps := cycles[p]
	if e.state < 0 || e.state >= len(steps) {
		e.state = 0
	}
	s := steps[e.state]
	e.actor.Move(s.dx, s.dy)
	e.state = (e.state + 1) % len(steps)
}

func (e *Engine) followWall() {
	facing := e.actor.Direction()
	candidates, ok := wallFollow[facing]
	if !ok {
		candidates = wallFollow[entity.DirUp]
	}
	pos := e.actor.Tile()
	for _, c := range candidates {
		if e.actor.IsWalkable(pos.Add(c.dx, c.dy)) {
			e.actor.Move(c.dx, c.dy)
			return
		}
	}
}

func (e *Engine) moveAndSit() {
	switch e.state {
	case 0:
		var dx, dy int
		switch e.actor.Direction() {
		case entity.DirUp, entity.DirDown, entity.DirLeft, entity.DirRight:
			dx, dy = e.actor.Direction().Delta()
		}
		e.actor.Move(dx, dy)
		e.state = 1
	case 1:
		e.state = 2
		if e.actor.AllowAction() {
			e.actor.ChangeAction(entity.ActionSit)
		}
	case 2:
		e.state = 3
	default:
		e.state = 0
	}
}
