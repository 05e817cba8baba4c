// Package automation drives unattended "crazy move" behaviour: a set of
// built-in movement patterns plus a small user-programmable script.
package automation

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/internal/logger"
)

// DefaultEmoteCount bounds random emote ids.
const DefaultEmoteCount = 13

// Actor is the character surface automation drives. It exposes the same
// primitives as manual play.
type Actor interface {
	Tile() world.TilePosition
	Direction() entity.Direction
	IsMoving() bool
	IsWalkable(tile world.TilePosition) bool

	Move(dx, dy int)
	SetWalkingDir(dir entity.Direction)
	// Face sets the local facing and sends server to the server. The two
	// differ only for pattern 2.
	Face(local, server entity.Direction)

	ToggleSit() bool
	AllowAction() bool
	ChangeAction(a entity.Action)
	Emote(id int) bool
	PetEmote(id int)
	PickUpItems(pickUpType int) bool
	WearOutfit(next bool)
	DropShortcut(all bool)
}

// Engine runs one automation step per call to Step.
type Engine struct {
	actor      Actor
	pattern    Pattern
	state      int
	program    *Program
	rng        *rand.Rand
	emoteCount int
	running    bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used by '?' parameters.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithEmoteCount sets the number of emotes random emotes choose from.
func WithEmoteCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.emoteCount = n
		}
	}
}

// NewEngine creates an engine with no pattern selected.
func NewEngine(actor Actor, opts ...Option) *Engine {
	e := &Engine{
		actor:      actor,
		program:    Parse(""),
		emoteCount: DefaultEmoteCount,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

// SetPattern selects a pattern and restarts its state.
func (e *Engine) SetPattern(p Pattern) {
	if p != e.pattern {
		e.pattern = p
		e.state = 0
	}
}

// Pattern returns the selected pattern.
func (e *Engine) Pattern() Pattern { return e.pattern }

// SetProgram parses text as the custom program. Unchanged text keeps the
// current cursor.
func (e *Engine) SetProgram(text string) {
	if text == e.program.Source() {
		return
	}
	e.program = Parse(text)
	logger.Debug("automation program loaded",
		zap.String("source", text),
		zap.Int("instructions", e.program.Len()))
}

// Program returns the parsed custom program.
func (e *Engine) Program() *Program { return e.program }

// State returns the built-in pattern state counter.
func (e *Engine) State() int { return e.state }

// Running reports whether a step is in progress.
func (e *Engine) Running() bool { return e.running }

// Step performs one automation action. It does nothing while the actor is
// moving or when called from inside another step, and reports whether a
// step ran.
func (e *Engine) Step() bool {
	if e.running || e.actor == nil || e.pattern == PatternNone {
		return false
	}
	if e.actor.IsMoving() {
		return false
	}
	if e.pattern == PatternProgram && e.program.Empty() {
		return false
	}

	e.running = true
	defer func() { e.running = false }()

	if e.pattern == PatternProgram {
		e.runProgram()
	} else {
		e.runPattern(e.pattern)
	}
	return true
}

func (e *Engine) runProgram() {
	in := e.program.current()
	e.execute(in)
	e.program.advance()
}

var randomMoves = [8]entity.Direction{
	entity.DirLeft, entity.DirRight, entity.DirUp, entity.DirDown,
	entity.DirLeft.RotateHalfLeft(), entity.DirRight.RotateHalfLeft(),
	entity.DirUp.RotateHalfLeft(), entity.DirDown.RotateHalfLeft(),
}

var randomFacings = [4]entity.Direction{
	entity.DirLeft, entity.DirRight, entity.DirUp, entity.DirDown,
}

func (e *Engine) execute(in Instruction) {
	a := e.actor
	switch in.Op {
	case OpMove:
		var dx, dy int
		switch in.Target {
		case Fixed:
			dx, dy = in.Dir.Delta()
		case Forward:
			dx, dy = a.Direction().Delta()
		case Backward:
			dx, dy = a.Direction().Opposite().Delta()
		case Random:
			dx, dy = randomMoves[e.rng.IntN(len(randomMoves))].Delta()
		}
		a.Move(dx, dy)

	case OpFace:
		var dir entity.Direction
		switch in.Target {
		case Fixed:
			dir = in.Dir
		case RotateLeft:
			dir = a.Direction().RotateLeft()
		case RotateRight:
			dir = a.Direction().RotateRight()
		case Opposite:
			dir = a.Direction().Opposite()
		case Random:
			dir = randomFacings[e.rng.IntN(len(randomFacings))]
		}
		a.Face(dir, dir)

	case OpDropFirst:
		a.DropShortcut(false)
	case OpDropAll:
		a.DropShortcut(true)
	case OpSit:
		a.ToggleSit()
	case OpOutfit:
		a.WearOutfit(in.Next)
	case OpPickUp:
		a.PickUpItems(0)

	case OpEmote:
		id := in.Emote
		if in.Target == Random {
			id = 1 + e.rng.IntN(e.emoteCount)
		}
		if in.Pet {
			a.PetEmote(id)
		} else {
			a.Emote(id)
		}

	case OpWait, OpSkip:
	}
}
