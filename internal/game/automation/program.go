package automation

import (
	"fmt"
	"strings"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
)

// Op is an automation instruction opcode.
type Op uint8

const (
	OpSkip Op = iota
	OpMove
	OpFace
	OpDropFirst
	OpDropAll
	OpSit
	OpOutfit
	OpWait
	OpPickUp
	OpEmote
)

func (o Op) String() string {
	switch o {
	case OpSkip:
		return "skip"
	case OpMove:
		return "move"
	case OpFace:
		return "face"
	case OpDropFirst:
		return "drop-first"
	case OpDropAll:
		return "drop-all"
	case OpSit:
		return "sit"
	case OpOutfit:
		return "outfit"
	case OpWait:
		return "wait"
	case OpPickUp:
		return "pickup"
	case OpEmote:
		return "emote"
	}
	return "unknown"
}

// Target selects how a move or face instruction resolves its direction.
type Target uint8

const (
	Fixed       Target = iota // Dir holds the direction
	Forward                   // along current facing
	Backward                  // against current facing
	RotateLeft                // facing turned 90 degrees counter-clockwise
	RotateRight               // facing turned 90 degrees clockwise
	Opposite                  // facing reversed
	Random                    // picked at execution time
)

// Instruction is one parsed program step.
type Instruction struct {
	Op     Op
	Target Target
	Dir    entity.Direction
	Next   bool // outfit: next (true) or previous
	Emote  int  // emote id, 0 when Target is Random
	Pet    bool // emote through the pet
	Width  int  // source bytes consumed
}

func (in Instruction) String() string {
	switch in.Op {
	case OpMove, OpFace:
		if in.Target == Fixed {
			return fmt.Sprintf("%s(%s)", in.Op, in.Dir)
		}
		return fmt.Sprintf("%s(target=%d)", in.Op, in.Target)
	case OpEmote:
		return fmt.Sprintf("emote(%d, pet=%t)", in.Emote, in.Pet)
	}
	return in.Op.String()
}

// Program is an automation script parsed once into instructions.
type Program struct {
	source       string
	instructions []Instruction
	cursor       int
}

// moveParams maps the byte after 'm' to a direction.
var moveParams = map[byte]entity.Direction{
	'u': entity.DirUp,
	'd': entity.DirDown,
	'l': entity.DirLeft,
	'r': entity.DirRight,
	'U': entity.DirUp.RotateHalfLeft(),
	'R': entity.DirRight.RotateHalfLeft(),
	'D': entity.DirDown.RotateHalfLeft(),
	'L': entity.DirLeft.RotateHalfLeft(),
}

var faceParams = map[byte]entity.Direction{
	'u': entity.DirUp,
	'd': entity.DirDown,
	'l': entity.DirLeft,
	'r': entity.DirRight,
}

// Parse compiles program text. It never fails: unknown bytes and commands
// with a malformed parameter become one-byte skips.
func Parse(text string) *Program {
	p := &Program{source: text}
	for i := 0; i < len(text); {
		in := parseAt(text, i)
		p.instructions = append(p.instructions, in)
		i += in.Width
	}
	return p
}

func parseAt(text string, i int) Instruction {
	skip := Instruction{Op: OpSkip, Width: 1}
	cmd := text[i]
	var param byte
	hasParam := i+1 < len(text)
	if hasParam {
		param = text[i+1]
	}

	switch cmd {
	case 'm':
		if !hasParam {
			return Instruction{Op: OpMove, Target: Forward, Width: 1}
		}
		if d, ok := moveParams[param]; ok {
			return Instruction{Op: OpMove, Target: Fixed, Dir: d, Width: 2}
		}
		switch param {
		case 'f':
			return Instruction{Op: OpMove, Target: Forward, Width: 2}
		case 'b':
			return Instruction{Op: OpMove, Target: Backward, Width: 2}
		case '?':
			return Instruction{Op: OpMove, Target: Random, Width: 2}
		}
		// Bare 'm' followed by another command.
		return Instruction{Op: OpMove, Target: Forward, Width: 1}

	case 'd':
		if !hasParam {
			return skip
		}
		if d, ok := faceParams[param]; ok {
			return Instruction{Op: OpFace, Target: Fixed, Dir: d, Width: 2}
		}
		switch param {
		case 'L':
			return Instruction{Op: OpFace, Target: RotateLeft, Width: 2}
		case 'R':
			return Instruction{Op: OpFace, Target: RotateRight, Width: 2}
		case 'b':
			return Instruction{Op: OpFace, Target: Opposite, Width: 2}
		case '?':
			return Instruction{Op: OpFace, Target: Random, Width: 2}
		case '0':
			return Instruction{Op: OpDropFirst, Width: 2}
		case 'a':
			return Instruction{Op: OpDropAll, Width: 2}
		}
		return skip

	case 's':
		return Instruction{Op: OpSit, Width: 1}

	case 'o':
		if param == 'n' || param == 'p' {
			return Instruction{Op: OpOutfit, Next: param == 'n', Width: 2}
		}
		return skip

	case 'w':
		return Instruction{Op: OpWait, Width: 1}

	case 'p':
		return Instruction{Op: OpPickUp, Width: 1}

	case 'e', 'E':
		if !hasParam {
			return skip
		}
		pet := cmd == 'E'
		if param == '?' {
			return Instruction{Op: OpEmote, Target: Random, Pet: pet, Width: 2}
		}
		if v, ok := base62(param); ok {
			return Instruction{Op: OpEmote, Target: Fixed, Emote: v + 1, Pet: pet, Width: 2}
		}
		return skip
	}
	return skip
}

// base62 decodes 0-9, a-z, A-Z into 0..61.
func base62(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 36, true
	}
	return 0, false
}

// Source returns the original program text.
func (p *Program) Source() string { return p.source }

// Len returns the number of instructions.
func (p *Program) Len() int { return len(p.instructions) }

// Empty reports whether the program has nothing to run.
func (p *Program) Empty() bool { return len(p.instructions) == 0 }

// Cursor returns the index of the next instruction.
func (p *Program) Cursor() int { return p.cursor }

// Instructions returns a copy of the parsed instructions.
func (p *Program) Instructions() []Instruction {
	out := make([]Instruction, len(p.instructions))
	copy(out, p.instructions)
	return out
}

// Reset moves the cursor to the first instruction.
func (p *Program) Reset() { p.cursor = 0 }

// current clamps the cursor and returns the instruction under it.
func (p *Program) current() Instruction {
	if p.cursor < 0 || p.cursor >= len(p.instructions) {
		p.cursor = 0
	}
	return p.instructions[p.cursor]
}

// advance moves past the current instruction, wrapping at the end.
func (p *Program) advance() {
	p.cursor++
	if p.cursor >= len(p.instructions) {
		p.cursor = 0
	}
}

func (p *Program) String() string {
	parts := make([]string, len(p.instructions))
	for i, in := range p.instructions {
		parts[i] = in.String()
	}
	return strings.Join(parts, " ")
}
