package opcode

import (
	"strings"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// Width is the byte width of a resolved operand value.
type Width int

// Operand widths. An unresolved operand is narrow enough for zero page and
// relative modes and wide enough for absolute modes until it gets resolved.
const (
	NoOperand Width = iota
	Unresolved
	Byte
	Word
)

// WidthOf returns the width of an operand value. Negative values wrap around
// into two bytes.
func WidthOf(value int) Width {
	if value < 0 || value > 0xff {
		return Word
	}
	return Byte
}

func (w Width) narrow() bool {
	return w == Byte || w == Unresolved
}

func (w Width) wide() bool {
	return w == Word || w == Unresolved
}

var modeNames = map[m6502.AddressingMode]string{
	m6502.ImpliedAddressing:     "imp",
	m6502.AccumulatorAddressing: "acc",
	m6502.ImmediateAddressing:   "imm",
	m6502.ZeroPageAddressing:    "zrp",
	m6502.ZeroPageXAddressing:   "zpx",
	m6502.ZeroPageYAddressing:   "zpy",
	m6502.AbsoluteAddressing:    "abs",
	m6502.AbsoluteXAddressing:   "abx",
	m6502.AbsoluteYAddressing:   "aby",
	m6502.IndirectAddressing:    "ind",
	m6502.IndirectXAddressing:   "inx",
	m6502.IndirectYAddressing:   "iny",
	m6502.RelativeAddressing:    "rel",
}

// ModeName returns the short name of an addressing mode.
func ModeName(mode m6502.AddressingMode) string {
	if name, ok := modeNames[mode]; ok {
		return name
	}
	return "???"
}

// IsAccumulatorOperand returns whether the operand explicitly names the
// accumulator for a mnemonic that supports accumulator addressing.
func IsAccumulatorOperand(modes Modes, operand string) bool {
	return operand == "A" && modes.Supports(m6502.AccumulatorAddressing)
}

// InferMode deduces the addressing mode from the operand syntax and the width
// of its value. The second return value is false if no supported mode fits.
func InferMode(modes Modes, operand string, width Width) (m6502.AddressingMode, bool) {
	var candidates []m6502.AddressingMode

	switch {
	case operand == "" || IsAccumulatorOperand(modes, operand):
		candidates = append(candidates, m6502.ImpliedAddressing, m6502.AccumulatorAddressing)

	case strings.HasPrefix(operand, "#") && modes.Supports(m6502.ImmediateAddressing):
		candidates = append(candidates, m6502.ImmediateAddressing)

	case strings.HasPrefix(operand, "("):
		switch {
		case strings.HasSuffix(operand, "),Y"):
			candidates = append(candidates, m6502.IndirectYAddressing)
		case strings.HasSuffix(operand, ",X)"):
			candidates = append(candidates, m6502.IndirectXAddressing)
		}
		candidates = append(candidates, m6502.IndirectAddressing)

	case strings.HasSuffix(operand, ",X"):
		candidates = indexed(candidates, width, m6502.ZeroPageXAddressing, m6502.AbsoluteXAddressing)

	case strings.HasSuffix(operand, ",Y"):
		candidates = indexed(candidates, width, m6502.ZeroPageYAddressing, m6502.AbsoluteYAddressing)

	default:
		if width.narrow() {
			candidates = append(candidates, m6502.RelativeAddressing, m6502.ZeroPageAddressing)
		}
		if width.wide() {
			candidates = append(candidates, m6502.AbsoluteAddressing)
		}
	}

	for _, mode := range candidates {
		if modes.Supports(mode) {
			return mode, true
		}
	}
	return 0, false
}

func indexed(candidates []m6502.AddressingMode, width Width, zeroPage, absolute m6502.AddressingMode) []m6502.AddressingMode {
	if width.narrow() {
		candidates = append(candidates, zeroPage)
	}
	if width.wide() {
		candidates = append(candidates, absolute)
	}
	return candidates
}
