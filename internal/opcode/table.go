// Package opcode provides the 6502 encoding table and the addressing mode
// inference for instruction operands.
package opcode

import (
	"strings"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/retrogolib/set"
)

// Modes maps the addressing modes supported by a mnemonic to the opcode byte.
type Modes map[m6502.AddressingMode]byte

// Supports returns whether the addressing mode is supported.
func (m Modes) Supports(mode m6502.AddressingMode) bool {
	_, ok := m[mode]
	return ok
}

// Table is the immutable mapping of mnemonic to supported addressing modes.
type Table struct {
	instructions map[string]Modes
	relative     set.Set[string]
}

// New returns an encoding table of all official 6502 instructions.
func New() *Table {
	t := &Table{
		instructions: make(map[string]Modes),
		relative:     set.New[string](),
	}

	for b, op := range m6502.Opcodes {
		if op.Instruction == nil || op.Instruction.Unofficial {
			continue
		}

		name := strings.ToUpper(op.Instruction.Name)
		modes, ok := t.instructions[name]
		if !ok {
			modes = make(Modes)
			t.instructions[name] = modes
		}
		if modes.Supports(op.Addressing) {
			continue
		}
		modes[op.Addressing] = byte(b)

		if op.Addressing == m6502.RelativeAddressing {
			t.relative.Add(name)
		}
	}
	return t
}

// Lookup returns the addressing modes of the given uppercase mnemonic.
func (t *Table) Lookup(mnemonic string) (Modes, bool) {
	modes, ok := t.instructions[mnemonic]
	return modes, ok
}

// IsRelative returns whether the mnemonic is a relative branch instruction.
func (t *Table) IsRelative(mnemonic string) bool {
	return t.relative.Contains(mnemonic)
}

// Len returns the number of mnemonics in the table.
func (t *Table) Len() int {
	return len(t.instructions)
}
