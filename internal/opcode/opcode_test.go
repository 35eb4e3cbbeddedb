package opcode

import (
	"testing"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/retrogolib/assert"
)

func TestTableLookup(t *testing.T) {
	table := New()

	tests := []struct {
		mnemonic string
		mode     m6502.AddressingMode
		opcode   byte
	}{
		{"LDA", m6502.ImmediateAddressing, 0xa9},
		{"LDA", m6502.ZeroPageAddressing, 0xa5},
		{"LDA", m6502.AbsoluteXAddressing, 0xbd},
		{"LDA", m6502.IndirectYAddressing, 0xb1},
		{"STA", m6502.ZeroPageAddressing, 0x85},
		{"STX", m6502.ZeroPageYAddressing, 0x96},
		{"JMP", m6502.AbsoluteAddressing, 0x4c},
		{"JMP", m6502.IndirectAddressing, 0x6c},
		{"BNE", m6502.RelativeAddressing, 0xd0},
		{"ASL", m6502.AccumulatorAddressing, 0x0a},
		{"NOP", m6502.ImpliedAddressing, 0xea},
	}

	for _, tt := range tests {
		t.Run(tt.mnemonic+" "+ModeName(tt.mode), func(t *testing.T) {
			modes, ok := table.Lookup(tt.mnemonic)
			assert.True(t, ok)
			opcode, ok := modes[tt.mode]
			assert.True(t, ok)
			assert.Equal(t, tt.opcode, opcode)
		})
	}

	_, ok := table.Lookup("FOO")
	assert.False(t, ok)
	_, ok = table.Lookup("lda")
	assert.False(t, ok)
	assert.True(t, table.Len() >= 56)
}

func TestTableRelative(t *testing.T) {
	table := New()

	for _, name := range []string{"BCC", "BCS", "BEQ", "BMI", "BNE", "BPL", "BVC", "BVS"} {
		assert.True(t, table.IsRelative(name))
	}
	assert.False(t, table.IsRelative("JMP"))
	assert.False(t, table.IsRelative("LDA"))
}

func TestInferMode(t *testing.T) {
	table := New()

	tests := []struct {
		name     string
		mnemonic string
		operand  string
		width    Width
		expected m6502.AddressingMode
		ok       bool
	}{
		{"implied", "NOP", "", NoOperand, m6502.ImpliedAddressing, true},
		{"accumulator", "ASL", "", NoOperand, m6502.AccumulatorAddressing, true},
		{"accumulator named", "ROR", "A", NoOperand, m6502.AccumulatorAddressing, true},
		{"missing operand", "LDA", "", NoOperand, 0, false},
		{"immediate", "LDA", "#$01", Byte, m6502.ImmediateAddressing, true},
		{"immediate wide", "LDA", "#$1234", Word, m6502.ImmediateAddressing, true},
		{"immediate unresolved", "LDX", "#COUNT", Unresolved, m6502.ImmediateAddressing, true},
		{"immediate unsupported zero page", "STA", "#$10", Byte, m6502.ZeroPageAddressing, true},
		{"immediate unsupported absolute", "STA", "#$1234", Word, m6502.AbsoluteAddressing, true},
		{"immediate unsupported indexed", "STA", "#$10,X", Byte, m6502.ZeroPageXAddressing, true},
		{"immediate without operand mode", "INX", "#$10", Byte, 0, false},
		{"indirect y", "LDA", "($10),Y", Byte, m6502.IndirectYAddressing, true},
		{"indirect x", "LDA", "($10,X)", Byte, m6502.IndirectXAddressing, true},
		{"indirect", "JMP", "($1234)", Word, m6502.IndirectAddressing, true},
		{"indirect fallback", "JMP", "($10),Y", Byte, m6502.IndirectAddressing, true},
		{"zero page x", "LDA", "$10,X", Byte, m6502.ZeroPageXAddressing, true},
		{"absolute x", "LDA", "$1234,X", Word, m6502.AbsoluteXAddressing, true},
		{"zero page y", "LDX", "$10,Y", Byte, m6502.ZeroPageYAddressing, true},
		{"absolute y", "LDA", "$1234,Y", Word, m6502.AbsoluteYAddressing, true},
		{"zero page y unsupported", "LDA", "$10,Y", Byte, 0, false},
		{"unresolved indexed", "LDA", "$10,Y", Unresolved, m6502.AbsoluteYAddressing, true},
		{"relative", "BNE", "$EE", Byte, m6502.RelativeAddressing, true},
		{"relative unresolved", "BNE", "LOOP", Unresolved, m6502.RelativeAddressing, true},
		{"relative too wide", "BNE", "$8000", Word, 0, false},
		{"zero page", "STA", "$00", Byte, m6502.ZeroPageAddressing, true},
		{"zero page unresolved", "STA", "VAR", Unresolved, m6502.ZeroPageAddressing, true},
		{"absolute", "STA", "$0200", Word, m6502.AbsoluteAddressing, true},
		{"absolute unresolved", "JMP", "START", Unresolved, m6502.AbsoluteAddressing, true},
		{"absolute narrow", "JMP", "$10", Byte, 0, false},
		{"no operand expected", "INX", "$10", Byte, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modes, ok := table.Lookup(tt.mnemonic)
			assert.True(t, ok)

			mode, ok := InferMode(modes, tt.operand, tt.width)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, mode)
			}
		})
	}
}

func TestWidthOf(t *testing.T) {
	assert.Equal(t, Byte, WidthOf(0))
	assert.Equal(t, Byte, WidthOf(0xff))
	assert.Equal(t, Word, WidthOf(0x100))
	assert.Equal(t, Word, WidthOf(-1))
}
