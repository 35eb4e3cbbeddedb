package objectfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/fixasm/internal/assembler"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func line(label, mnemonic, operand string) string {
	return fmt.Sprintf("%-8s%-5s%s", label, mnemonic, operand)
}

func assemble(t *testing.T, lines ...string) *assembler.Program {
	t.Helper()
	asm := assembler.New(log.NewTestLogger(t), nil, assembler.NewOptions())
	program, _ := asm.Assemble(context.Background(), lines)
	return program
}

func TestEncode(t *testing.T) {
	program := assemble(t,
		line("", "LDA", "#$01"),
		line("", "STA", "$00"),
		line("", "END", ""),
	)
	assert.Equal(t, "8000: A9 01\n8002: 85 00", Encode(program))

	program = assemble(t,
		line("", "NOP", ""),
		line("", "JMP", "$1234"),
		line("", "CHK", ""),
	)
	assert.Equal(t, "8000: EA\n8001: 4C 34 12\n8004: 80", Encode(program))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog"+Extension)
	assert.NoError(t, os.WriteFile(path, []byte("old content"), 0o600))

	program := assemble(t,
		line("", "LDA", "#$01"),
		line("", "STA", "$00"),
	)
	written, err := Write(path, program)
	assert.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "8000: A9 01\n8002: 85 00", string(data))
}

func TestWriteSkipped(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		lines []string
	}{
		{"duplicate symbol", []string{line("X", "NOP", ""), line("X", "NOP", "")}},
		{"bad address mode", []string{line("", "INX", "$10")}},
		{"fatal error", []string{line("", "NOP", ""), line("", "FOO", "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+Extension)

			written, err := Write(path, assemble(t, tt.lines...))
			assert.NoError(t, err)
			assert.False(t, written)

			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestParse(t *testing.T) {
	lines, err := Parse(strings.NewReader("8000: A9 01\n8002: 4C 00 80\n8005: 2D"))
	assert.NoError(t, err)
	assert.Equal(t, []Line{
		{Address: 0x8000, Data: []byte{0xa9, 0x01}},
		{Address: 0x8002, Data: []byte{0x4c, 0x00, 0x80}},
		{Address: 0x8005, Data: []byte{0x2d}},
	}, lines)

	invalid := []string{
		"8000 A9",
		"80000: A9",
		"XYZW: A9",
		"8000: A9 1",
		"8000: GG",
		"8000:",
	}
	for _, text := range invalid {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(strings.NewReader(text))
			assert.Error(t, err)
		})
	}
}

func TestLinesRoundTrip(t *testing.T) {
	program := assemble(t,
		line("START", "LDX", "#$00"),
		line("LOOP", "INX", ""),
		line("", "BNE", "LOOP"),
		line("", "JMP", "START"),
		line("", "CHK", ""),
	)

	parsed, err := Parse(strings.NewReader(Encode(program)))
	assert.NoError(t, err)
	assert.Equal(t, Lines(program), parsed)
}
