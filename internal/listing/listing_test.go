package listing

import (
	"bytes"
	"context"
	"fmt"
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

func write(t *testing.T, program *assembler.Program) string {
	t.Helper()
	buf := &bytes.Buffer{}
	assert.NoError(t, New(program, buf).Write())
	return buf.String()
}

func TestWrite(t *testing.T) {
	program := assemble(t,
		line("START", "LDA", "#$01"),
		line("", "STA", "$00"),
		line("", "END", ""),
	)

	expected := "8000: A9 01     1 START   LDA  #$01\n" +
		"8002: 85 00     2         STA  $00\n" +
		"                3         END\n" +
		"\n--End assembly, 4 bytes, errors: 0\n\n" +
		"Symbol table - alphabetical order:\n" +
		"    START    =$8000   \n" +
		"Symbol table - numerical order:\n" +
		"    START    =$8000   \n"
	assert.Equal(t, expected, write(t, program))
}

func TestWriteErrors(t *testing.T) {
	program := assemble(t,
		line("", "INX", "$10"),
		line("", "LDA", "#$01"),
		line("SUM", "CHK", ""),
	)

	output := write(t, program)
	lines := strings.Split(output, "\n")
	assert.Equal(t, "Bad address mode in line: 1", lines[0])
	assert.Equal(t, "                1         INX  $10", lines[1])
	assert.Equal(t, "8000: A9 01     2         LDA  #$01", lines[2])
	assert.Equal(t, "8002: A8        3 SUM     CHK", lines[3])
	assert.Contains(t, output, "--End assembly, 3 bytes, errors: 1\n")
}

func TestWriteSymbolRows(t *testing.T) {
	program := assemble(t,
		line("B", "EQU", "2"),
		line("A", "EQU", "$300"),
		line("C", "EQU", "1"),
		line("D", "EQU", "4"),
		line("E", "EQU", "5"),
	)

	expected := "Symbol table - alphabetical order:\n" +
		"    A        =$300    B        =$02     C        =$01     D        =$04     \n" +
		"    E        =$05     \n" +
		"Symbol table - numerical order:\n" +
		"    C        =$01     B        =$02     D        =$04     E        =$05     \n" +
		"    A        =$300    \n"

	output := write(t, program)
	_, symbolTables, found := strings.Cut(output, "errors: 0\n\n")
	assert.True(t, found)
	assert.Equal(t, expected, symbolTables)
}

func TestWritePartial(t *testing.T) {
	program := assemble(t,
		line("", "NOP", ""),
		line("", "FOO", ""),
		line("", "NOP", ""),
	)
	assert.False(t, program.Complete)

	assert.Equal(t, "8000: EA        1         NOP\n", write(t, program))
}
