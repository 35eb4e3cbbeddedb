package verification

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/fixasm/internal/assembler"
	"github.com/retroenv/fixasm/internal/config"
	"github.com/retroenv/fixasm/internal/objectfile"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func assembleProgram(t *testing.T) *assembler.Program {
	t.Helper()
	asm := assembler.New(log.NewTestLogger(t), nil, assembler.NewOptions())
	program, err := asm.Assemble(context.Background(), []string{
		fmt.Sprintf("%-8s%-5s%s", "", "LDA", "#$01"),
		fmt.Sprintf("%-8s%-5s%s", "", "STA", "$00"),
		fmt.Sprintf("%-8s%-5s%s", "", "CHK", ""),
	})
	assert.NoError(t, err)
	return program
}

func TestVerifyOutput(t *testing.T) {
	logger := log.NewTestLogger(t)
	program := assembleProgram(t)
	path := filepath.Join(t.TempDir(), "test"+objectfile.Extension)

	written, err := objectfile.Write(path, program)
	assert.NoError(t, err)
	assert.True(t, written)
	assert.NoError(t, VerifyOutput(logger, path, program))
}

func TestVerifyOutputMismatch(t *testing.T) {
	program := assembleProgram(t)
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"changed byte", "8000: A9 02\n8002: 85 00\n8004: 2D", "1 line mismatches"},
		{"changed address", "8000: A9 01\n8003: 85 00\n8004: 2D", "1 line mismatches"},
		{"missing line", "8000: A9 01\n8002: 85 00", "mismatched line count"},
		{"invalid content", "garbage", "parsing object file"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// mismatches are logged at error level
			logger := config.CreateLogger(false, true)
			path := filepath.Join(dir, fmt.Sprintf("test%d%s", i, objectfile.Extension))
			assert.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			err := VerifyOutput(logger, path, program)
			assert.ErrorContains(t, err, tt.contains)
		})
	}
}

func TestVerifyOutputMissingFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	program := assembleProgram(t)

	assert.Error(t, VerifyOutput(logger, "", program))
	assert.Error(t, VerifyOutput(logger, filepath.Join(t.TempDir(), "missing.o"), program))
}
