// Package verification verifies that the written object file recreates the
// assembled program.
package verification

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/fixasm/internal/assembler"
	"github.com/retroenv/fixasm/internal/objectfile"
	"github.com/retroenv/retrogolib/log"
)

const maxReportedMismatches = 10

var errNoOutput = errors.New("no object file to verify")

// VerifyOutput reads the object file back and compares every line with the
// memory records of the program.
func VerifyOutput(logger *log.Logger, path string, program *assembler.Program) error {
	if path == "" {
		return errNoOutput
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening object file '%s': %w", path, err)
	}
	defer func() { _ = file.Close() }()

	written, err := objectfile.Parse(file)
	if err != nil {
		return fmt.Errorf("parsing object file '%s': %w", path, err)
	}

	return checkLinesEqual(logger, objectfile.Lines(program), written)
}

func checkLinesEqual(logger *log.Logger, expected, got []objectfile.Line) error {
	if len(expected) != len(got) {
		return fmt.Errorf("mismatched line count, %d != %d", len(expected), len(got))
	}

	var diffs uint64
	for i := range expected {
		if linesEqual(expected[i], got[i]) {
			continue
		}

		diffs++
		if diffs <= maxReportedMismatches {
			logger.Error("Object line mismatch",
				log.Int("line", i+1),
				log.Hex("expected_address", expected[i].Address),
				log.Hex("address", got[i].Address),
				log.String("expected", fmt.Sprintf("% X", expected[i].Data)),
				log.String("got", fmt.Sprintf("% X", got[i].Data)))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d line mismatches", diffs)
}

func linesEqual(a, b objectfile.Line) bool {
	return a.Address == b.Address && bytes.Equal(a.Data, b.Data)
}
