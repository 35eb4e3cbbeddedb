package assembler

import (
	"github.com/retroenv/fixasm/internal/diagnostics"
	"github.com/retroenv/fixasm/internal/record"
	"github.com/retroenv/fixasm/internal/symbols"
)

// Program is the result of an assembly run.
type Program struct {
	Origin      uint16
	Records     []record.Record // all processed source lines in order
	Memory      []record.Memory // byte emitting records in order
	Symbols     *symbols.Table
	Diagnostics []diagnostics.Diagnostic

	// Complete is false if the assembly was aborted by a fatal error, the
	// records contain the lines processed up to and including the failing one.
	Complete bool
}

// Size returns the total number of bytes emitted by all records.
func (p *Program) Size() int {
	var size int
	for _, r := range p.Records {
		size += record.Length(r)
	}
	return size
}

// ErrorCount returns the number of non-fatal errors of the program.
func (p *Program) ErrorCount() int {
	return len(p.Diagnostics)
}

// Emittable returns whether an object file can be written for the program:
// the assembly completed and no record carries an error.
func (p *Program) Emittable() bool {
	if !p.Complete || len(p.Diagnostics) > 0 {
		return false
	}
	for _, m := range p.Memory {
		if record.ErrorOf(m) != record.NoError {
			return false
		}
	}
	return true
}
