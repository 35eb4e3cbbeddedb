// Package listing implements writing of the assembly listing.
package listing

import (
	"fmt"
	"io"

	"github.com/retroenv/fixasm/internal/assembler"
	"github.com/retroenv/fixasm/internal/diagnostics"
	"github.com/retroenv/fixasm/internal/record"
	"github.com/retroenv/fixasm/internal/symbols"
)

const (
	symbolsPerRow = 4
	rowIndent     = "    "
)

// Writer writes the listing of an assembled program.
type Writer struct {
	program *assembler.Program
	writer  io.Writer
}

// New creates a new listing writer.
func New(program *assembler.Program, writer io.Writer) *Writer {
	return &Writer{
		program: program,
		writer:  writer,
	}
}

// Write writes all records of the program. For a completely assembled
// program the summary and the symbol tables follow.
func (w Writer) Write() error {
	for _, r := range w.program.Records {
		if err := w.writeRecord(r); err != nil {
			return err
		}
	}
	if !w.program.Complete {
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "\n--End assembly, %d bytes, errors: %d\n\n",
		w.program.Size(), w.program.ErrorCount()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := w.writeSymbols("alphabetical", w.program.Symbols.SortedByName()); err != nil {
		return err
	}
	return w.writeSymbols("numerical", w.program.Symbols.SortedByValue())
}

// writeRecord writes the assembly field, line number and source text of a
// record, preceded by the error message of a record carrying an error.
func (w Writer) writeRecord(r record.Record) error {
	if d, ok := diagnostics.ForRecord(r); ok {
		if _, err := fmt.Fprintln(w.writer, d.String()); err != nil {
			return fmt.Errorf("writing error line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w.writer, "%-15s%2d %s\n", record.Assembly(r), r.Number(), r.Raw()); err != nil {
		return fmt.Errorf("writing line %d: %w", r.Number(), err)
	}
	return nil
}

func (w Writer) writeSymbols(order string, items []symbols.Symbol) error {
	if _, err := fmt.Fprintf(w.writer, "Symbol table - %s order:\n", order); err != nil {
		return fmt.Errorf("writing symbol table header: %w", err)
	}

	row := rowIndent
	for i, sym := range items {
		row += fmt.Sprintf("%-9s%-9s", sym.Name, fmt.Sprintf("=$%02X", sym.Value))
		if (i+1)%symbolsPerRow != 0 {
			continue
		}
		if _, err := fmt.Fprintln(w.writer, row); err != nil {
			return fmt.Errorf("writing symbol table: %w", err)
		}
		row = rowIndent
	}

	if _, err := fmt.Fprintln(w.writer, row); err != nil {
		return fmt.Errorf("writing symbol table: %w", err)
	}
	return nil
}
