// Package assembler implements the two pass assembler driver.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/fixasm/internal/diagnostics"
	"github.com/retroenv/fixasm/internal/expression"
	"github.com/retroenv/fixasm/internal/opcode"
	"github.com/retroenv/fixasm/internal/record"
	"github.com/retroenv/fixasm/internal/symbols"
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultOrigin is the start address used if the source contains no ORG.
	DefaultOrigin = 0x8000
	// MaxAddress is the highest address the address counter can reach.
	MaxAddress = 0xFFFF
)

// State is the processing state of the assembler.
type State int

// Assembler states.
const (
	Scanning  State = iota // pass 1: classify lines and collect symbols
	Resolving              // pass 2: resolve forward references
	Ready                  // the program can be listed and emitted
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Resolving:
		return "resolving"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options of the assembler.
type Options struct {
	Origin uint16 // start address if the source contains no ORG
}

// NewOptions returns the default options.
func NewOptions() Options {
	return Options{
		Origin: DefaultOrigin,
	}
}

// Assembler translates fixed column 6502 source lines into a program.
type Assembler struct {
	logger *log.Logger
	sink   diagnostics.Sink
	table  *opcode.Table
	opts   Options

	state   State
	address int  // can exceed MaxAddress after the last line processed
	emitted bool // a byte emitting line has been processed
	program *Program

	checksumStart int // index of the first memory record after the last CHK
}

// New returns a new assembler. Every non-fatal error is passed to the sink
// as soon as it is detected.
func New(logger *log.Logger, sink diagnostics.Sink, opts Options) *Assembler {
	if sink == nil {
		sink = diagnostics.Discard{}
	}
	return &Assembler{
		logger: logger,
		sink:   sink,
		table:  opcode.New(),
		opts:   opts,
	}
}

// State returns the current processing state.
func (a *Assembler) State() State {
	return a.state
}

// Assemble processes all source lines. On a fatal error the partial program
// up to the failing line is returned together with a *FatalError.
func (a *Assembler) Assemble(ctx context.Context, lines []string) (*Program, error) {
	a.reset()

	a.logger.Debug("Starting pass 1", log.Int("lines", len(lines)), log.Hex("origin", a.opts.Origin))
	for i, text := range lines {
		if err := ctx.Err(); err != nil {
			return a.program, fmt.Errorf("assembling line %d: %w", i+1, err)
		}
		if err := a.scanLine(i+1, text); err != nil {
			return a.program, err
		}
	}

	a.transition(Resolving)
	if err := a.resolve(); err != nil {
		return a.program, err
	}

	a.transition(Ready)
	a.program.Complete = true

	a.logger.Debug("Assembly finished",
		log.Int("bytes", a.program.Size()),
		log.Int("symbols", a.program.Symbols.Len()),
		log.Int("errors", a.program.ErrorCount()),
	)
	return a.program, nil
}

func (a *Assembler) reset() {
	a.state = Scanning
	a.address = int(a.opts.Origin)
	a.emitted = false
	a.checksumStart = 0
	a.program = &Program{
		Origin:  a.opts.Origin,
		Symbols: symbols.New(),
	}
}

func (a *Assembler) transition(state State) {
	a.logger.Debug("State transition",
		log.String("from", a.state.String()),
		log.String("to", state.String()))
	a.state = state
}

// scanLine processes a single source line in pass 1 and checks the resource
// limits afterwards.
func (a *Assembler) scanLine(number int, text string) error {
	src, err := record.ParseSource(number, text)
	if err != nil {
		return fatal(LineTooLong, number, err)
	}

	switch class := src.Classify(); class {
	case record.ClassComment, record.ClassEnd:
		a.add(record.NewDirective(src, class))

	case record.ClassOrg:
		a.add(record.NewDirective(src, class))
		if err := a.setOrigin(src); err != nil {
			return err
		}

	case record.ClassEqu:
		a.add(record.NewDirective(src, class))
		if err := a.defineConstant(src); err != nil {
			return err
		}

	case record.ClassChecksum:
		memory := a.program.Memory[a.checksumStart:]
		chk := record.NewChecksum(src, uint16(a.address), memory[:len(memory):len(memory)])
		a.addMemory(chk)
		a.checksumStart = len(a.program.Memory)

	default:
		ins, err := record.NewInstruction(src, uint16(a.address), a.table, a.program.Symbols)
		if err != nil {
			if errors.Is(err, record.ErrUnknownOpcode) {
				return fatal(UnknownOpcode, number, err)
			}
			return fatal(BadOperand, number, err)
		}
		a.addMemory(ins)
	}

	if a.address > MaxAddress {
		return fatal(ResourceExhausted, number, fmt.Errorf("address $%X exceeds $%X", a.address, MaxAddress))
	}
	if a.program.Symbols.Exceeded() {
		return fatal(ResourceExhausted, number, fmt.Errorf("more than %d symbols", symbols.MaxSymbols))
	}
	return nil
}

func (a *Assembler) add(r record.Record) {
	a.program.Records = append(a.program.Records, r)
}

// addMemory adds a byte emitting record, defines its label and advances the
// address counter.
func (a *Assembler) addMemory(m record.Memory) {
	a.add(m)
	a.program.Memory = append(a.program.Memory, m)

	if label := m.Label(); label != "" {
		a.define(label, m.Address(), m.Number())
	}
	a.reportMarker(m)

	length := record.Length(m)
	if length > 0 {
		a.emitted = true
	}
	a.address += length
}

func (a *Assembler) define(name string, value uint16, line int) {
	if !a.program.Symbols.Define(name, value) {
		a.report(diagnostics.Diagnostic{Kind: diagnostics.DuplicateSymbol, Line: line})
		return
	}
	a.logger.Debug("Symbol defined", log.String("name", name), log.Hex("value", value))
}

func (a *Assembler) reportMarker(r record.Record) {
	if d, ok := diagnostics.ForRecord(r); ok {
		a.report(d)
	}
}

func (a *Assembler) report(d diagnostics.Diagnostic) {
	a.program.Diagnostics = append(a.program.Diagnostics, d)
	a.sink.Observe(d)
}

// setOrigin handles an ORG directive. It only takes effect before the first
// byte emitting line.
func (a *Assembler) setOrigin(src record.Source) error {
	if a.emitted {
		a.logger.Warn("Ignoring ORG after code", log.Int("line", src.Number))
		return nil
	}

	value, err := a.evaluateArgument(src)
	if err != nil {
		return err
	}
	a.address = value
	a.program.Origin = uint16(value)
	a.logger.Debug("Origin set", log.Hex("address", a.program.Origin))
	return nil
}

// defineConstant handles an EQU directive. The label column names the
// symbol, the operand is evaluated with all known symbols substituted and
// a leading * standing for the current address.
func (a *Assembler) defineConstant(src record.Source) error {
	if src.Label == "" {
		return fatal(BadOperand, src.Number, errors.New("missing symbol name"))
	}
	if a.program.Symbols.Has(src.Label) {
		a.report(diagnostics.Diagnostic{Kind: diagnostics.DuplicateSymbol, Line: src.Number})
		return nil
	}

	value, err := a.evaluateArgument(src)
	if err != nil {
		return err
	}
	a.define(src.Label, uint16(value), src.Number)
	return nil
}

// evaluateArgument evaluates the operand of a directive to an address.
func (a *Assembler) evaluateArgument(src record.Source) (int, error) {
	operand := src.Operand
	if strings.HasPrefix(operand, "*") {
		operand = expression.FormatLiteral(a.address, expression.Hexadecimal) + operand[1:]
	}
	for _, sym := range a.program.Symbols.ByLength() {
		operand = strings.ReplaceAll(operand, sym.Name, expression.FormatLiteral(int(sym.Value), expression.Hexadecimal))
	}

	value, err := expression.Evaluate(operand)
	if err != nil {
		return 0, fatal(BadOperand, src.Number, fmt.Errorf("evaluating '%s': %w", src.Operand, err))
	}
	if value < 0 || value > MaxAddress {
		return 0, fatal(BadOperand, src.Number, fmt.Errorf("value $%X of '%s' out of range", value, src.Operand))
	}
	return value, nil
}

// resolve runs pass 2: every instruction with a forward reference is
// resolved against the final symbol table.
func (a *Assembler) resolve() error {
	var resolved int
	for _, m := range a.program.Memory {
		ins, ok := m.(*record.Instruction)
		if !ok || !ins.Unresolved() {
			continue
		}

		if err := ins.Resolve(a.program.Symbols); err != nil {
			return fatal(BadOperand, ins.Number(), err)
		}
		a.reportMarker(ins)
		resolved++
	}

	a.logger.Debug("Forward references resolved", log.Int("count", resolved))
	return nil
}
