package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/fixasm/internal/expression"
	"github.com/retroenv/fixasm/internal/opcode"
	"github.com/retroenv/fixasm/internal/symbols"
	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// maxInstructionSize is the length of an opcode with a two byte operand.
const maxInstructionSize = 3

var (
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrUnresolved    = errors.New("unresolved operand")
)

// Instruction is a 6502 instruction record.
type Instruction struct {
	line

	address  uint16
	mnemonic string
	operand  string // symbols substituted by their values where known
	modes    opcode.Modes
	relative bool

	unresolved bool
	outOfRange bool // a substituted branch target is not reachable

	encoded bool
	mode    m6502.AddressingMode
	opcode  byte
	params  []byte
	marker  ErrorMarker
}

// NewInstruction creates an instruction record at the given address. All
// symbols known so far are substituted in the operand, longest name first.
// If the operand can not be evaluated yet, the instruction is flagged as
// unresolved and encoded after Resolve is called with the final symbols.
func NewInstruction(src Source, address uint16, table *opcode.Table, syms *symbols.Table) (*Instruction, error) {
	modes, ok := table.Lookup(src.Mnemonic)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownOpcode, src.Mnemonic)
	}

	ins := &Instruction{
		line:     line{src: src},
		address:  address,
		mnemonic: src.Mnemonic,
		operand:  src.Operand,
		modes:    modes,
		relative: table.IsRelative(src.Mnemonic),
	}

	for _, sym := range syms.ByLength() {
		if strings.Contains(ins.operand, sym.Name) {
			ins.substitute(sym)
		}
	}

	if ins.hasValue() {
		if _, err := expression.Evaluate(ins.operand); err != nil {
			ins.unresolved = true
			return ins, nil
		}
	}

	if err := ins.encode(); err != nil {
		return nil, err
	}
	return ins, nil
}

// Resolve substitutes the longest symbol name found in the operand of an
// unresolved instruction and encodes it. An operand that still can not be
// evaluated returns ErrUnresolved.
func (ins *Instruction) Resolve(syms *symbols.Table) error {
	if !ins.unresolved {
		return nil
	}
	ins.unresolved = false

	if sym, ok := syms.LongestMatch(ins.operand); ok {
		ins.substitute(sym)
	}
	return ins.encode()
}

// Address returns the memory address of the instruction.
func (ins *Instruction) Address() uint16 { return ins.address }

// Mnemonic returns the instruction mnemonic.
func (ins *Instruction) Mnemonic() string { return ins.mnemonic }

// Operand returns the operand text with known symbols substituted.
func (ins *Instruction) Operand() string { return ins.operand }

// Unresolved returns whether the operand still references an unknown symbol.
func (ins *Instruction) Unresolved() bool { return ins.unresolved }

// Encoded returns whether opcode and operand bytes have been determined.
func (ins *Instruction) Encoded() bool { return ins.encoded }

// Mode returns the inferred addressing mode, valid for encoded instructions
// without error marker.
func (ins *Instruction) Mode() m6502.AddressingMode { return ins.mode }

// Opcode returns the opcode byte.
func (ins *Instruction) Opcode() byte { return ins.opcode }

func (*Instruction) memory() {}

// substitute replaces every occurrence of the symbol name in the operand by
// its value. For relative branches the value is converted to the
// displacement from the following instruction.
func (ins *Instruction) substitute(sym symbols.Symbol) {
	value := int(sym.Value)
	if ins.relative {
		value = ins.displacement(value)
	}
	ins.operand = strings.ReplaceAll(ins.operand, sym.Name, expression.FormatLiteral(value, expression.Hexadecimal))
}

// displacement converts an absolute branch target to a signed displacement
// byte, wrapped into 0-255.
func (ins *Instruction) displacement(target int) int {
	d := target - (int(ins.address) + 2)
	if d < -128 || d > 127 {
		ins.outOfRange = true
	}
	if d < 0 {
		d += 256
	}
	return d
}

// hasValue returns whether the operand holds a value to evaluate.
func (ins *Instruction) hasValue() bool {
	return ins.operand != "" && !opcode.IsAccumulatorOperand(ins.modes, ins.operand)
}

// encode determines addressing mode, opcode and operand bytes.
func (ins *Instruction) encode() error {
	width := opcode.NoOperand
	var value int
	if ins.hasValue() {
		var err error
		value, err = expression.Evaluate(ins.operand)
		if err != nil {
			return fmt.Errorf("%w '%s': %w", ErrUnresolved, ins.operand, err)
		}
		width = opcode.WidthOf(value)
	}

	ins.encoded = true
	mode, ok := opcode.InferMode(ins.modes, ins.operand, width)

	switch {
	case ins.relative && (ins.outOfRange || width == opcode.Word):
		ins.marker = BadBranch
		return nil
	case !ok:
		ins.marker = BadAddressMode
		return nil
	}

	ins.mode = mode
	ins.opcode = ins.modes[mode]

	switch width {
	case opcode.Byte:
		ins.params = []byte{byte(value)}
	case opcode.Word:
		ins.params = []byte{byte(value), byte(value >> 8)}
	}
	return nil
}

// length returns the number of bytes of the instruction. An unresolved
// instruction reserves its operand bytes: one for a relative branch and two
// otherwise.
func (ins *Instruction) length() int {
	if ins.unresolved {
		mode, ok := opcode.InferMode(ins.modes, ins.operand, opcode.Unresolved)
		switch {
		case !ok:
			return 0
		case mode == m6502.RelativeAddressing:
			return 2
		default:
			return maxInstructionSize
		}
	}
	if !ins.encoded || ins.marker != NoError {
		return 0
	}
	return 1 + len(ins.params)
}

func (ins *Instruction) bytes() []byte {
	if !ins.encoded || ins.marker != NoError {
		return nil
	}
	data := make([]byte, 0, maxInstructionSize)
	data = append(data, ins.opcode)
	return append(data, ins.params...)
}
