package record

import (
	"fmt"
	"strings"
)

// ErrorMarker is the non-fatal error state of a record.
type ErrorMarker int

// Record error markers.
const (
	NoError ErrorMarker = iota
	BadBranch
	BadAddressMode
)

func (e ErrorMarker) String() string {
	switch e {
	case BadBranch:
		return "bad branch"
	case BadAddressMode:
		return "bad address mode"
	default:
		return ""
	}
}

// Record is a single line of the program. The set of implementations is
// closed: *Directive, *Instruction and *Checksum.
type Record interface {
	Number() int
	Raw() string
	Label() string

	record()
}

// Memory is a record that emits bytes into the object file:
// *Instruction or *Checksum.
type Memory interface {
	Record

	Address() uint16
	memory()
}

type line struct {
	src Source
}

// Number returns the 1-based source line number.
func (l *line) Number() int { return l.src.Number }

// Raw returns the normalized source text.
func (l *line) Raw() string { return l.src.Raw }

// Label returns the label column of the source line.
func (l *line) Label() string { return l.src.Label }

func (*line) record() {}

// Length returns the number of bytes the record emits.
func Length(r Record) int {
	switch r := r.(type) {
	case *Directive:
		return 0
	case *Instruction:
		return r.length()
	case *Checksum:
		return checksumLength
	default:
		panic(fmt.Sprintf("unsupported record type %T", r))
	}
}

// Bytes returns the bytes the record emits into the object file.
func Bytes(r Record) []byte {
	switch r := r.(type) {
	case *Directive:
		return nil
	case *Instruction:
		return r.bytes()
	case *Checksum:
		return []byte{r.Value()}
	default:
		panic(fmt.Sprintf("unsupported record type %T", r))
	}
}

// ChecksumOf returns the checksum contribution of the record: the xor of all
// its emitted bytes. A record carrying an error contributes 0.
func ChecksumOf(r Record) byte {
	var chk byte
	for _, b := range Bytes(r) {
		chk ^= b
	}
	return chk
}

// ErrorOf returns the error marker of the record.
func ErrorOf(r Record) ErrorMarker {
	switch r := r.(type) {
	case *Directive, *Checksum:
		return NoError
	case *Instruction:
		return r.marker
	default:
		panic(fmt.Sprintf("unsupported record type %T", r))
	}
}

// Assembly returns the assembly field of the record: the address followed by
// the emitted bytes as 2 digit hex values. Every byte column is padded to a
// width of 2, a record without bytes returns an empty string.
func Assembly(r Record) string {
	m, ok := r.(Memory)
	if !ok {
		return ""
	}
	data := Bytes(m)
	if len(data) == 0 {
		return ""
	}

	buf := &strings.Builder{}
	fmt.Fprintf(buf, "%04X:", m.Address())
	for _, b := range data {
		fmt.Fprintf(buf, " %02X", b)
	}
	if _, isInstruction := m.(*Instruction); isInstruction {
		for i := len(data); i < maxInstructionSize; i++ {
			buf.WriteString("   ")
		}
	}
	return buf.String()
}
