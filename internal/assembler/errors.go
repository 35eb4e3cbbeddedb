package assembler

import (
	"errors"
	"fmt"
)

// Kind is the kind of a fatal assembly error.
type Kind int

// Fatal error kinds.
const (
	UnknownOpcode Kind = iota
	BadOperand
	LineTooLong
	ResourceExhausted
)

// Sentinel errors matching the fatal error kinds with errors.Is.
var (
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrBadOperand        = errors.New("bad operand")
	ErrLineTooLong       = errors.New("line too long")
	ErrResourceExhausted = errors.New("memory full")
)

var kindSentinels = map[Kind]error{
	UnknownOpcode:     ErrUnknownOpcode,
	BadOperand:        ErrBadOperand,
	LineTooLong:       ErrLineTooLong,
	ResourceExhausted: ErrResourceExhausted,
}

func (k Kind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FatalError aborts the assembly at the given source line.
type FatalError struct {
	Kind Kind
	Line int // 1-based source line number
	Err  error
}

func (e *FatalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s in line: %d", e.Kind, e.Line)
	}
	return fmt.Sprintf("%s in line: %d: %v", e.Kind, e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is the sentinel error of the error kind.
func (e *FatalError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func fatal(kind Kind, line int, err error) *FatalError {
	return &FatalError{Kind: kind, Line: line, Err: err}
}
