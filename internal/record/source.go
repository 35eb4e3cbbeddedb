// Package record implements the line records of an assembled program:
// directives, instructions and checksum records.
package record

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLineLength is the maximum length of a source line.
const MaxLineLength = 64

// Fixed source columns as 0-based offsets. The label occupies columns 1-8,
// the mnemonic 9-13 and the operand 14-24, the remainder is a comment.
const (
	labelEnd      = 8
	mnemonicStart = 8
	mnemonicEnd   = 13
	operandStart  = 13
	operandEnd    = 24
	paddedLength  = 63
)

// ErrLineTooLong is returned for a source line exceeding MaxLineLength.
var ErrLineTooLong = errors.New("line too long")

// Class is the classification of a source line.
type Class int

// Source line classes.
const (
	ClassInstruction Class = iota
	ClassComment
	ClassEnd
	ClassOrg
	ClassEqu
	ClassChecksum
)

// Source is a normalized source line split into its fixed columns.
type Source struct {
	Number   int    // 1-based line number
	Raw      string // normalized text without trailing blanks
	Label    string
	Mnemonic string
	Operand  string
}

// ParseSource normalizes a source line and splits it into its columns.
// The line is padded to a fixed length and the label, mnemonic and operand
// columns are converted to upper case, the comment is kept verbatim.
func ParseSource(number int, line string) (Source, error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if len(line) > MaxLineLength {
		return Source{}, fmt.Errorf("%w: %d characters", ErrLineTooLong, len(line))
	}

	padded := fmt.Sprintf("%-*s", paddedLength, line)
	padded = strings.ToUpper(padded[:operandEnd]) + padded[operandEnd:]

	return Source{
		Number:   number,
		Raw:      strings.TrimRight(padded, " "),
		Label:    strings.TrimSpace(padded[:labelEnd]),
		Mnemonic: strings.TrimSpace(padded[mnemonicStart:mnemonicEnd]),
		Operand:  strings.TrimSpace(padded[operandStart:operandEnd]),
	}, nil
}

// Classify returns the class of the source line.
func (s Source) Classify() Class {
	trimmed := strings.TrimSpace(s.Raw)

	switch {
	case trimmed == "", strings.HasPrefix(s.Raw, "*"), strings.HasPrefix(trimmed, ";"):
		return ClassComment
	case s.Mnemonic == "END":
		return ClassEnd
	case s.Mnemonic == "ORG":
		return ClassOrg
	case s.Mnemonic == "EQU":
		return ClassEqu
	case s.Mnemonic == "CHK":
		return ClassChecksum
	default:
		return ClassInstruction
	}
}
