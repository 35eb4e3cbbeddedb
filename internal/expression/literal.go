// Package expression parses numeral literals and evaluates flat operator chains.
package expression

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Format is the notation of a numeral literal.
type Format int

// Supported literal formats.
const (
	Hexadecimal Format = iota // $FF
	Decimal                   // 255
	Octal                     // O377
	Binary                    // %11111111
	Character                 // 'A'
)

var (
	ErrEmpty          = errors.New("empty literal")
	ErrInvalidLiteral = errors.New("invalid literal")
	ErrWhitespace     = errors.New("whitespace in expression")
	ErrDivisionByZero = errors.New("division by zero")
)

// ParseLiteral parses a single numeral. A leading '(' and '#' and a trailing ')'
// are decoration and get stripped before the format is detected.
func ParseLiteral(s string) (int, error) {
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimSuffix(s, ")")

	if s == "" {
		return 0, ErrEmpty
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return 0, fmt.Errorf("%w: '%s'", ErrWhitespace, s)
	}

	switch s[0] {
	case '$':
		return parseDigits(s, s[1:], 16)
	case 'o', 'O':
		return parseDigits(s, s[1:], 8)
	case '%':
		return parseDigits(s, s[1:], 2)
	case '\'', '"':
		return parseCharacter(s)
	default:
		return parseDigits(s, s, 10)
	}
}

// FormatLiteral renders a value in the given literal notation.
func FormatLiteral(value int, format Format) string {
	switch format {
	case Hexadecimal:
		return "$" + Hex(value)
	case Octal:
		return "O" + strconv.FormatInt(int64(value), 8)
	case Binary:
		return "%" + strconv.FormatInt(int64(value), 2)
	case Character:
		return "'" + string(rune(value)) + "'"
	default:
		return strconv.Itoa(value)
	}
}

// Hex returns the unsigned uppercase hexadecimal form of a value without prefix
// or padding. Negative values wrap around into the 16 bit address space.
func Hex(value int) string {
	if value < 0 {
		value &= 0xffff
	}
	return strings.ToUpper(strconv.FormatInt(int64(value), 16))
}

func parseDigits(literal, digits string, base int) (int, error) {
	if digits == "" {
		return 0, fmt.Errorf("%w: '%s' has no digits", ErrInvalidLiteral, literal)
	}
	// ParseUint rejects signs and underscores for an explicit base
	value, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' is not a base %d number", ErrInvalidLiteral, literal, base)
	}
	return int(value), nil
}

func parseCharacter(literal string) (int, error) {
	s := strings.NewReplacer("'", "", `"`, "").Replace(literal)
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: '%s' is not a single character", ErrInvalidLiteral, literal)
	}
	return int(s[0]), nil
}
