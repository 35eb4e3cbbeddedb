package expression

import (
	"fmt"
	"strings"
)

// operators lists the binary operators: add, subtract, multiply, divide,
// bitwise and, bitwise or and bitwise xor.
const operators = "+-*/&.!"

// Evaluate reduces an operand expression to an integer. Anything from the
// first ',' on is an index register suffix and ignored. Operators have no
// precedence and are applied strictly from left to right, so 2+3*4 is 20.
func Evaluate(expr string) (int, error) {
	expr, _, _ = strings.Cut(expr, ",")
	if expr == "" {
		return 0, ErrEmpty
	}
	if strings.ContainsAny(expr, " \t\r\n") {
		return 0, fmt.Errorf("%w: '%s'", ErrWhitespace, expr)
	}

	operands, ops := split(expr)

	result, err := ParseLiteral(operands[0])
	if err != nil {
		return 0, fmt.Errorf("parsing operand '%s': %w", operands[0], err)
	}

	for i, op := range ops {
		value, err := ParseLiteral(operands[i+1])
		if err != nil {
			return 0, fmt.Errorf("parsing operand '%s': %w", operands[i+1], err)
		}
		result, err = apply(op, result, value)
		if err != nil {
			return 0, fmt.Errorf("evaluating '%s': %w", expr, err)
		}
	}
	return result, nil
}

// EvaluateHex evaluates an expression and returns the result as unsigned
// uppercase hexadecimal string. An empty expression returns an empty string.
func EvaluateHex(expr string) (string, error) {
	if before, _, _ := strings.Cut(expr, ","); before == "" {
		return "", nil
	}
	value, err := Evaluate(expr)
	if err != nil {
		return "", err
	}
	return Hex(value), nil
}

// split breaks the expression into its operands and the operators between
// them. Operator characters inside a quoted character literal do not split.
func split(expr string) ([]string, []byte) {
	var operands []string
	var ops []byte

	start := 0
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '\'' || c == '"':
			if end := strings.IndexByte(expr[i+1:], c); end >= 0 {
				i += end + 1
			}
		case strings.IndexByte(operators, c) >= 0:
			operands = append(operands, expr[start:i])
			ops = append(ops, c)
			start = i + 1
		}
	}
	operands = append(operands, expr[start:])
	return operands, ops
}

func apply(op byte, a, b int) (int, error) {
	switch op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case '&':
		return a & b, nil
	case '.':
		return a | b, nil
	case '!':
		return a ^ b, nil
	default:
		return 0, fmt.Errorf("unsupported operator '%c'", op)
	}
}
