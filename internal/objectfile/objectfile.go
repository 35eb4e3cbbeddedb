// Package objectfile implements reading and writing of object files. An
// object file contains one line per byte emitting record in the form
// "ADDR: B1 B2 B3" without a trailing newline after the last line.
package objectfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/fixasm/internal/assembler"
	"github.com/retroenv/fixasm/internal/record"
)

// Extension is the file extension of object files.
const Extension = ".o"

var errInvalidLine = errors.New("invalid object file line")

// Line is a single decoded object file line.
type Line struct {
	Address uint16
	Data    []byte
}

// Lines returns the object file lines of all byte emitting records of the
// program.
func Lines(program *assembler.Program) []Line {
	lines := make([]Line, 0, len(program.Memory))
	for _, m := range program.Memory {
		lines = append(lines, Line{
			Address: m.Address(),
			Data:    record.Bytes(m),
		})
	}
	return lines
}

// Encode returns the object file content of the program.
func Encode(program *assembler.Program) string {
	lines := make([]string, 0, len(program.Memory))
	for _, m := range program.Memory {
		lines = append(lines, strings.TrimRight(record.Assembly(m), " "))
	}
	return strings.Join(lines, "\n")
}

// Write writes the object file of the program to the given path, replacing
// an existing file. Nothing is written and false is returned if the program
// can not be emitted because of errors.
func Write(path string, program *assembler.Program) (bool, error) {
	if !program.Emittable() {
		return false, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("creating object file '%s': %w", path, err)
	}

	if _, err := io.WriteString(file, Encode(program)); err != nil {
		_ = file.Close()
		return false, fmt.Errorf("writing object file '%s': %w", path, err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("closing object file '%s': %w", path, err)
	}
	return true, nil
}

// Parse decodes the lines of an object file.
func Parse(reader io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(reader)
	for number := 1; scanner.Scan(); number++ {
		line, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", number, err)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading object file: %w", err)
	}
	return lines, nil
}

func parseLine(text string) (Line, error) {
	address, data, ok := strings.Cut(text, ":")
	if !ok || len(address) != 4 {
		return Line{}, fmt.Errorf("%w: '%s'", errInvalidLine, text)
	}

	value, err := strconv.ParseUint(address, 16, 16)
	if err != nil {
		return Line{}, fmt.Errorf("%w: address '%s': %w", errInvalidLine, address, err)
	}

	line := Line{Address: uint16(value)}
	for _, field := range strings.Fields(data) {
		b, err := strconv.ParseUint(field, 16, 8)
		if err != nil || len(field) != 2 {
			return Line{}, fmt.Errorf("%w: byte '%s'", errInvalidLine, field)
		}
		line.Data = append(line.Data, byte(b))
	}
	if len(line.Data) == 0 {
		return Line{}, fmt.Errorf("%w: no data in '%s'", errInvalidLine, text)
	}
	return line, nil
}
