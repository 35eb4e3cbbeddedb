// Package loader handles source file loading operations.
package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Loader handles loading source files from disk.
type Loader struct{}

// New creates a new source loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a source file and returns its lines without line terminators.
func (l *Loader) Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	lines, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return lines, nil
}

// LoadFromBytes splits source code held in memory into lines.
// This is useful for testing and programmatic usage.
func (l *Loader) LoadFromBytes(data []byte) ([]string, error) {
	return l.LoadFromReader(bytes.NewReader(data))
}

// LoadFromReader reads all lines from a reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning lines: %w", err)
	}
	return lines, nil
}
