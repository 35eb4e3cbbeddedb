// Package diagnostics implements the reporting of non-fatal assembly errors.
package diagnostics

import (
	"fmt"

	"github.com/retroenv/fixasm/internal/record"
	"github.com/retroenv/retrogolib/log"
)

// Kind is the kind of a non-fatal assembly error.
type Kind int

// Diagnostic kinds.
const (
	DuplicateSymbol Kind = iota
	BadBranch
	BadAddressMode
)

var kindMessages = map[Kind]string{
	DuplicateSymbol: "Duplicate symbol",
	BadBranch:       "Bad branch",
	BadAddressMode:  "Bad address mode",
}

func (k Kind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a non-fatal error detected in a source line.
type Diagnostic struct {
	Kind Kind
	Line int // 1-based source line number
}

// String returns the message as printed in the listing, for example
// "Bad branch in line: 12".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s in line: %d", d.Kind, d.Line)
}

// ForRecord returns the diagnostic for the error marker of a record.
func ForRecord(r record.Record) (Diagnostic, bool) {
	switch record.ErrorOf(r) {
	case record.BadBranch:
		return Diagnostic{Kind: BadBranch, Line: r.Number()}, true
	case record.BadAddressMode:
		return Diagnostic{Kind: BadAddressMode, Line: r.Number()}, true
	default:
		return Diagnostic{}, false
	}
}

// Sink observes diagnostics. Observe is called once for every diagnostic as
// soon as it is detected and returns before the next source line is
// processed.
type Sink interface {
	Observe(d Diagnostic)
}

// Discard is a sink that ignores all diagnostics.
type Discard struct{}

// Observe implements Sink.
func (Discard) Observe(Diagnostic) {}

// Collector is a sink that stores all observed diagnostics in order.
type Collector struct {
	Diagnostics []Diagnostic
}

// Observe implements Sink.
func (c *Collector) Observe(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// LogSink reports every diagnostic as a warning to a logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink returns a sink that logs to the given logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Observe implements Sink.
func (s *LogSink) Observe(d Diagnostic) {
	s.logger.Warn(d.Kind.String(), log.Int("line", d.Line))
}

// Multi forwards every diagnostic to all given sinks in order.
type Multi []Sink

// Observe implements Sink.
func (m Multi) Observe(d Diagnostic) {
	for _, sink := range m {
		sink.Observe(d)
	}
}
